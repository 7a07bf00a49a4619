package invhdl

import (
	"strconv"

	basehdl "laundry_ops/internal/api/base/handler"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	invsvc "laundry_ops/internal/api/inventory/service"
	"laundry_ops/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportHandler xử lý các request báo cáo chỉ-đọc trên dữ liệu kho.
// Embed BaseHandler trên danh mục vật tư để dùng chung SafeHandler/HandleResponse
// và các tiện ích parse query.
type ReportHandler struct {
	*basehdl.BaseHandler[models.InventoryItem, dto.ItemCreateInput, dto.ItemUpdateInput]
	ReportService *invsvc.ReportService
}

// NewReportHandler tạo mới ReportHandler
func NewReportHandler() (*ReportHandler, error) {
	itemService, err := invsvc.NewItemService()
	if err != nil {
		return nil, err
	}
	reportService, err := invsvc.NewReportService()
	if err != nil {
		return nil, err
	}

	return &ReportHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.InventoryItem, dto.ItemCreateInput, dto.ItemUpdateInput](itemService),
		ReportService: reportService,
	}, nil
}

// parseBranchID lấy branchId từ query string. required = true thì thiếu là lỗi.
func parseBranchID(c fiber.Ctx, required bool) (primitive.ObjectID, error) {
	branchStr := c.Query("branchId", "")
	if branchStr == "" {
		if required {
			return primitive.NilObjectID, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu tham số branchId",
				common.StatusBadRequest,
				nil,
			)
		}
		return primitive.NilObjectID, nil
	}

	branchID, err := primitive.ObjectIDFromHex(branchStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidFormat
	}
	return branchID, nil
}

// GetValuation trả về báo cáo định giá tồn kho của một chi nhánh
// (GET /inventory/report/valuation?branchId=)
func (h *ReportHandler) GetValuation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		branchID, err := parseBranchID(c, true)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.ReportService.GetInventoryValuation(c.Context(), branchID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetLowStock trả về các vật tư tồn kho dưới ngưỡng cảnh báo
// (GET /inventory/report/low-stock?branchId=)
func (h *ReportHandler) GetLowStock(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		branchID, err := parseBranchID(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.ReportService.GetLowStockItems(c.Context(), branchID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetExpiring trả về các vật tư sắp hết hạn
// (GET /inventory/report/expiring?branchId=&days=)
func (h *ReportHandler) GetExpiring(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		branchID, err := parseBranchID(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		days, err := strconv.Atoi(c.Query("days", "0"))
		if err != nil || days < 0 {
			days = 0
		}

		data, err := h.ReportService.GetExpiringItems(c.Context(), branchID, days)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetTransactionSummary trả về báo cáo tổng hợp giao dịch trong kỳ
// (GET /inventory/report/summary?branchId=&from=&to=)
func (h *ReportHandler) GetTransactionSummary(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		branchID, err := parseBranchID(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		from, err := strconv.ParseInt(c.Query("from", ""), 10, 64)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Tham số from phải là UnixMilli hợp lệ",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		to, err := strconv.ParseInt(c.Query("to", ""), 10, 64)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Tham số to phải là UnixMilli hợp lệ",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		data, err := h.ReportService.GetTransactionSummary(c.Context(), branchID, from, to)
		h.HandleResponse(c, data, err)
		return nil
	})
}
