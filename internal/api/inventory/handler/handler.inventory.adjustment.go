package invhdl

import (
	"context"

	basehdl "laundry_ops/internal/api/base/handler"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	invsvc "laundry_ops/internal/api/inventory/service"
	"laundry_ops/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdjustmentHandler xử lý các request của luồng điều chỉnh kho có phê duyệt
type AdjustmentHandler struct {
	*basehdl.BaseHandler[models.AdjustmentRequest, dto.AdjustmentCreateInput, dto.AdjustmentDecisionInput]
	AdjustmentService *invsvc.AdjustmentService
}

// NewAdjustmentHandler tạo mới AdjustmentHandler
func NewAdjustmentHandler() (*AdjustmentHandler, error) {
	service, err := invsvc.NewAdjustmentService()
	if err != nil {
		return nil, err
	}

	return &AdjustmentHandler{
		BaseHandler:       basehdl.NewBaseHandler[models.AdjustmentRequest, dto.AdjustmentCreateInput, dto.AdjustmentDecisionInput](service),
		AdjustmentService: service,
	}, nil
}

// CreateRequest tạo yêu cầu điều chỉnh kho (POST /inventory/adjustment)
func (h *AdjustmentHandler) CreateRequest(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.AdjustmentCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.AdjustmentService.CreateRequest(c.Context(), &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Approve duyệt yêu cầu điều chỉnh (PUT /inventory/adjustment/:id/approve)
func (h *AdjustmentHandler) Approve(c fiber.Ctx) error {
	return h.decide(c, h.AdjustmentService.Approve)
}

// Reject từ chối yêu cầu điều chỉnh (PUT /inventory/adjustment/:id/reject)
func (h *AdjustmentHandler) Reject(c fiber.Ctx) error {
	return h.decide(c, h.AdjustmentService.Reject)
}

// decide dùng chung cho approve/reject: parse id + body rồi gọi action tương ứng
func (h *AdjustmentHandler) decide(c fiber.Ctx, action func(ctx context.Context, id primitive.ObjectID, input *dto.AdjustmentDecisionInput) (*models.AdjustmentRequest, error)) error {
	return h.SafeHandler(c, func() error {
		requestID, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.AdjustmentDecisionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := action(c.Context(), requestID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetPendingRequests trả về các yêu cầu đang chờ duyệt
// (GET /inventory/adjustment/pending?branchId=&page=&limit=)
func (h *AdjustmentHandler) GetPendingRequests(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		branchID := primitive.NilObjectID
		if branchStr := c.Query("branchId", ""); branchStr != "" {
			parsed, err := primitive.ObjectIDFromHex(branchStr)
			if err != nil {
				h.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
			branchID = parsed
		}

		page, limit := h.ParsePagination(c)

		data, err := h.AdjustmentService.GetPendingRequests(c.Context(), branchID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
