package invhdl

import (
	basehdl "laundry_ops/internal/api/base/handler"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	invsvc "laundry_ops/internal/api/inventory/service"
	"laundry_ops/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerHandler xử lý các request ghi và đọc sổ kho.
// Sổ kho là append-only: các route CRUD của collection này chỉ-đọc,
// mọi thao tác ghi đi qua các handler nghiệp vụ dưới đây.
type LedgerHandler struct {
	*basehdl.BaseHandler[models.InventoryTransaction, dto.TransactionCreateInput, dto.TransactionCreateInput]
	LedgerService *invsvc.LedgerService
}

// NewLedgerHandler tạo mới LedgerHandler
func NewLedgerHandler() (*LedgerHandler, error) {
	service, err := invsvc.NewLedgerService()
	if err != nil {
		return nil, err
	}

	return &LedgerHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.InventoryTransaction, dto.TransactionCreateInput, dto.TransactionCreateInput](service),
		LedgerService: service,
	}, nil
}

// toRecordParams chuyển TransactionCreateInput đã validate sang RecordParams
func toRecordParams(input *dto.TransactionCreateInput) (invsvc.RecordParams, error) {
	itemID, err := primitive.ObjectIDFromHex(input.ItemID)
	if err != nil {
		return invsvc.RecordParams{}, common.ErrInvalidFormat
	}

	p := invsvc.RecordParams{
		ItemID:        itemID,
		Type:          models.TransactionType(input.Type),
		Quantity:      input.Quantity,
		RecordedBy:    input.Actor.ObjectID(),
		RecordedName:  input.Actor.UserName,
		Reason:        input.Notes,
		ReferenceType: input.ReferenceType,
		BatchNumber:   input.BatchNumber,
	}
	if input.ReferenceID != "" {
		refID, err := primitive.ObjectIDFromHex(input.ReferenceID)
		if err != nil {
			return invsvc.RecordParams{}, common.ErrInvalidFormat
		}
		p.ReferenceID = refID
	}

	return p, nil
}

// RecordTransaction ghi một giao dịch sổ kho bất kỳ (POST /inventory/transaction)
func (h *LedgerHandler) RecordTransaction(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.TransactionCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		p, err := toRecordParams(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.LedgerService.RecordTransaction(c.Context(), p)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// RecordReceipt ghi giao dịch nhập hàng (POST /inventory/receipt)
func (h *LedgerHandler) RecordReceipt(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ReceiptInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		itemID, err := primitive.ObjectIDFromHex(input.ItemID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		data, err := h.LedgerService.RecordStockReceipt(c.Context(), invsvc.RecordParams{
			ItemID:       itemID,
			Quantity:     input.Quantity,
			RecordedBy:   input.Actor.ObjectID(),
			RecordedName: input.Actor.UserName,
			Reason:       input.Notes,
			BatchNumber:  input.BatchNumber,
		})
		h.HandleResponse(c, data, err)
		return nil
	})
}

// RecordUsage ghi giao dịch tiêu hao vật tư cho đơn hàng (POST /inventory/usage)
func (h *LedgerHandler) RecordUsage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.UsageInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		itemID, err := primitive.ObjectIDFromHex(input.ItemID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		p := invsvc.RecordParams{
			ItemID:       itemID,
			Quantity:     input.Quantity,
			RecordedBy:   input.Actor.ObjectID(),
			RecordedName: input.Actor.UserName,
			Reason:       input.Notes,
		}
		if input.OrderID != "" {
			orderID, err := primitive.ObjectIDFromHex(input.OrderID)
			if err != nil {
				h.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
			p.ReferenceID = orderID
			p.ReferenceType = "order"
		}

		data, err := h.LedgerService.RecordStockUsage(c.Context(), p)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetItemTransactions trả về lịch sử sổ kho của một vật tư
// (GET /inventory/item/:id/transactions?type=&page=&limit=)
func (h *LedgerHandler) GetItemTransactions(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		txType := models.TransactionType(c.Query("type", ""))
		page, limit := h.ParsePagination(c)

		data, err := h.LedgerService.GetItemTransactions(c.Context(), itemID, txType, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
