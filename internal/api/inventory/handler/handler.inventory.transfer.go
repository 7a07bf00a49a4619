package invhdl

import (
	"context"

	basehdl "laundry_ops/internal/api/base/handler"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	invsvc "laundry_ops/internal/api/inventory/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransferHandler xử lý các request của vòng đời phiếu điều chuyển giữa chi nhánh
type TransferHandler struct {
	*basehdl.BaseHandler[models.StockTransfer, dto.TransferCreateInput, dto.TransferActionInput]
	TransferService *invsvc.TransferService
}

// NewTransferHandler tạo mới TransferHandler
func NewTransferHandler() (*TransferHandler, error) {
	service, err := invsvc.NewTransferService()
	if err != nil {
		return nil, err
	}

	return &TransferHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.StockTransfer, dto.TransferCreateInput, dto.TransferActionInput](service),
		TransferService: service,
	}, nil
}

// CreateTransfer tạo phiếu điều chuyển mới (POST /inventory/transfer)
func (h *TransferHandler) CreateTransfer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.TransferCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.TransferService.CreateTransfer(c.Context(), &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Request gửi phiếu draft đi duyệt (PUT /inventory/transfer/:id/request)
func (h *TransferHandler) Request(c fiber.Ctx) error {
	return h.act(c, h.TransferService.Request)
}

// Approve duyệt phiếu và giữ chỗ tồn kho nguồn (PUT /inventory/transfer/:id/approve)
func (h *TransferHandler) Approve(c fiber.Ctx) error {
	return h.act(c, h.TransferService.Approve)
}

// Dispatch đánh dấu hàng đã xuất kho (PUT /inventory/transfer/:id/dispatch)
func (h *TransferHandler) Dispatch(c fiber.Ctx) error {
	return h.act(c, h.TransferService.Dispatch)
}

// Cancel hủy phiếu (PUT /inventory/transfer/:id/cancel)
func (h *TransferHandler) Cancel(c fiber.Ctx) error {
	return h.act(c, h.TransferService.Cancel)
}

// Reconcile đóng phiếu sau đối soát (PUT /inventory/transfer/:id/reconcile)
func (h *TransferHandler) Reconcile(c fiber.Ctx) error {
	return h.act(c, h.TransferService.Reconcile)
}

// Receive xác nhận nhận hàng tại chi nhánh đích (PUT /inventory/transfer/:id/receive).
// Body có thể khai báo số lượng thực nhận từng dòng; bỏ trống = nhận đủ theo phiếu.
func (h *TransferHandler) Receive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		transferID, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.TransferReceiveInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.TransferService.Receive(c.Context(), transferID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// act dùng chung cho các bước chuyển trạng thái đơn giản
func (h *TransferHandler) act(c fiber.Ctx, action func(ctx context.Context, id primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error)) error {
	return h.SafeHandler(c, func() error {
		transferID, err := h.ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.TransferActionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := action(c.Context(), transferID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
