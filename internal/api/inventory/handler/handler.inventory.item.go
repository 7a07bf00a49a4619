// Package invhdl chứa các Fiber handler cho API kho vật tư
package invhdl

import (
	basehdl "laundry_ops/internal/api/base/handler"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	invsvc "laundry_ops/internal/api/inventory/service"
)

// ItemHandler xử lý các request CRUD cho danh mục vật tư.
// Tồn kho (onHand/pendingTransferOut) không sửa được qua các route này:
// DTO update không chứa các field đó.
type ItemHandler struct {
	*basehdl.BaseHandler[models.InventoryItem, dto.ItemCreateInput, dto.ItemUpdateInput]
	ItemService *invsvc.ItemService
}

// NewItemHandler tạo mới ItemHandler
func NewItemHandler() (*ItemHandler, error) {
	service, err := invsvc.NewItemService()
	if err != nil {
		return nil, err
	}

	return &ItemHandler{
		BaseHandler: basehdl.NewBaseHandler[models.InventoryItem, dto.ItemCreateInput, dto.ItemUpdateInput](service),
		ItemService: service,
	}, nil
}
