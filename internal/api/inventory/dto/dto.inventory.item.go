// Package dto chứa các cấu trúc input/output cho API kho vật tư.
// Các ID trong DTO là chuỗi hex, được validate bằng tag object_id và
// chuyển sang primitive.ObjectID khi transform sang model.
package dto

import (
	"laundry_ops/internal/api/inventory/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor là danh tính người thực hiện thao tác, do tầng gọi (đã xác thực) cung cấp
type Actor struct {
	UserID   string `json:"userId" validate:"required,object_id"` // ID người thực hiện
	UserName string `json:"userName" validate:"required"`         // Tên người thực hiện
}

// ObjectID trả về UserID dạng ObjectID. Gọi sau khi đã validate.
func (a Actor) ObjectID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(a.UserID)
	return id
}

// ItemCreateInput là input tạo mới vật tư tại một chi nhánh.
// Tồn kho khởi tạo bằng 0; nhập hàng lần đầu đi qua giao dịch receipt.
type ItemCreateInput struct {
	BranchID     string `json:"branchId" validate:"required,object_id"` // Chi nhánh sở hữu
	SKU          string `json:"sku" validate:"required,max=64"`         // Mã vật tư, duy nhất trong chi nhánh
	Name         string `json:"name" validate:"required,max=255"`       // Tên vật tư
	Unit         string `json:"unit" validate:"required,max=32"`        // Đơn vị tính
	Category     string `json:"category" validate:"omitempty,max=64"`   // Nhóm vật tư
	ReorderLevel int64  `json:"reorderLevel" validate:"gte=0"`          // Ngưỡng cảnh báo sắp hết
	CostPerUnit  int64  `json:"costPerUnit" validate:"gte=0"`           // Đơn giá (VND)
	ExpiryDate   int64  `json:"expiryDate" validate:"gte=0"`            // Hạn sử dụng (UnixMilli, 0 = không có)
}

// ToModel transform DTO sang model InventoryItem
func (input *ItemCreateInput) ToModel() (models.InventoryItem, error) {
	branchID, err := primitive.ObjectIDFromHex(input.BranchID)
	if err != nil {
		return models.InventoryItem{}, err
	}

	return models.InventoryItem{
		BranchID:     branchID,
		SKU:          input.SKU,
		Name:         input.Name,
		Unit:         input.Unit,
		Category:     input.Category,
		ReorderLevel: input.ReorderLevel,
		CostPerUnit:  input.CostPerUnit,
		ExpiryDate:   input.ExpiryDate,
	}, nil
}

// ItemUpdateInput là input cập nhật thông tin danh mục của vật tư.
// Không chứa onHand/pendingTransferOut: tồn kho chỉ thay đổi qua ledger.
type ItemUpdateInput struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=255"`
	Unit         string `json:"unit,omitempty" bson:"unit,omitempty" validate:"omitempty,max=32"`
	Category     string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=64"`
	ReorderLevel *int64 `json:"reorderLevel,omitempty" bson:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
	CostPerUnit  *int64 `json:"costPerUnit,omitempty" bson:"costPerUnit,omitempty" validate:"omitempty,gte=0"`
	ExpiryDate   *int64 `json:"expiryDate,omitempty" bson:"expiryDate,omitempty" validate:"omitempty,gte=0"`
}
