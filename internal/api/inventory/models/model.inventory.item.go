package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem lưu thông tin tồn kho của một vật tư tại một chi nhánh.
// Mỗi cặp (branchId, sku) là một document duy nhất; cùng một loại vật tư
// ở hai chi nhánh là hai document độc lập.
//
// Bất biến: onHand >= 0 và pendingTransferOut >= 0 tại mọi thời điểm.
// onHand chỉ được thay đổi qua ledger (InventoryTransaction) hoặc orchestrator
// điều chuyển, không bao giờ qua update trực tiếp.
type InventoryItem struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                        // ID của vật tư trong MongoDB
	BranchID primitive.ObjectID `json:"branchId" bson:"branchId" index:"single:1;compound:branchId_sku_unique"`   // Chi nhánh sở hữu tồn kho
	SKU      string             `json:"sku" bson:"sku" index:"compound:branchId_sku_unique"`                      // Mã vật tư (duy nhất trong một chi nhánh)
	Name     string             `json:"name" bson:"name" index:"text"`                                            // Tên vật tư (hóa chất giặt, bao bì, móc treo...)
	Unit     string             `json:"unit" bson:"unit"`                                                         // Đơn vị tính (lít, kg, cái...)
	Category string             `json:"category,omitempty" bson:"category,omitempty"`                             // Nhóm vật tư (hóa chất, bao bì, phụ kiện...)

	OnHand             int64 `json:"onHand" bson:"onHand"`                         // Số lượng tồn thực tế
	PendingTransferOut int64 `json:"pendingTransferOut" bson:"pendingTransferOut"` // Số lượng đã giữ chỗ cho các phiếu điều chuyển đã duyệt
	ReorderLevel       int64 `json:"reorderLevel" bson:"reorderLevel"`             // Ngưỡng cảnh báo sắp hết hàng
	CostPerUnit        int64 `json:"costPerUnit" bson:"costPerUnit"`               // Đơn giá (VND, số nguyên)

	ExpiryDate int64 `json:"expiryDate,omitempty" bson:"expiryDate,omitempty" index:"single:1"` // Hạn sử dụng (UnixMilli, 0 = không có hạn)

	LastTransactionID   primitive.ObjectID `json:"lastTransactionId,omitempty" bson:"lastTransactionId,omitempty"` // Giao dịch ledger gần nhất
	LastTransactionDate int64              `json:"lastTransactionDate,omitempty" bson:"lastTransactionDate,omitempty"` // Thời điểm giao dịch gần nhất (UnixMilli)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// Available trả về số lượng có thể sử dụng/giữ chỗ thêm của vật tư.
// pendingTransferOut đã bị trừ khỏi onHand lúc duyệt phiếu điều chuyển,
// nên available chính là onHand.
func (i *InventoryItem) Available() int64 {
	return i.OnHand
}
