package dto

// TransactionCreateInput là input ghi một giao dịch sổ kho bất kỳ.
// Quantity mang dấu tự do; tầng service chuẩn hóa dấu theo loại giao dịch.
type TransactionCreateInput struct {
	Actor
	ItemID        string `json:"itemId" validate:"required,object_id"` // Vật tư bị tác động
	Type          string `json:"type" validate:"required,oneof=receipt adjustment_in adjustment_out usage transfer_out transfer_in return damage expired"`
	Quantity      int64  `json:"quantity" validate:"required,signed_qty"` // Số lượng (khác 0)
	Notes         string `json:"notes" validate:"omitempty,max=500"`
	ReferenceID   string `json:"referenceId" validate:"omitempty,object_id"` // Chứng từ gốc nếu có
	ReferenceType string `json:"referenceType" validate:"omitempty,oneof=adjustment transfer order"`
	BatchNumber   string `json:"batchNumber" validate:"omitempty,max=64"` // Số lô nếu có
}

// ReceiptInput là input nhập hàng từ nhà cung cấp (luôn cộng tồn)
type ReceiptInput struct {
	Actor
	ItemID      string `json:"itemId" validate:"required,object_id"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"` // Số lượng nhập (dương)
	BatchNumber string `json:"batchNumber" validate:"omitempty,max=64"` // Số lô từ nhà cung cấp
	Notes       string `json:"notes" validate:"omitempty,max=500"`
}

// UsageInput là input ghi nhận tiêu hao vật tư cho đơn hàng (luôn trừ tồn)
type UsageInput struct {
	Actor
	ItemID   string `json:"itemId" validate:"required,object_id"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`       // Số lượng tiêu hao (dương)
	OrderID  string `json:"orderId" validate:"omitempty,object_id"` // Đơn hàng giặt liên quan nếu có
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}
