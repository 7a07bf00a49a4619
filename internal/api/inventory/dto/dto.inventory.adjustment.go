package dto

// AdjustmentCreateInput là input tạo yêu cầu điều chỉnh kho
type AdjustmentCreateInput struct {
	Actor
	ItemID         string `json:"itemId" validate:"required,object_id"`
	AdjustmentType string `json:"adjustmentType" validate:"required,oneof=increase decrease"`
	Quantity       int64  `json:"quantity" validate:"required,gt=0"` // Số lượng điều chỉnh (dương, chiều nằm ở adjustmentType)
	Reason         string `json:"reason" validate:"required,max=500"`
}

// AdjustmentDecisionInput là input phê duyệt hoặc từ chối yêu cầu điều chỉnh.
// Notes bắt buộc khi từ chối (kiểm tra ở tầng service vì cùng struct dùng cho cả hai thao tác).
type AdjustmentDecisionInput struct {
	Actor
	Notes string `json:"notes" validate:"omitempty,max=500"`
}
