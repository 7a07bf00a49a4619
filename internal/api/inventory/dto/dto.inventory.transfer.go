package dto

// TransferLineInput là một dòng vật tư trong input tạo phiếu điều chuyển
type TransferLineInput struct {
	ItemID   string `json:"itemId" validate:"required,object_id"` // Vật tư tại chi nhánh nguồn
	Quantity int64  `json:"quantity" validate:"required,gt=0"`    // Số lượng yêu cầu
}

// TransferCreateInput là input tạo phiếu điều chuyển (trạng thái draft)
type TransferCreateInput struct {
	Actor
	SourceBranchID string              `json:"sourceBranchId" validate:"required,object_id"`
	DestBranchID   string              `json:"destBranchId" validate:"required,object_id,nefield=SourceBranchID"`
	Lines          []TransferLineInput `json:"lines" validate:"required,min=1,dive"`
	Notes          string              `json:"notes" validate:"omitempty,max=500"`
}

// TransferActionInput là input cho các bước chuyển trạng thái đơn giản
// (request, approve, dispatch, cancel, reconcile)
type TransferActionInput struct {
	Actor
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// TransferReceiveLineInput khai báo số lượng thực nhận của một dòng
type TransferReceiveLineInput struct {
	ItemID           string `json:"itemId" validate:"required,object_id"`
	ReceivedQuantity int64  `json:"receivedQuantity" validate:"gte=0"` // 0 = mất toàn bộ dòng hàng
}

// TransferReceiveInput là input xác nhận nhận hàng tại chi nhánh đích.
// ReceivedLines rỗng nghĩa là nhận đủ theo phiếu; dòng nào không khai báo
// cũng được coi là nhận đủ.
type TransferReceiveInput struct {
	Actor
	ReceivedLines []TransferReceiveLineInput `json:"receivedLines" validate:"omitempty,dive"`
	Notes         string                     `json:"notes" validate:"omitempty,max=500"`
}
