package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdjustmentStatus là trạng thái của yêu cầu điều chỉnh kho
type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "pending"  // Chờ phê duyệt
	AdjustmentApproved AdjustmentStatus = "approved" // Đã duyệt, tồn kho đã được cập nhật
	AdjustmentRejected AdjustmentStatus = "rejected" // Bị từ chối, tồn kho không đổi
)

// IsValid kiểm tra status có thuộc enum không
func (s AdjustmentStatus) IsValid() bool {
	switch s {
	case AdjustmentPending, AdjustmentApproved, AdjustmentRejected:
		return true
	}
	return false
}

// AdjustmentType là chiều điều chỉnh do người yêu cầu khai báo
type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase" // Kiểm kê thấy thừa so với sổ
	AdjustmentDecrease AdjustmentType = "decrease" // Kiểm kê thấy thiếu so với sổ
)

// IsValid kiểm tra type có thuộc enum không
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentIncrease || t == AdjustmentDecrease
}

// TransactionType trả về loại giao dịch ledger tương ứng khi yêu cầu được duyệt
func (t AdjustmentType) TransactionType() TransactionType {
	if t == AdjustmentIncrease {
		return TxAdjustmentIn
	}
	return TxAdjustmentOut
}

// AdjustmentRequest là yêu cầu điều chỉnh tồn kho cần người có thẩm quyền phê duyệt.
// Tồn kho chỉ thay đổi tại thời điểm duyệt, qua đúng một giao dịch ledger.
type AdjustmentRequest struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RequestCode string             `json:"requestCode" bson:"requestCode" index:"unique"` // Mã yêu cầu cho người dùng (UUID)

	ItemID   primitive.ObjectID `json:"itemId" bson:"itemId" index:"single:1"`     // Vật tư cần điều chỉnh
	BranchID primitive.ObjectID `json:"branchId" bson:"branchId" index:"single:1"` // Chi nhánh của vật tư

	AdjustmentType AdjustmentType `json:"adjustmentType" bson:"adjustmentType"` // increase | decrease
	Quantity       int64          `json:"quantity" bson:"quantity"`             // Số lượng điều chỉnh (luôn dương, chiều nằm ở adjustmentType)
	Reason         string         `json:"reason" bson:"reason"`                 // Lý do yêu cầu điều chỉnh
	CurrentStock   int64          `json:"currentStock" bson:"currentStock"`     // Snapshot onHand tại thời điểm tạo yêu cầu

	Status AdjustmentStatus `json:"status" bson:"status" index:"single:1"` // pending | approved | rejected

	RequestedBy   primitive.ObjectID `json:"requestedBy" bson:"requestedBy"`     // Người tạo yêu cầu
	RequestedName string             `json:"requestedName" bson:"requestedName"` // Tên người tạo yêu cầu
	RequestedAt   int64              `json:"requestedAt" bson:"requestedAt"`     // Thời điểm tạo yêu cầu (UnixMilli)

	// Thông tin quyết định (duyệt hoặc từ chối)
	DecidedBy   primitive.ObjectID `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
	DecidedName string             `json:"decidedName,omitempty" bson:"decidedName,omitempty"`
	DecidedAt   int64              `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"` // Ghi chú của người quyết định (bắt buộc khi từ chối)

	// Giao dịch ledger sinh ra khi duyệt
	TransactionID primitive.ObjectID `json:"transactionId,omitempty" bson:"transactionId,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
