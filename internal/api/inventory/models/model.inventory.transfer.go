package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransferStatus là trạng thái của phiếu điều chuyển giữa chi nhánh
type TransferStatus string

const (
	TransferDraft      TransferStatus = "draft"      // Nháp, chưa gửi yêu cầu
	TransferRequested  TransferStatus = "requested"  // Đã gửi, chờ chi nhánh nguồn duyệt
	TransferApproved   TransferStatus = "approved"   // Đã duyệt, tồn kho nguồn đã giữ chỗ
	TransferInTransit  TransferStatus = "in_transit" // Hàng đang trên đường
	TransferReceived   TransferStatus = "received"   // Chi nhánh đích đã nhận hàng
	TransferReconciled TransferStatus = "reconciled" // Đã đối soát xong, trạng thái cuối
	TransferCancelled  TransferStatus = "cancelled"  // Đã hủy, trạng thái cuối
)

// IsValid kiểm tra status có thuộc enum không
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferDraft, TransferRequested, TransferApproved,
		TransferInTransit, TransferReceived, TransferReconciled, TransferCancelled:
		return true
	}
	return false
}

// IsTerminal cho biết status có phải trạng thái cuối không (không chuyển tiếp được nữa)
func (s TransferStatus) IsTerminal() bool {
	return s == TransferReconciled || s == TransferCancelled
}

// transferTransitions là đồ thị chuyển trạng thái hợp lệ của phiếu điều chuyển.
// Hủy phiếu đi qua CanCancel, không nằm trong đồ thị này.
var transferTransitions = map[TransferStatus]TransferStatus{
	TransferDraft:     TransferRequested,
	TransferRequested: TransferApproved,
	TransferApproved:  TransferInTransit,
	TransferInTransit: TransferReceived,
	TransferReceived:  TransferReconciled,
}

// CanTransitionTo kiểm tra có được chuyển từ s sang next không
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	return transferTransitions[s] == next
}

// CanCancel kiểm tra phiếu ở trạng thái s có được hủy không.
// Hủy được cho tới trước khi nhận hàng; sau khi đã nhận (received) thì
// không hủy được nữa, phải xử lý bằng một phiếu điều chuyển ngược lại.
func (s TransferStatus) CanCancel() bool {
	switch s {
	case TransferDraft, TransferRequested, TransferApproved, TransferInTransit:
		return true
	}
	return false
}

// NeedsStockRollback cho biết hủy phiếu ở trạng thái s có phải trả lại
// tồn kho đã giữ chỗ ở chi nhánh nguồn không. Giữ chỗ xảy ra lúc duyệt
// và còn hiệu lực suốt lúc hàng đang trên đường.
func (s TransferStatus) NeedsStockRollback() bool {
	return s == TransferApproved || s == TransferInTransit
}

// TransferLine là một dòng vật tư trong phiếu điều chuyển
type TransferLine struct {
	ItemID   primitive.ObjectID `json:"itemId" bson:"itemId"` // Vật tư tại chi nhánh nguồn
	SKU      string             `json:"sku" bson:"sku"`       // Mã vật tư (để đối chiếu và tạo vật tư ở chi nhánh đích)
	Name     string             `json:"name" bson:"name"`     // Tên vật tư (denormalized)
	Unit     string             `json:"unit" bson:"unit"`     // Đơn vị tính
	Quantity int64              `json:"quantity" bson:"quantity"` // Số lượng yêu cầu điều chuyển

	// Số lượng thực nhận tại chi nhánh đích. nil = chưa nhận;
	// khác quantity = có chênh lệch, ghi vào discrepancies.
	ReceivedQuantity *int64 `json:"receivedQuantity,omitempty" bson:"receivedQuantity,omitempty"`
}

// TransferAuditEntry là một dòng trong lịch sử chuyển trạng thái của phiếu
type TransferAuditEntry struct {
	Status    TransferStatus     `json:"status" bson:"status"`       // Trạng thái sau bước chuyển
	Timestamp int64              `json:"timestamp" bson:"timestamp"` // Thời điểm chuyển (UnixMilli)
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`       // Người thực hiện
	UserName  string             `json:"userName" bson:"userName"`   // Tên người thực hiện
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// TransferDiscrepancy ghi nhận chênh lệch giữa số lượng gửi và số lượng nhận của một dòng
type TransferDiscrepancy struct {
	ItemID     primitive.ObjectID `json:"itemId" bson:"itemId"`
	SKU        string             `json:"sku" bson:"sku"`
	Expected   int64              `json:"expected" bson:"expected"`     // Số lượng theo phiếu
	Received   int64              `json:"received" bson:"received"`     // Số lượng thực nhận
	Difference int64              `json:"difference" bson:"difference"` // received - expected (âm = thiếu hàng)
}

// StockTransfer là phiếu điều chuyển vật tư giữa hai chi nhánh.
//
// Dòng thời gian tồn kho:
//   - duyệt (approved): nguồn onHand -= qty, nguồn pendingTransferOut += qty (all-or-nothing)
//   - nhận (received):  đích onHand += receivedQty, nguồn pendingTransferOut -= qty
//   - hủy sau duyệt (trước khi nhận): nguồn onHand += qty, nguồn pendingTransferOut -= qty
//
// Phần chênh lệch khi nhận thiếu không quay lại onHand nguồn; nó chỉ nằm trong
// discrepancies[] và được xử lý tiếp bằng yêu cầu điều chỉnh kho.
type StockTransfer struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TransferCode string             `json:"transferCode" bson:"transferCode" index:"unique"` // Mã phiếu cho người dùng (UUID)

	SourceBranchID primitive.ObjectID `json:"sourceBranchId" bson:"sourceBranchId" index:"single:1"` // Chi nhánh xuất
	DestBranchID   primitive.ObjectID `json:"destBranchId" bson:"destBranchId" index:"single:1"`     // Chi nhánh nhận

	Status TransferStatus `json:"status" bson:"status" index:"single:1"`

	Lines         []TransferLine        `json:"lines" bson:"lines"`                                   // Các dòng vật tư
	AuditTrail    []TransferAuditEntry  `json:"auditTrail" bson:"auditTrail"`                         // Lịch sử chuyển trạng thái
	Discrepancies []TransferDiscrepancy `json:"discrepancies,omitempty" bson:"discrepancies,omitempty"` // Chênh lệch ghi nhận lúc nhận hàng

	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedName string             `json:"createdName" bson:"createdName"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
