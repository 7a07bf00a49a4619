package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType là loại giao dịch trong sổ kho. Enum đóng: chỉ các giá trị
// khai báo dưới đây được chấp nhận, giá trị lạ bị từ chối từ tầng validate.
type TransactionType string

const (
	TxReceipt       TransactionType = "receipt"        // Nhập hàng từ nhà cung cấp (+)
	TxAdjustmentIn  TransactionType = "adjustment_in"  // Điều chỉnh tăng sau kiểm kê (+)
	TxAdjustmentOut TransactionType = "adjustment_out" // Điều chỉnh giảm sau kiểm kê (-)
	TxUsage         TransactionType = "usage"          // Tiêu hao cho đơn hàng giặt (-)
	TxTransferOut   TransactionType = "transfer_out"   // Xuất điều chuyển sang chi nhánh khác (-)
	TxTransferIn    TransactionType = "transfer_in"    // Nhận điều chuyển từ chi nhánh khác (+)
	TxReturn        TransactionType = "return"         // Hoàn trả vật tư về kho (+)
	TxDamage        TransactionType = "damage"         // Hủy do hư hỏng (-)
	TxExpired       TransactionType = "expired"        // Hủy do hết hạn (-)
)

// transactionSigns: chiều tác động lên onHand của từng loại giao dịch
var transactionSigns = map[TransactionType]int64{
	TxReceipt:       +1,
	TxAdjustmentIn:  +1,
	TxAdjustmentOut: -1,
	TxUsage:         -1,
	TxTransferOut:   -1,
	TxTransferIn:    +1,
	TxReturn:        +1,
	TxDamage:        -1,
	TxExpired:       -1,
}

// IsValid kiểm tra type có thuộc enum không
func (t TransactionType) IsValid() bool {
	_, ok := transactionSigns[t]
	return ok
}

// Sign trả về chiều tác động lên tồn kho: +1 cho giao dịch nhập, -1 cho giao dịch xuất.
// Trả về 0 nếu type không hợp lệ.
func (t TransactionType) Sign() int64 {
	return transactionSigns[t]
}

// TransactionStatus là trạng thái của một dòng sổ kho
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed" // Đã ghi sổ thành công
)

// InventoryTransaction là một dòng trong sổ kho (ledger), append-only.
// Không bao giờ update hay delete; sửa sai bằng giao dịch điều chỉnh mới.
//
// Bất biến: stockAfter == stockBefore + quantity và stockAfter >= 0.
type InventoryTransaction struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`         // ID của giao dịch trong MongoDB
	ItemID   primitive.ObjectID `json:"itemId" bson:"itemId" index:"single:1"`     // Vật tư bị tác động
	BranchID primitive.ObjectID `json:"branchId" bson:"branchId" index:"single:1"` // Chi nhánh của vật tư

	Type        TransactionType   `json:"type" bson:"type" index:"single:1"` // Loại giao dịch
	Quantity    int64             `json:"quantity" bson:"quantity"`          // Số lượng có dấu (+nhập / -xuất)
	StockBefore int64             `json:"stockBefore" bson:"stockBefore"`    // onHand trước giao dịch
	StockAfter  int64             `json:"stockAfter" bson:"stockAfter"`      // onHand sau giao dịch
	Status      TransactionStatus `json:"status" bson:"status"`

	// Tham chiếu tới chứng từ gốc: phiếu điều chỉnh, phiếu điều chuyển hoặc đơn hàng
	ReferenceID   primitive.ObjectID `json:"referenceId,omitempty" bson:"referenceId,omitempty"`
	ReferenceType string             `json:"referenceType,omitempty" bson:"referenceType,omitempty"` // adjustment | transfer | order

	// Thông tin định giá tại thời điểm ghi sổ (optional)
	UnitCost    int64  `json:"unitCost,omitempty" bson:"unitCost,omitempty"`       // Đơn giá (VND)
	TotalValue  int64  `json:"totalValue,omitempty" bson:"totalValue,omitempty"`   // |quantity| * unitCost
	BatchNumber string `json:"batchNumber,omitempty" bson:"batchNumber,omitempty"` // Số lô nếu có
	ExpiryDate  int64  `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`   // Hạn sử dụng của lô (UnixMilli)

	RecordedBy   primitive.ObjectID `json:"recordedBy" bson:"recordedBy"`     // Người ghi sổ
	RecordedName string             `json:"recordedName" bson:"recordedName"` // Tên người ghi sổ (denormalized để đọc báo cáo)
	Reason       string             `json:"reason,omitempty" bson:"reason,omitempty"`

	// Thông tin phê duyệt, chỉ có ở giao dịch sinh từ yêu cầu điều chỉnh
	ApprovedBy primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt int64              `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1,order:-1"` // Thời gian ghi sổ
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
