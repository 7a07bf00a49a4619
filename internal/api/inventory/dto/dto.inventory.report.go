package dto

import (
	"laundry_ops/internal/api/inventory/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValuationLine là giá trị tồn kho của một vật tư trong báo cáo định giá
type ValuationLine struct {
	ItemID      primitive.ObjectID `json:"itemId"`
	SKU         string             `json:"sku"`
	Name        string             `json:"name"`
	OnHand      int64              `json:"onHand"`
	CostPerUnit int64              `json:"costPerUnit"`
	Value       int64              `json:"value"` // onHand * costPerUnit (VND)
}

// ValuationReport là báo cáo định giá tồn kho của một chi nhánh
type ValuationReport struct {
	BranchID   primitive.ObjectID `json:"branchId"`
	TotalValue int64              `json:"totalValue"` // Tổng giá trị tồn kho (VND)
	ItemCount  int64              `json:"itemCount"`  // Số vật tư được tính
	Items      []ValuationLine    `json:"items"`
}

// TypeSummary là tổng hợp giao dịch theo một loại trong kỳ báo cáo
type TypeSummary struct {
	Type          models.TransactionType `json:"type"`
	Count         int64                  `json:"count"`         // Số giao dịch
	TotalQuantity int64                  `json:"totalQuantity"` // Tổng số lượng có dấu
}

// TransactionSummaryReport là báo cáo tổng hợp giao dịch kho trong một kỳ
type TransactionSummaryReport struct {
	BranchID primitive.ObjectID `json:"branchId,omitempty"`
	From     int64              `json:"from"` // Đầu kỳ (UnixMilli)
	To       int64              `json:"to"`   // Cuối kỳ (UnixMilli)

	ByType   []TypeSummary `json:"byType"`
	TotalIn  int64         `json:"totalIn"`  // Tổng số lượng nhập trong kỳ
	TotalOut int64         `json:"totalOut"` // Tổng số lượng xuất trong kỳ (số dương)
}
