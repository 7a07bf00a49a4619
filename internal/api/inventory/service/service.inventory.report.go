package invsvc

import (
	"context"
	"fmt"
	"time"

	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"
	"laundry_ops/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportService cung cấp các báo cáo chỉ-đọc trên dữ liệu kho.
// Không có phương thức nào ở đây thay đổi dữ liệu.
type ReportService struct {
	itemCol *mongo.Collection
	txCol   *mongo.Collection
}

// NewReportService tạo mới ReportService
func NewReportService() (*ReportService, error) {
	itemCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryItems)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_items collection: %v", common.ErrNotFound)
	}
	txCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryTransactions)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_transactions collection: %v", common.ErrNotFound)
	}

	return &ReportService{
		itemCol: itemCollection,
		txCol:   txCollection,
	}, nil
}

// GetInventoryValuation tính tổng giá trị tồn kho của một chi nhánh:
// từng vật tư onHand * costPerUnit, cộng dồn toàn chi nhánh.
func (s *ReportService) GetInventoryValuation(ctx context.Context, branchID primitive.ObjectID) (*dto.ValuationReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sku", Value: 1}})
	cursor, err := s.itemCol.Find(ctx, bson.M{"branchId": branchID}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	report := &dto.ValuationReport{
		BranchID:  branchID,
		ItemCount: int64(len(items)),
		Items:     make([]dto.ValuationLine, 0, len(items)),
	}
	for _, item := range items {
		value := item.OnHand * item.CostPerUnit
		report.TotalValue += value
		report.Items = append(report.Items, dto.ValuationLine{
			ItemID:      item.ID,
			SKU:         item.SKU,
			Name:        item.Name,
			OnHand:      item.OnHand,
			CostPerUnit: item.CostPerUnit,
			Value:       value,
		})
	}

	return report, nil
}

// GetLowStockItems trả về các vật tư có tồn kho dưới hoặc bằng ngưỡng cảnh báo.
// Chỉ xét vật tư có khai báo ngưỡng (reorderLevel > 0).
func (s *ReportService) GetLowStockItems(ctx context.Context, branchID primitive.ObjectID) ([]models.InventoryItem, error) {
	filter := bson.M{
		"reorderLevel": bson.M{"$gt": 0},
		"$expr":        bson.M{"$lte": bson.A{"$onHand", "$reorderLevel"}},
	}
	if !branchID.IsZero() {
		filter["branchId"] = branchID
	}

	opts := options.Find().SetSort(bson.D{{Key: "onHand", Value: 1}})
	cursor, err := s.itemCol.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

// GetExpiringItems trả về các vật tư sắp hết hạn trong vòng days ngày tới
// (kể cả đã quá hạn). days <= 0 dùng ngưỡng cấu hình ExpiryAlertDays.
func (s *ReportService) GetExpiringItems(ctx context.Context, branchID primitive.ObjectID, days int) ([]models.InventoryItem, error) {
	if days <= 0 {
		days = global.ServerConfig.ExpiryAlertDays
	}
	deadline := time.Now().AddDate(0, 0, days).UnixMilli()

	filter := bson.M{
		"expiryDate": bson.M{"$gt": 0, "$lte": deadline},
		"onHand":     bson.M{"$gt": 0},
	}
	if !branchID.IsZero() {
		filter["branchId"] = branchID
	}

	opts := options.Find().SetSort(bson.D{{Key: "expiryDate", Value: 1}})
	cursor, err := s.itemCol.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

// GetTransactionSummary tổng hợp giao dịch kho trong kỳ [from, to] (UnixMilli),
// gom theo loại giao dịch, có lọc theo chi nhánh.
func (s *ReportService) GetTransactionSummary(ctx context.Context, branchID primitive.ObjectID, from, to int64) (*dto.TransactionSummaryReport, error) {
	if to <= from {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Kỳ báo cáo không hợp lệ: thời điểm cuối phải sau thời điểm đầu",
			common.StatusBadRequest,
			nil,
		)
	}

	filter := bson.M{"createdAt": bson.M{"$gte": from, "$lte": to}}
	if !branchID.IsZero() {
		filter["branchId"] = branchID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.txCol.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var txs []models.InventoryTransaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	byType, totalIn, totalOut := SummarizeTransactions(txs)
	if byType == nil {
		byType = []dto.TypeSummary{}
	}

	return &dto.TransactionSummaryReport{
		BranchID: branchID,
		From:     from,
		To:       to,
		ByType:   byType,
		TotalIn:  totalIn,
		TotalOut: totalOut,
	}, nil
}
