package invsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "laundry_ops/internal/api/base/service"
	basemodels "laundry_ops/internal/api/base/models"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"
	"laundry_ops/internal/database"
	"laundry_ops/internal/global"
	"laundry_ops/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordParams là tham số ghi một giao dịch sổ kho.
// Quantity nhận dấu tự do; dấu thực tế được chuẩn hóa theo Type.
type RecordParams struct {
	ItemID        primitive.ObjectID
	Type          models.TransactionType
	Quantity      int64
	RecordedBy    primitive.ObjectID
	RecordedName  string
	Reason        string
	ReferenceID   primitive.ObjectID
	ReferenceType string
	BatchNumber   string

	// Chỉ dùng cho giao dịch sinh từ yêu cầu điều chỉnh đã duyệt
	ApprovedBy primitive.ObjectID
	ApprovedAt int64
}

// LedgerService là cấu trúc chứa các phương thức ghi và đọc sổ kho.
// Đây là đường duy nhất (ngoài orchestrator điều chuyển) được phép thay đổi onHand.
type LedgerService struct {
	*basesvc.BaseServiceMongoImpl[models.InventoryTransaction]
	itemCol *mongo.Collection
}

// NewLedgerService tạo mới LedgerService
func NewLedgerService() (*LedgerService, error) {
	txCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryTransactions)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_transactions collection: %v", common.ErrNotFound)
	}
	itemCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryItems)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_items collection: %v", common.ErrNotFound)
	}

	return &LedgerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.InventoryTransaction](txCollection),
		itemCol:              itemCollection,
	}, nil
}

// applyEntry thực hiện chu trình đọc-kiểm tra-ghi của một giao dịch sổ kho.
// PHẢI được gọi bên trong một MongoDB transaction (sc là SessionContext):
// đọc onHand hiện tại, kiểm tra bất biến không âm, ghi dòng sổ và cập nhật vật tư.
// Lỗi ở bất kỳ bước nào làm abort toàn bộ transaction, không có ghi một nửa.
func (s *LedgerService) applyEntry(sc context.Context, p RecordParams) (*models.InventoryTransaction, error) {
	signedQty, err := NormalizeQuantity(p.Type, p.Quantity)
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := s.itemCol.FindOne(sc, bson.M{"_id": p.ItemID}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}

	stockAfter, err := CheckStockAfter(item.Name, item.OnHand, signedQty)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	tx := models.InventoryTransaction{
		ID:            primitive.NewObjectID(),
		ItemID:        item.ID,
		BranchID:      item.BranchID,
		Type:          p.Type,
		Quantity:      signedQty,
		StockBefore:   item.OnHand,
		StockAfter:    stockAfter,
		Status:        models.TxCompleted,
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.ReferenceType,
		UnitCost:      item.CostPerUnit,
		TotalValue:    absInt64(signedQty) * item.CostPerUnit,
		BatchNumber:   p.BatchNumber,
		RecordedBy:    p.RecordedBy,
		RecordedName:  p.RecordedName,
		Reason:        p.Reason,
		ApprovedBy:    p.ApprovedBy,
		ApprovedAt:    p.ApprovedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.Collection().InsertOne(sc, tx); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	update := bson.M{"$set": bson.M{
		"onHand":              stockAfter,
		"lastTransactionId":   tx.ID,
		"lastTransactionDate": now,
		"updatedAt":           now,
	}}
	if _, err := s.itemCol.UpdateOne(sc, bson.M{"_id": item.ID}, update); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return &tx, nil
}

// RecordTransaction ghi một giao dịch sổ kho trong một MongoDB transaction.
// Hai writer ghi cùng vật tư sẽ xung đột snapshot; driver retry toàn bộ
// chu trình đọc-kiểm tra-ghi nên số dư luôn nhất quán.
func (s *LedgerService) RecordTransaction(ctx context.Context, p RecordParams) (*models.InventoryTransaction, error) {
	result, err := database.WithTransaction(ctx, global.MongoDB_Session, func(sc mongo.SessionContext) (interface{}, error) {
		return s.applyEntry(sc, p)
	})
	if err != nil {
		return nil, err
	}

	tx := result.(*models.InventoryTransaction)
	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"transactionId": tx.ID.Hex(),
		"itemId":        tx.ItemID.Hex(),
		"type":          tx.Type,
		"quantity":      tx.Quantity,
		"stockAfter":    tx.StockAfter,
		"recordedBy":    tx.RecordedBy.Hex(),
	}).Info("Đã ghi giao dịch sổ kho")

	return tx, nil
}

// RecordStockReceipt ghi giao dịch nhập hàng: type receipt, số lượng luôn dương
func (s *LedgerService) RecordStockReceipt(ctx context.Context, p RecordParams) (*models.InventoryTransaction, error) {
	p.Type = models.TxReceipt
	p.Quantity = absInt64(p.Quantity)
	return s.RecordTransaction(ctx, p)
}

// RecordStockUsage ghi giao dịch tiêu hao: type usage, số lượng luôn âm.
// ReferenceID/ReferenceType thường trỏ tới đơn hàng giặt.
func (s *LedgerService) RecordStockUsage(ctx context.Context, p RecordParams) (*models.InventoryTransaction, error) {
	p.Type = models.TxUsage
	p.Quantity = -absInt64(p.Quantity)
	return s.RecordTransaction(ctx, p)
}

// GetItemTransactions trả về lịch sử sổ kho của một vật tư, mới nhất trước,
// có lọc theo loại giao dịch và phân trang.
func (s *LedgerService) GetItemTransactions(ctx context.Context, itemID primitive.ObjectID, txType models.TransactionType, page, limit int64) (*basemodels.PaginateResult[models.InventoryTransaction], error) {
	filter := bson.M{"itemId": itemID}
	if txType != "" {
		if !txType.IsValid() {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Loại giao dịch không hợp lệ: %s", txType),
				common.StatusBadRequest,
				nil,
			)
		}
		filter["type"] = txType
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
