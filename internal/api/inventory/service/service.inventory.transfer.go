package invsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	basesvc "laundry_ops/internal/api/base/service"
	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"
	"laundry_ops/internal/database"
	"laundry_ops/internal/global"
	"laundry_ops/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TransferService điều phối vòng đời phiếu điều chuyển vật tư giữa hai chi nhánh:
// draft -> requested -> approved -> in_transit -> received -> reconciled,
// hủy được cho tới trước khi nhận hàng.
//
// Khác với điều chỉnh kho, điều chuyển KHÔNG ghi dòng vào sổ kho: mọi thay đổi
// tồn kho (giữ chỗ lúc duyệt, cộng kho đích lúc nhận, hoàn trả lúc hủy) được
// truy vết qua auditTrail của chính phiếu.
type TransferService struct {
	*basesvc.BaseServiceMongoImpl[models.StockTransfer]
	itemCol *mongo.Collection
}

// NewTransferService tạo mới TransferService
func NewTransferService() (*TransferService, error) {
	transferCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryTransfers)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_transfers collection: %v", common.ErrNotFound)
	}
	itemCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryItems)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_items collection: %v", common.ErrNotFound)
	}

	return &TransferService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.StockTransfer](transferCollection),
		itemCol:              itemCollection,
	}, nil
}

// CreateTransfer tạo phiếu điều chuyển ở trạng thái draft.
// Từng dòng được đối chiếu với danh mục chi nhánh nguồn để lấy SKU/tên/đơn vị;
// vật tư không thuộc chi nhánh nguồn làm hỏng cả phiếu.
func (s *TransferService) CreateTransfer(ctx context.Context, input *dto.TransferCreateInput) (*models.StockTransfer, error) {
	sourceBranchID, err := primitive.ObjectIDFromHex(input.SourceBranchID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	destBranchID, err := primitive.ObjectIDFromHex(input.DestBranchID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}

	seen := make(map[primitive.ObjectID]bool, len(input.Lines))
	lines := make([]models.TransferLine, 0, len(input.Lines))
	for _, lineInput := range input.Lines {
		itemID, err := primitive.ObjectIDFromHex(lineInput.ItemID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		if seen[itemID] {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Vật tư %s xuất hiện nhiều lần trong phiếu điều chuyển", lineInput.ItemID),
				common.StatusBadRequest,
				nil,
			)
		}
		seen[itemID] = true

		var item models.InventoryItem
		if err := s.itemCol.FindOne(ctx, bson.M{"_id": itemID, "branchId": sourceBranchID}).Decode(&item); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Vật tư %s không tồn tại ở chi nhánh nguồn", lineInput.ItemID),
					common.StatusBadRequest,
					nil,
				)
			}
			return nil, common.ConvertMongoError(err)
		}

		lines = append(lines, models.TransferLine{
			ItemID:   item.ID,
			SKU:      item.SKU,
			Name:     item.Name,
			Unit:     item.Unit,
			Quantity: lineInput.Quantity,
		})
	}

	now := time.Now().UnixMilli()
	transfer := models.StockTransfer{
		TransferCode:   fmt.Sprintf("TRF-%s", strings.ToUpper(uuid.NewString()[:8])),
		SourceBranchID: sourceBranchID,
		DestBranchID:   destBranchID,
		Status:         models.TransferDraft,
		Lines:          lines,
		AuditTrail: []models.TransferAuditEntry{{
			Status:    models.TransferDraft,
			Timestamp: now,
			UserID:    input.Actor.ObjectID(),
			UserName:  input.Actor.UserName,
			Notes:     input.Notes,
		}},
		Notes:       input.Notes,
		CreatedBy:   input.Actor.ObjectID(),
		CreatedName: input.Actor.UserName,
	}

	created, err := s.InsertOne(ctx, transfer)
	if err != nil {
		return nil, err
	}

	s.logTransition(&created, "Đã tạo phiếu điều chuyển")
	return &created, nil
}

// Request gửi phiếu draft sang trạng thái requested, chờ chi nhánh nguồn duyệt
func (s *TransferService) Request(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	return s.transition(ctx, transferID, models.TransferRequested, input, nil)
}

// Approve duyệt phiếu requested và giữ chỗ tồn kho ở chi nhánh nguồn:
// từng dòng onHand -= quantity, pendingTransferOut += quantity.
// Chỉ cần một dòng thiếu hàng là toàn bộ phiếu bị từ chối, không giữ chỗ dòng nào.
func (s *TransferService) Approve(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	return s.transition(ctx, transferID, models.TransferApproved, input, func(sc mongo.SessionContext, transfer *models.StockTransfer) error {
		for _, line := range transfer.Lines {
			var item models.InventoryItem
			if err := s.itemCol.FindOne(sc, bson.M{"_id": line.ItemID}).Decode(&item); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return common.ErrNotFound
				}
				return common.ConvertMongoError(err)
			}
			if item.OnHand < line.Quantity {
				return common.NewInsufficientStockError(item.Name, item.OnHand, line.Quantity)
			}
		}

		now := time.Now().UnixMilli()
		for _, delta := range ReservationDeltas(transfer.Lines) {
			if err := s.applyStockDelta(sc, delta, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Dispatch đánh dấu hàng đã rời chi nhánh nguồn (approved -> in_transit)
func (s *TransferService) Dispatch(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	return s.transition(ctx, transferID, models.TransferInTransit, input, nil)
}

// Receive xác nhận nhận hàng tại chi nhánh đích (in_transit -> received).
// Tồn kho đích tăng theo số lượng THỰC NHẬN; giữ chỗ ở nguồn được giải phóng
// theo số lượng THEO PHIẾU. Chênh lệch ghi vào discrepancies, không tự quay
// lại onHand nguồn.
func (s *TransferService) Receive(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferReceiveInput) (*models.StockTransfer, error) {
	actionInput := &dto.TransferActionInput{Actor: input.Actor, Notes: input.Notes}

	return s.transition(ctx, transferID, models.TransferReceived, actionInput, func(sc mongo.SessionContext, transfer *models.StockTransfer) error {
		lines, err := ApplyReceivedLines(transfer.Lines, input.ReceivedLines)
		if err != nil {
			return err
		}
		transfer.Lines = lines
		transfer.Discrepancies = ComputeDiscrepancies(lines)

		now := time.Now().UnixMilli()
		// Giải phóng giữ chỗ ở chi nhánh nguồn theo số lượng phiếu
		for _, delta := range ReleaseDeltas(lines) {
			if err := s.applyStockDelta(sc, delta, now); err != nil {
				return err
			}
		}

		for _, line := range lines {
			received := *line.ReceivedQuantity
			if received == 0 {
				continue
			}

			destItem, err := s.findOrCreateDestItem(sc, transfer.DestBranchID, line)
			if err != nil {
				return err
			}
			destUpdate := bson.M{
				"$inc": bson.M{"onHand": received},
				"$set": bson.M{"updatedAt": now},
			}
			if _, err := s.itemCol.UpdateOne(sc, bson.M{"_id": destItem.ID}, destUpdate); err != nil {
				return common.ConvertMongoError(err)
			}
		}
		return nil
	})
}

// Reconcile đóng phiếu sau khi hai chi nhánh đã đối soát chênh lệch (received -> reconciled)
func (s *TransferService) Reconcile(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	return s.transition(ctx, transferID, models.TransferReconciled, input, nil)
}

// Cancel hủy phiếu trước khi nhận hàng. Phiếu đã duyệt (kể cả đang trên đường)
// thì hoàn trả giữ chỗ cho chi nhánh nguồn; phiếu đã nhận hàng không hủy được nữa.
func (s *TransferService) Cancel(ctx context.Context, transferID primitive.ObjectID, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	result, err := database.WithTransaction(ctx, global.MongoDB_Session, func(sc mongo.SessionContext) (interface{}, error) {
		transfer, err := s.findForUpdate(sc, transferID)
		if err != nil {
			return nil, err
		}
		if !transfer.Status.CanCancel() {
			return nil, common.NewInvalidStateError(string(transfer.Status), "hủy phiếu điều chuyển")
		}

		if transfer.Status.NeedsStockRollback() {
			now := time.Now().UnixMilli()
			for _, delta := range RollbackDeltas(transfer.Lines) {
				if err := s.applyStockDelta(sc, delta, now); err != nil {
					return nil, err
				}
			}
		}

		return s.saveTransition(sc, transfer, models.TransferCancelled, input)
	})
	if err != nil {
		return nil, err
	}

	transfer := result.(*models.StockTransfer)
	s.logTransition(transfer, "Đã hủy phiếu điều chuyển")
	return transfer, nil
}

// transition thực hiện một bước chuyển trạng thái tuyến tính trong MongoDB transaction.
// sideEffect (nếu có) chạy trước khi lưu trạng thái mới, cùng transaction.
func (s *TransferService) transition(
	ctx context.Context,
	transferID primitive.ObjectID,
	next models.TransferStatus,
	input *dto.TransferActionInput,
	sideEffect func(sc mongo.SessionContext, transfer *models.StockTransfer) error,
) (*models.StockTransfer, error) {
	result, err := database.WithTransaction(ctx, global.MongoDB_Session, func(sc mongo.SessionContext) (interface{}, error) {
		transfer, err := s.findForUpdate(sc, transferID)
		if err != nil {
			return nil, err
		}
		if !transfer.Status.CanTransitionTo(next) {
			return nil, common.NewInvalidStateError(string(transfer.Status), fmt.Sprintf("chuyển phiếu sang %s", next))
		}

		if sideEffect != nil {
			if err := sideEffect(sc, transfer); err != nil {
				return nil, err
			}
		}

		return s.saveTransition(sc, transfer, next, input)
	})
	if err != nil {
		return nil, err
	}

	transfer := result.(*models.StockTransfer)
	s.logTransition(transfer, "Đã chuyển trạng thái phiếu điều chuyển")
	return transfer, nil
}

// applyStockDelta áp một mức thay đổi tồn kho lên vật tư nguồn, cùng transaction
// với bước chuyển trạng thái đang chạy
func (s *TransferService) applyStockDelta(sc mongo.SessionContext, delta StockDelta, now int64) error {
	update := bson.M{
		"$inc": bson.M{
			"onHand":             delta.OnHand,
			"pendingTransferOut": delta.PendingTransferOut,
		},
		"$set": bson.M{"updatedAt": now},
	}
	if _, err := s.itemCol.UpdateOne(sc, bson.M{"_id": delta.ItemID}, update); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// findForUpdate đọc phiếu trong session context của transaction
func (s *TransferService) findForUpdate(sc mongo.SessionContext, transferID primitive.ObjectID) (*models.StockTransfer, error) {
	var transfer models.StockTransfer
	if err := s.Collection().FindOne(sc, bson.M{"_id": transferID}).Decode(&transfer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &transfer, nil
}

// saveTransition ghi trạng thái mới, audit entry và các field phụ (lines, discrepancies)
func (s *TransferService) saveTransition(sc mongo.SessionContext, transfer *models.StockTransfer, next models.TransferStatus, input *dto.TransferActionInput) (*models.StockTransfer, error) {
	now := time.Now().UnixMilli()
	entry := models.TransferAuditEntry{
		Status:    next,
		Timestamp: now,
		UserID:    input.Actor.ObjectID(),
		UserName:  input.Actor.UserName,
		Notes:     input.Notes,
	}

	set := bson.M{
		"status":    next,
		"updatedAt": now,
	}
	// Receive cập nhật lines (receivedQuantity) và discrepancies cùng lúc
	if next == models.TransferReceived {
		set["lines"] = transfer.Lines
		if transfer.Discrepancies != nil {
			set["discrepancies"] = transfer.Discrepancies
		}
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"auditTrail": entry},
	}
	if _, err := s.Collection().UpdateOne(sc, bson.M{"_id": transfer.ID}, update); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	transfer.Status = next
	transfer.AuditTrail = append(transfer.AuditTrail, entry)
	transfer.UpdatedAt = now
	return transfer, nil
}

// findOrCreateDestItem tìm vật tư ở chi nhánh đích theo SKU; chưa có thì tạo mới
// với thông tin danh mục sao chép từ vật tư nguồn, tồn kho khởi tạo bằng 0.
func (s *TransferService) findOrCreateDestItem(sc mongo.SessionContext, destBranchID primitive.ObjectID, line models.TransferLine) (*models.InventoryItem, error) {
	var destItem models.InventoryItem
	err := s.itemCol.FindOne(sc, bson.M{"branchId": destBranchID, "sku": line.SKU}).Decode(&destItem)
	if err == nil {
		return &destItem, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ConvertMongoError(err)
	}

	var sourceItem models.InventoryItem
	if err := s.itemCol.FindOne(sc, bson.M{"_id": line.ItemID}).Decode(&sourceItem); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}

	now := time.Now().UnixMilli()
	destItem = models.InventoryItem{
		ID:           primitive.NewObjectID(),
		BranchID:     destBranchID,
		SKU:          sourceItem.SKU,
		Name:         sourceItem.Name,
		Unit:         sourceItem.Unit,
		Category:     sourceItem.Category,
		ReorderLevel: sourceItem.ReorderLevel,
		CostPerUnit:  sourceItem.CostPerUnit,
		ExpiryDate:   sourceItem.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.itemCol.InsertOne(sc, destItem); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return &destItem, nil
}

// logTransition ghi audit log cho thao tác trên phiếu điều chuyển
func (s *TransferService) logTransition(transfer *models.StockTransfer, message string) {
	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"transferCode":   transfer.TransferCode,
		"status":         transfer.Status,
		"sourceBranchId": transfer.SourceBranchID.Hex(),
		"destBranchId":   transfer.DestBranchID.Hex(),
		"lineCount":      len(transfer.Lines),
	}).Info(message)
}
