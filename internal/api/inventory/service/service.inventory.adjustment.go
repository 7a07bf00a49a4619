package invsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	basemodels "laundry_ops/internal/api/base/models"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdjustmentService là cấu trúc chứa các phương thức của luồng điều chỉnh kho:
// nhân viên tạo yêu cầu, quản lý duyệt hoặc từ chối.
// Tồn kho chỉ thay đổi khi yêu cầu được duyệt, thông qua LedgerService.
type AdjustmentService struct {
	*basesvc.BaseServiceMongoImpl[models.AdjustmentRequest]
	ledger *LedgerService
}

// NewAdjustmentService tạo mới AdjustmentService
func NewAdjustmentService() (*AdjustmentService, error) {
	adjCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryAdjustments)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_adjustments collection: %v", common.ErrNotFound)
	}

	ledger, err := NewLedgerService()
	if err != nil {
		return nil, err
	}

	return &AdjustmentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.AdjustmentRequest](adjCollection),
		ledger:               ledger,
	}, nil
}

// CreateRequest tạo yêu cầu điều chỉnh ở trạng thái pending.
// Chụp lại tồn kho hiện tại để người duyệt thấy bối cảnh lúc yêu cầu được tạo.
func (s *AdjustmentService) CreateRequest(ctx context.Context, input *dto.AdjustmentCreateInput) (*models.AdjustmentRequest, error) {
	itemID, err := primitive.ObjectIDFromHex(input.ItemID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	requestedBy := input.Actor.ObjectID()

	var item models.InventoryItem
	if err := s.ledger.itemCol.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}

	now := time.Now().UnixMilli()
	request := models.AdjustmentRequest{
		RequestCode:    fmt.Sprintf("ADJ-%s", strings.ToUpper(uuid.NewString()[:8])),
		ItemID:         item.ID,
		BranchID:       item.BranchID,
		AdjustmentType: models.AdjustmentType(input.AdjustmentType),
		Quantity:       input.Quantity,
		Reason:         input.Reason,
		CurrentStock:   item.OnHand,
		Status:         models.AdjustmentPending,
		RequestedBy:    requestedBy,
		RequestedName:  input.Actor.UserName,
		RequestedAt:    now,
	}

	// Yêu cầu giảm vượt tồn kho bị chặn ngay từ lúc tạo; kiểm tra được lặp lại
	// lúc duyệt vì tồn kho có thể đã thay đổi.
	if request.AdjustmentType == models.AdjustmentDecrease && input.Quantity > item.OnHand {
		return nil, common.NewInsufficientStockError(item.Name, item.OnHand, input.Quantity)
	}

	created, err := s.InsertOne(ctx, request)
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"requestCode": created.RequestCode,
		"itemId":      created.ItemID.Hex(),
		"type":        created.AdjustmentType,
		"quantity":    created.Quantity,
		"requestedBy": created.RequestedBy.Hex(),
	}).Info("Đã tạo yêu cầu điều chỉnh kho")

	return &created, nil
}

// Approve duyệt một yêu cầu điều chỉnh đang pending.
// Toàn bộ diễn ra trong một MongoDB transaction: ghi dòng sổ kho,
// cập nhật tồn kho và chuyển trạng thái yêu cầu sang approved.
func (s *AdjustmentService) Approve(ctx context.Context, requestID primitive.ObjectID, input *dto.AdjustmentDecisionInput) (*models.AdjustmentRequest, error) {
	decidedBy := input.Actor.ObjectID()

	result, err := database.WithTransaction(ctx, global.MongoDB_Session, func(sc mongo.SessionContext) (interface{}, error) {
		var request models.AdjustmentRequest
		if err := s.Collection().FindOne(sc, bson.M{"_id": requestID}).Decode(&request); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, common.ErrNotFound
			}
			return nil, common.ConvertMongoError(err)
		}
		if request.Status != models.AdjustmentPending {
			return nil, common.NewInvalidStateError(string(request.Status), "duyệt yêu cầu điều chỉnh")
		}

		now := time.Now().UnixMilli()
		tx, err := s.ledger.applyEntry(sc, RecordParams{
			ItemID:        request.ItemID,
			Type:          request.AdjustmentType.TransactionType(),
			Quantity:      request.Quantity,
			RecordedBy:    decidedBy,
			RecordedName:  input.Actor.UserName,
			Reason:        request.Reason,
			ReferenceID:   request.ID,
			ReferenceType: "adjustment",
			ApprovedBy:    decidedBy,
			ApprovedAt:    now,
		})
		if err != nil {
			return nil, err
		}

		update := bson.M{"$set": bson.M{
			"status":        models.AdjustmentApproved,
			"decidedBy":     decidedBy,
			"decidedName":   input.Actor.UserName,
			"decidedAt":     now,
			"notes":         input.Notes,
			"transactionId": tx.ID,
			"updatedAt":     now,
		}}
		res, err := s.Collection().UpdateOne(sc, PendingAdjustmentFilter(request.ID), update)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if res.MatchedCount == 0 {
			// Yêu cầu đã được quyết định bởi một phiên khác sau lần đọc ở trên
			return nil, common.NewInvalidStateError("đã quyết định", "duyệt yêu cầu điều chỉnh")
		}

		request.Status = models.AdjustmentApproved
		request.DecidedBy = decidedBy
		request.DecidedName = input.Actor.UserName
		request.DecidedAt = now
		request.Notes = input.Notes
		request.TransactionID = tx.ID
		request.UpdatedAt = now
		return &request, nil
	})
	if err != nil {
		return nil, err
	}

	request := result.(*models.AdjustmentRequest)
	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"requestCode":   request.RequestCode,
		"transactionId": request.TransactionID.Hex(),
		"decidedBy":     request.DecidedBy.Hex(),
	}).Info("Đã duyệt yêu cầu điều chỉnh kho")

	return request, nil
}

// Reject từ chối một yêu cầu điều chỉnh đang pending. Không chạm vào tồn kho.
// Notes là bắt buộc để người yêu cầu biết lý do bị từ chối.
// Chạy trong transaction với filter ghim status pending, cùng kỷ luật với Approve:
// một quyết định đã commit không bao giờ bị ghi đè bởi quyết định đến sau.
func (s *AdjustmentService) Reject(ctx context.Context, requestID primitive.ObjectID, input *dto.AdjustmentDecisionInput) (*models.AdjustmentRequest, error) {
	if strings.TrimSpace(input.Notes) == "" {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Từ chối yêu cầu điều chỉnh phải có ghi chú lý do",
			common.StatusBadRequest,
			nil,
		)
	}
	decidedBy := input.Actor.ObjectID()

	result, err := database.WithTransaction(ctx, global.MongoDB_Session, func(sc mongo.SessionContext) (interface{}, error) {
		var request models.AdjustmentRequest
		if err := s.Collection().FindOne(sc, bson.M{"_id": requestID}).Decode(&request); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, common.ErrNotFound
			}
			return nil, common.ConvertMongoError(err)
		}
		if request.Status != models.AdjustmentPending {
			return nil, common.NewInvalidStateError(string(request.Status), "từ chối yêu cầu điều chỉnh")
		}

		now := time.Now().UnixMilli()
		update := bson.M{"$set": bson.M{
			"status":      models.AdjustmentRejected,
			"decidedBy":   decidedBy,
			"decidedName": input.Actor.UserName,
			"decidedAt":   now,
			"notes":       input.Notes,
			"updatedAt":   now,
		}}
		res, err := s.Collection().UpdateOne(sc, PendingAdjustmentFilter(request.ID), update)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if res.MatchedCount == 0 {
			return nil, common.NewInvalidStateError("đã quyết định", "từ chối yêu cầu điều chỉnh")
		}

		request.Status = models.AdjustmentRejected
		request.DecidedBy = decidedBy
		request.DecidedName = input.Actor.UserName
		request.DecidedAt = now
		request.Notes = input.Notes
		request.UpdatedAt = now
		return &request, nil
	})
	if err != nil {
		return nil, err
	}

	request := result.(*models.AdjustmentRequest)
	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"requestCode": request.RequestCode,
		"decidedBy":   decidedBy.Hex(),
		"notes":       input.Notes,
	}).Info("Đã từ chối yêu cầu điều chỉnh kho")

	return request, nil
}

// GetPendingRequests trả về các yêu cầu điều chỉnh đang chờ duyệt, cũ nhất trước,
// có lọc theo chi nhánh.
func (s *AdjustmentService) GetPendingRequests(ctx context.Context, branchID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.AdjustmentRequest], error) {
	filter := bson.M{"status": models.AdjustmentPending}
	if !branchID.IsZero() {
		filter["branchId"] = branchID
	}

	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: 1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
