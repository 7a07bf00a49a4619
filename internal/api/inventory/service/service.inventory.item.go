// Package invsvc chứa logic nghiệp vụ của phân hệ kho vật tư:
// danh mục vật tư, sổ kho, yêu cầu điều chỉnh, điều chuyển chi nhánh và báo cáo.
package invsvc

import (
	"context"
	"fmt"

	basesvc "laundry_ops/internal/api/base/service"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"
	"laundry_ops/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemService là cấu trúc chứa các phương thức liên quan đến danh mục vật tư tồn kho
type ItemService struct {
	*basesvc.BaseServiceMongoImpl[models.InventoryItem]
}

// NewItemService tạo mới ItemService.
// Delete guard: không cho xóa vật tư khi còn phiếu điều chuyển chưa kết thúc tham chiếu tới nó.
func NewItemService() (*ItemService, error) {
	itemCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryItems)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_items collection: %v", common.ErrNotFound)
	}
	transferCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryTransfers)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_transfers collection: %v", common.ErrNotFound)
	}

	s := &ItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.InventoryItem](itemCollection),
	}

	s.AddDeleteGuard(func(ctx context.Context, item models.InventoryItem) error {
		count, err := transferCollection.CountDocuments(ctx, bson.M{
			"lines.itemId": item.ID,
			"status": bson.M{"$nin": bson.A{
				models.TransferReconciled, models.TransferCancelled,
			}},
		})
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			return common.NewError(
				common.ErrCodeBusinessOperation,
				fmt.Sprintf("Không thể xóa vật tư %s: còn %d phiếu điều chuyển chưa kết thúc tham chiếu tới vật tư này", item.SKU, count),
				common.StatusConflict,
				nil,
			)
		}
		return nil
	})

	return s, nil
}

// FindByBranchAndSKU tìm vật tư theo cặp định danh (chi nhánh, mã vật tư)
func (s *ItemService) FindByBranchAndSKU(ctx context.Context, branchID primitive.ObjectID, sku string) (models.InventoryItem, error) {
	return s.FindOne(ctx, bson.M{"branchId": branchID, "sku": sku}, nil)
}
