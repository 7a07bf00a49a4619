package global

import (
	"laundry_ops/config"
	"laundry_ops/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Inventory_CollectionName chứa tên các collection trong MongoDB
type Inventory_CollectionName struct {
	InventoryItems        string // Tên collection cho vật tư tồn kho theo chi nhánh
	InventoryTransactions string // Tên collection cho sổ giao dịch kho (ledger)
	InventoryAdjustments  string // Tên collection cho yêu cầu điều chỉnh kho
	InventoryTransfers    string // Tên collection cho phiếu điều chuyển giữa chi nhánh
}

// Các biến toàn cục
var Validate *validator.Validate                                              // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                             // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                        // Cấu hình của server
var MongoDB_ColNames Inventory_CollectionName = Inventory_CollectionName{
	InventoryItems:        "inventory_items",
	InventoryTransactions: "inventory_transactions",
	InventoryAdjustments:  "inventory_adjustments",
	InventoryTransfers:    "inventory_transfers",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
