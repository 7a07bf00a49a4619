// Package invrouter đăng ký các route của phân hệ kho vật tư
package invrouter

import (
	invhdl "laundry_ops/internal/api/inventory/handler"
	"laundry_ops/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả các route của phân hệ kho lên group /api/v1.
// Truyền vào router.SetupRoutes từ cmd/server.
func Register(v1 fiber.Router, r *router.Router) error {
	itemHandler, err := invhdl.NewItemHandler()
	if err != nil {
		return err
	}
	ledgerHandler, err := invhdl.NewLedgerHandler()
	if err != nil {
		return err
	}
	adjustmentHandler, err := invhdl.NewAdjustmentHandler()
	if err != nil {
		return err
	}
	transferHandler, err := invhdl.NewTransferHandler()
	if err != nil {
		return err
	}
	reportHandler, err := invhdl.NewReportHandler()
	if err != nil {
		return err
	}

	// CRUD theo collection. Sổ kho, phiếu điều chỉnh và phiếu điều chuyển
	// chỉ-đọc: mọi thao tác ghi đi qua các route nghiệp vụ bên dưới.
	r.RegisterCRUDRoutes(v1, "/inventory-items", itemHandler, router.ItemConfig)
	r.RegisterCRUDRoutes(v1, "/inventory-transactions", ledgerHandler, router.ReadOnlyConfig)
	r.RegisterCRUDRoutes(v1, "/inventory-adjustments", adjustmentHandler, router.ReadOnlyConfig)
	r.RegisterCRUDRoutes(v1, "/inventory-transfers", transferHandler, router.ReadOnlyConfig)

	// Sổ kho
	router.RegisterRouteWithMiddleware(v1, "/inventory", "POST", "/transaction", nil, ledgerHandler.RecordTransaction)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "POST", "/receipt", nil, ledgerHandler.RecordReceipt)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "POST", "/usage", nil, ledgerHandler.RecordUsage)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/item/:id/transactions", nil, ledgerHandler.GetItemTransactions)

	// Luồng điều chỉnh kho có phê duyệt
	router.RegisterRouteWithMiddleware(v1, "/inventory", "POST", "/adjustment", nil, adjustmentHandler.CreateRequest)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/adjustment/pending", nil, adjustmentHandler.GetPendingRequests)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/adjustment/:id/approve", nil, adjustmentHandler.Approve)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/adjustment/:id/reject", nil, adjustmentHandler.Reject)

	// Vòng đời phiếu điều chuyển giữa chi nhánh
	router.RegisterRouteWithMiddleware(v1, "/inventory", "POST", "/transfer", nil, transferHandler.CreateTransfer)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/request", nil, transferHandler.Request)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/approve", nil, transferHandler.Approve)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/dispatch", nil, transferHandler.Dispatch)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/receive", nil, transferHandler.Receive)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/cancel", nil, transferHandler.Cancel)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "PUT", "/transfer/:id/reconcile", nil, transferHandler.Reconcile)

	// Báo cáo chỉ-đọc
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/report/valuation", nil, reportHandler.GetValuation)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/report/low-stock", nil, reportHandler.GetLowStock)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/report/expiring", nil, reportHandler.GetExpiring)
	router.RegisterRouteWithMiddleware(v1, "/inventory", "GET", "/report/summary", nil, reportHandler.GetTransactionSummary)

	return nil
}
