package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/order"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog     *inventory.CatalogUseCase
	Ledger      *inventory.LedgerUseCase
	BulkImport  *inventory.BulkImportUseCase
	Orders      *order.CreateOrderUseCase
	OrderStatus *order.StatusUseCase
	PackingSlip *order.PackingSlipUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog, deps.Ledger, deps.BulkImport)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/bulk", productHandler.BulkRegister)
	products.Get("/:sku/stock", productHandler.Stock)
	products.Get("/:sku/movements", productHandler.Movements)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders, deps.OrderStatus, deps.PackingSlip)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/packing-slip", orderHandler.PackingSlip)
}
