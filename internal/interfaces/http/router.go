package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	StockUC   *stock.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock (motor de movimientos)
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/entries", stockHandler.RegisterEntry)
	stockGroup.Post("/exits", stockHandler.RegisterExit)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/products/:id/balance", stockHandler.Balance)
	stockGroup.Post("/products/:id/reconcile", stockHandler.Reconcile)
	stockGroup.Get("/products/:id/availability", stockHandler.Availability)
}
