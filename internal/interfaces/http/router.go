package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RouterDeps dependencias del router.
type RouterDeps struct {
	PurchaseUC  *inventory.PurchaseUseCase
	TransferUC  *inventory.TransferUseCase
	CountUC     *inventory.CountUseCase
	CloseUC     *inventory.CloseUseCase
	StockUC     *usecase.StockUseCase
	ReferenceUC *usecase.ReferenceUseCase
	JWTSecret   string // vacío desactiva la verificación Bearer
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	var api fiber.Router = app.Group("/api")
	if deps.JWTSecret != "" {
		api = app.Group("/api", AuthMiddleware(deps.JWTSecret))
	}

	// Listas de referencia
	refHandler := NewReferenceHandler(deps.ReferenceUC, log)
	api.Get("/items", refHandler.Items)
	api.Get("/stores", refHandler.Stores)
	api.Get("/suppliers", refHandler.Suppliers)

	// Compras (libro)
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, log)
	purchases.Post("/", purchaseHandler.Record)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)

	// Traslados
	transferHandler := NewTransferHandler(deps.TransferUC, log)
	api.Post("/transfers", transferHandler.Execute)

	// Snapshot de stock
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, log)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)

	// Conteos físicos
	counts := api.Group("/counts")
	countHandler := NewCountHandler(deps.CountUC, log)
	counts.Post("/", countHandler.Record)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)
	counts.Put("/:id", countHandler.Update)

	// Cierre de mes
	closes := api.Group("/closes")
	closeHandler := NewCloseHandler(deps.CloseUC, log)
	closes.Post("/", closeHandler.Close)
	closes.Get("/sheet", closeHandler.Sheet)
}
