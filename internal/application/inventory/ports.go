package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una sola transacción de base de datos y le pasa repositorios
// ligados a ella. Si fn devuelve error se revierte todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StoreStockRepository,
		countRepo repository.PhysicalCountRepository,
	) error) error
}

// StockSheet son los datos que se imprimen en la hoja de stock de una tienda después de un cierre.
type StockSheet struct {
	StoreID   string
	StoreName string
	PrintedAt time.Time
	Rows      []*entity.StoreStock
}

// SheetRenderer genera un StockSheet como documento PDF.
type SheetRenderer interface {
	RenderStockSheet(ctx context.Context, sheet StockSheet) ([]byte, error)
}
