package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StoreStockRepository es el puerto del snapshot de cantidades por tienda.
// Las búsquedas devuelven nil, nil cuando la fila (tienda, ítem) aún no existe.
type StoreStockRepository interface {
	Get(ctx context.Context, storeID, itemCode string) (*entity.StoreStock, error)
	// GetForUpdate bloquea la fila hasta que termina la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, storeID, itemCode string) (*entity.StoreStock, error)
	GetByID(ctx context.Context, id int64) (*entity.StoreStock, error)
	// Create inserta una fila nueva; domain.ErrDuplicate si (tienda, ítem) ya existe.
	Create(ctx context.Context, stock *entity.StoreStock) error
	SetQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error
	// ListByStore ordena por código de ítem; limit <= 0 significa sin límite.
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.StoreStock, error)
}
