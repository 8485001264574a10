package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerFilter acota los listados del libro. Los campos vacíos se ignoran.
type LedgerFilter struct {
	StoreID string
	Status  string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// LedgerRepository es el puerto de persistencia de compras y traslados.
type LedgerRepository interface {
	// Create inserta el asiento y asigna su ID y timestamps.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// Update sobrescribe el asiento con ese ID; domain.ErrNotFound si no existe.
	Update(ctx context.Context, entry *entity.LedgerEntry) error
	// GetByID devuelve nil, nil cuando el asiento no existe.
	GetByID(ctx context.Context, id int64) (*entity.LedgerEntry, error)
	List(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, error)
}
