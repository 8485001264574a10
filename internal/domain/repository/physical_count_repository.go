package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// PhysicalCountRepository es el puerto de persistencia de los conteos físicos.
type PhysicalCountRepository interface {
	// Create inserta el registro; domain.ErrDuplicate si choca (tienda, ítem, fecha).
	Create(ctx context.Context, count *entity.PhysicalCount) error
	// Update sobrescribe el registro con ese ID; domain.ErrNotFound si no existe.
	Update(ctx context.Context, count *entity.PhysicalCount) error
	GetByID(ctx context.Context, id int64) (*entity.PhysicalCount, error)
	// FindByKey devuelve nil, nil cuando no hay registro para la terna.
	FindByKey(ctx context.Context, storeID, itemCode string, countDate time.Time) (*entity.PhysicalCount, error)
	// ListByStore devuelve los conteos ordenados por fecha de conteo ascendente y luego por id.
	// limit <= 0 significa sin límite.
	ListByStore(ctx context.Context, storeID string, from, to *time.Time, limit, offset int) ([]*entity.PhysicalCount, error)
}
