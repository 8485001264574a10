package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ReferenceRepository lee los datos de referencia estáticos (maestro de ítems, tiendas, proveedores).
type ReferenceRepository interface {
	ListItems(ctx context.Context) ([]entity.Item, error)
	ListStores(ctx context.Context) ([]entity.Store, error)
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
}
