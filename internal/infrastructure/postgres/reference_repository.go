package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo lee las tablas del maestro de ítems, tiendas y proveedores.
type ReferenceRepo struct {
	q Querier
}

func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func (r *ReferenceRepo) ListItems(ctx context.Context) ([]entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT item_code, item_name, specification, unit FROM items ORDER BY item_code`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return collect(rows, "items", func(row pgx.CollectableRow) (entity.Item, error) {
		var it entity.Item
		err := row.Scan(&it.ItemCode, &it.ItemName, &it.Specification, &it.Unit)
		return it, err
	})
}

func (r *ReferenceRepo) ListStores(ctx context.Context) ([]entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT store_code, store_name FROM stores ORDER BY store_code`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return collect(rows, "stores", func(row pgx.CollectableRow) (entity.Store, error) {
		var s entity.Store
		err := row.Scan(&s.Code, &s.Name)
		return s, err
	})
}

func (r *ReferenceRepo) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM suppliers ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return collect(rows, "suppliers", func(row pgx.CollectableRow) (entity.Supplier, error) {
		var s entity.Supplier
		err := row.Scan(&s.Name)
		return s, err
	})
}

func collect[T any](rows pgx.Rows, what string, fn pgx.RowToFunc[T]) ([]T, error) {
	list, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", what, err)
	}
	return list, nil
}
