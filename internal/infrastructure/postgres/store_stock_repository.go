package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StoreStockRepository = (*StoreStockRepo)(nil)

// StoreStockRepo StoreStockRepository sobre PostgreSQL (pool o tx).
type StoreStockRepo struct {
	q Querier
}

// NewStoreStockRepository construye el adaptador del snapshot. Recibe un pool o una tx.
func NewStoreStockRepository(q Querier) *StoreStockRepo {
	return &StoreStockRepo{q: q}
}

const storeStockColumns = `id, store_id, item_code, item_name, current_qty, updated_at`

// Get devuelve la fila (tienda, ítem) o nil, nil.
func (r *StoreStockRepo) Get(ctx context.Context, storeID, itemCode string) (*entity.StoreStock, error) {
	query := `SELECT ` + storeStockColumns + ` FROM store_stock WHERE store_id = $1 AND item_code = $2`
	return r.getOne(ctx, "get store stock", query, storeID, itemCode)
}

// GetForUpdate es Get más un bloqueo de fila hasta que termina la transacción (SELECT FOR UPDATE).
// Solo tiene efecto cuando el repositorio está ligado a una tx.
func (r *StoreStockRepo) GetForUpdate(ctx context.Context, storeID, itemCode string) (*entity.StoreStock, error) {
	query := `SELECT ` + storeStockColumns + ` FROM store_stock WHERE store_id = $1 AND item_code = $2 FOR UPDATE`
	return r.getOne(ctx, "get store stock for update", query, storeID, itemCode)
}

func (r *StoreStockRepo) GetByID(ctx context.Context, id int64) (*entity.StoreStock, error) {
	query := `SELECT ` + storeStockColumns + ` FROM store_stock WHERE id = $1`
	return r.getOne(ctx, "get store stock by id", query, id)
}

func (r *StoreStockRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.StoreStock, error) {
	var s entity.StoreStock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.StoreID, &s.ItemCode, &s.ItemName, &s.CurrentQty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Create inserta una fila del snapshot; el índice único (store_id, item_code) convierte un
// duplicado en domain.ErrDuplicate.
func (r *StoreStockRepo) Create(ctx context.Context, s *entity.StoreStock) error {
	query := `
		INSERT INTO store_stock (store_id, item_code, item_name, current_qty, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.StoreID, s.ItemCode, s.ItemName, s.CurrentQty, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: store stock %s/%s", domain.ErrDuplicate, s.StoreID, s.ItemCode)
		}
		return fmt.Errorf("create store stock: %w", err)
	}
	return nil
}

// SetQuantity sobrescribe current_qty.
func (r *StoreStockRepo) SetQuantity(ctx context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE store_stock SET current_qty = $2, updated_at = $3 WHERE id = $1`, id, qty, at)
	if err != nil {
		return fmt.Errorf("set store stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock row %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *StoreStockRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.StoreStock, error) {
	query := `SELECT ` + storeStockColumns + ` FROM store_stock WHERE store_id = $1 ORDER BY item_code`
	query, args := pageClause(query, []any{storeID}, 2, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list store stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreStock
	for rows.Next() {
		var s entity.StoreStock
		if err := rows.Scan(&s.ID, &s.StoreID, &s.ItemCode, &s.ItemName, &s.CurrentQty, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
