package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.PhysicalCountRepository = (*PhysicalCountRepo)(nil)

// PhysicalCountRepo PhysicalCountRepository sobre PostgreSQL (pool o tx).
type PhysicalCountRepo struct {
	q Querier
}

func NewPhysicalCountRepository(q Querier) *PhysicalCountRepo {
	return &PhysicalCountRepo{q: q}
}

const countColumns = `id, store_id, count_date, item_code, item_name, qty, created_by, created_at, updated_at`

func (r *PhysicalCountRepo) Create(ctx context.Context, c *entity.PhysicalCount) error {
	query := `
		INSERT INTO store_counts (store_id, count_date, item_code, item_name, qty, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.StoreID, c.CountDate, c.ItemCode, c.ItemName, c.Quantity, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: count %s/%s on %s", domain.ErrDuplicate, c.StoreID, c.ItemCode, c.CountDate.Format(domain.DateLayout))
		}
		return fmt.Errorf("create count: %w", err)
	}
	return nil
}

func (r *PhysicalCountRepo) Update(ctx context.Context, c *entity.PhysicalCount) error {
	query := `
		UPDATE store_counts SET store_id = $2, count_date = $3, item_code = $4, item_name = $5,
			qty = $6, created_by = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.StoreID, c.CountDate, c.ItemCode, c.ItemName, c.Quantity, c.CreatedBy, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: count %s/%s on %s", domain.ErrDuplicate, c.StoreID, c.ItemCode, c.CountDate.Format(domain.DateLayout))
		}
		return fmt.Errorf("update count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: count %d", domain.ErrNotFound, c.ID)
	}
	return nil
}

func (r *PhysicalCountRepo) GetByID(ctx context.Context, id int64) (*entity.PhysicalCount, error) {
	query := `SELECT ` + countColumns + ` FROM store_counts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PhysicalCountRepo) FindByKey(ctx context.Context, storeID, itemCode string, countDate time.Time) (*entity.PhysicalCount, error) {
	query := `SELECT ` + countColumns + ` FROM store_counts WHERE store_id = $1 AND item_code = $2 AND count_date = $3`
	return r.getOne(ctx, query, storeID, itemCode, countDate)
}

func (r *PhysicalCountRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PhysicalCount, error) {
	var c entity.PhysicalCount
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.StoreID, &c.CountDate, &c.ItemCode, &c.ItemName, &c.Quantity, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count: %w", err)
	}
	return &c, nil
}

// ListByStore lista los conteos de una tienda en un rango de fechas, del más viejo al más nuevo.
func (r *PhysicalCountRepo) ListByStore(ctx context.Context, storeID string, from, to *time.Time, limit, offset int) ([]*entity.PhysicalCount, error) {
	query := `SELECT ` + countColumns + ` FROM store_counts WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND count_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND count_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY count_date, id"
	query, args = pageClause(query, args, pos, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.PhysicalCount
	for rows.Next() {
		var c entity.PhysicalCount
		if err := rows.Scan(&c.ID, &c.StoreID, &c.CountDate, &c.ItemCode, &c.ItemName, &c.Quantity,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
