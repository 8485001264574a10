package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo LedgerRepository sobre PostgreSQL (pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Recibe un pool o una tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, store_id, transaction_date, supplier, item_code, item_name, tax_type,
	specification, unit, qty, unit_price, amount, status, from_store, created_by, trans_no,
	accu_qty, COALESCE(tx_ref::text, ''), created_at, updated_at`

// Create inserta el asiento y asigna su ID.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (store_id, transaction_date, supplier, item_code, item_name, tax_type,
			specification, unit, qty, unit_price, amount, status, from_store, created_by, trans_no,
			accu_qty, tx_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NULLIF($17, '')::uuid, $18, $19)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.StoreID, e.TransactionDate, e.Supplier, e.ItemCode, e.ItemName, e.TaxType,
		e.Specification, e.Unit, e.Quantity, e.UnitPrice, e.Amount, e.Status, e.FromStore,
		e.CreatedBy, e.TransNo, e.AccuQty, e.TxRef, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// Update sobrescribe los campos de negocio del asiento con ese ID.
func (r *LedgerRepo) Update(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		UPDATE stock_ledger SET
			store_id = $2, transaction_date = $3, supplier = $4, item_code = $5, item_name = $6,
			tax_type = $7, specification = $8, unit = $9, qty = $10, unit_price = $11, amount = $12,
			status = $13, created_by = $14, trans_no = $15, accu_qty = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.StoreID, e.TransactionDate, e.Supplier, e.ItemCode, e.ItemName, e.TaxType,
		e.Specification, e.Unit, e.Quantity, e.UnitPrice, e.Amount, e.Status, e.CreatedBy,
		e.TransNo, e.AccuQty, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ledger entry %d", domain.ErrNotFound, e.ID)
	}
	return nil
}

// GetByID devuelve nil, nil cuando el asiento no existe.
func (r *LedgerRepo) GetByID(ctx context.Context, id int64) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE id = $1`
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// List devuelve los asientos del más nuevo al más viejo.
func (r *LedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE true`
	var args []any
	pos := 1
	if f.StoreID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, f.StoreID)
		pos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND transaction_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND transaction_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += " ORDER BY transaction_date DESC, id DESC"
	query, args = pageClause(query, args, pos, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(
		&e.ID, &e.StoreID, &e.TransactionDate, &e.Supplier, &e.ItemCode, &e.ItemName, &e.TaxType,
		&e.Specification, &e.Unit, &e.Quantity, &e.UnitPrice, &e.Amount, &e.Status, &e.FromStore,
		&e.CreatedBy, &e.TransNo, &e.AccuQty, &e.TxRef, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
