package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.LedgerRepository        = (*LedgerRepo)(nil)
	_ repository.StoreStockRepository    = (*StoreStockRepo)(nil)
	_ repository.PhysicalCountRepository = (*PhysicalCountRepo)(nil)
	_ repository.ReferenceRepository     = (*ReferenceRepo)(nil)
)

// ── Libro ─────────────────────────────────────────────────────────────────────

type LedgerRepo struct{ g guard }

func NewLedgerRepository(s *Store) *LedgerRepo { return &LedgerRepo{g: guard{s: s}} }

func (r *LedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	defer r.g.lock()()
	s := r.g.s
	s.ledgerSeq++
	e.ID = s.ledgerSeq
	s.ledger[e.ID] = *e
	return nil
}

func (r *LedgerRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	defer r.g.lock()()
	cur, ok := r.g.s.ledger[e.ID]
	if !ok {
		return fmt.Errorf("%w: ledger entry %d", domain.ErrNotFound, e.ID)
	}
	next := *e
	next.FromStore = cur.FromStore
	next.TxRef = cur.TxRef
	next.CreatedAt = cur.CreatedAt
	r.g.s.ledger[e.ID] = next
	return nil
}

func (r *LedgerRepo) GetByID(_ context.Context, id int64) (*entity.LedgerEntry, error) {
	defer r.g.lock()()
	e, ok := r.g.s.ledger[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *LedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	defer r.g.lock()()
	var list []*entity.LedgerEntry
	for _, e := range r.g.s.ledger {
		if f.StoreID != "" && e.StoreID != f.StoreID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.From != nil && e.TransactionDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.TransactionDate.After(*f.To) {
			continue
		}
		e := e
		list = append(list, &e)
	}
	slices.SortFunc(list, func(a, b *entity.LedgerEntry) int {
		if c := b.TransactionDate.Compare(a.TransactionDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return page(list, f.Limit, f.Offset), nil
}

// ── Stock por tienda ──────────────────────────────────────────────────────────

type StoreStockRepo struct{ g guard }

func NewStoreStockRepository(s *Store) *StoreStockRepo { return &StoreStockRepo{g: guard{s: s}} }

func (r *StoreStockRepo) find(storeID, itemCode string) *entity.StoreStock {
	for _, row := range r.g.s.stock {
		if row.StoreID == storeID && row.ItemCode == itemCode {
			return &row
		}
	}
	return nil
}

func (r *StoreStockRepo) Get(_ context.Context, storeID, itemCode string) (*entity.StoreStock, error) {
	defer r.g.lock()()
	return r.find(storeID, itemCode), nil
}

// GetForUpdate es igual a Get: la transacción ya tiene el lock del store.
func (r *StoreStockRepo) GetForUpdate(ctx context.Context, storeID, itemCode string) (*entity.StoreStock, error) {
	return r.Get(ctx, storeID, itemCode)
}

func (r *StoreStockRepo) GetByID(_ context.Context, id int64) (*entity.StoreStock, error) {
	defer r.g.lock()()
	row, ok := r.g.s.stock[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *StoreStockRepo) Create(_ context.Context, row *entity.StoreStock) error {
	defer r.g.lock()()
	if r.find(row.StoreID, row.ItemCode) != nil {
		return fmt.Errorf("%w: store stock %s/%s", domain.ErrDuplicate, row.StoreID, row.ItemCode)
	}
	s := r.g.s
	s.stockSeq++
	row.ID = s.stockSeq
	s.stock[row.ID] = *row
	return nil
}

func (r *StoreStockRepo) SetQuantity(_ context.Context, id int64, qty decimal.Decimal, at time.Time) error {
	defer r.g.lock()()
	row, ok := r.g.s.stock[id]
	if !ok {
		return fmt.Errorf("%w: stock row %d", domain.ErrNotFound, id)
	}
	row.CurrentQty = qty
	row.UpdatedAt = at
	r.g.s.stock[id] = row
	return nil
}

func (r *StoreStockRepo) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.StoreStock, error) {
	defer r.g.lock()()
	var list []*entity.StoreStock
	for _, row := range r.g.s.stock {
		if row.StoreID == storeID {
			row := row
			list = append(list, &row)
		}
	}
	slices.SortFunc(list, func(a, b *entity.StoreStock) int { return cmp.Compare(a.ItemCode, b.ItemCode) })
	return page(list, limit, offset), nil
}

// ── Conteos físicos ───────────────────────────────────────────────────────────

type PhysicalCountRepo struct{ g guard }

func NewPhysicalCountRepository(s *Store) *PhysicalCountRepo {
	return &PhysicalCountRepo{g: guard{s: s}}
}

func (r *PhysicalCountRepo) find(storeID, itemCode string, date time.Time, skipID int64) *entity.PhysicalCount {
	for _, c := range r.g.s.counts {
		if c.ID != skipID && c.StoreID == storeID && c.ItemCode == itemCode && c.CountDate.Equal(date) {
			return &c
		}
	}
	return nil
}

func (r *PhysicalCountRepo) Create(_ context.Context, c *entity.PhysicalCount) error {
	defer r.g.lock()()
	if r.find(c.StoreID, c.ItemCode, c.CountDate, 0) != nil {
		return fmt.Errorf("%w: count %s/%s on %s", domain.ErrDuplicate, c.StoreID, c.ItemCode, c.CountDate.Format(domain.DateLayout))
	}
	s := r.g.s
	s.countSeq++
	c.ID = s.countSeq
	s.counts[c.ID] = *c
	return nil
}

func (r *PhysicalCountRepo) Update(_ context.Context, c *entity.PhysicalCount) error {
	defer r.g.lock()()
	cur, ok := r.g.s.counts[c.ID]
	if !ok {
		return fmt.Errorf("%w: count %d", domain.ErrNotFound, c.ID)
	}
	if r.find(c.StoreID, c.ItemCode, c.CountDate, c.ID) != nil {
		return fmt.Errorf("%w: count %s/%s on %s", domain.ErrDuplicate, c.StoreID, c.ItemCode, c.CountDate.Format(domain.DateLayout))
	}
	next := *c
	next.CreatedAt = cur.CreatedAt
	r.g.s.counts[c.ID] = next
	return nil
}

func (r *PhysicalCountRepo) GetByID(_ context.Context, id int64) (*entity.PhysicalCount, error) {
	defer r.g.lock()()
	c, ok := r.g.s.counts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *PhysicalCountRepo) FindByKey(_ context.Context, storeID, itemCode string, countDate time.Time) (*entity.PhysicalCount, error) {
	defer r.g.lock()()
	return r.find(storeID, itemCode, countDate, 0), nil
}

func (r *PhysicalCountRepo) ListByStore(_ context.Context, storeID string, from, to *time.Time, limit, offset int) ([]*entity.PhysicalCount, error) {
	defer r.g.lock()()
	var list []*entity.PhysicalCount
	for _, c := range r.g.s.counts {
		if c.StoreID != storeID {
			continue
		}
		if from != nil && c.CountDate.Before(*from) {
			continue
		}
		if to != nil && c.CountDate.After(*to) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	slices.SortFunc(list, func(a, b *entity.PhysicalCount) int {
		if c := a.CountDate.Compare(b.CountDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return page(list, limit, offset), nil
}

// ── Datos de referencia ───────────────────────────────────────────────────────

type ReferenceRepo struct{ g guard }

func NewReferenceRepository(s *Store) *ReferenceRepo { return &ReferenceRepo{g: guard{s: s}} }

func (r *ReferenceRepo) ListItems(context.Context) ([]entity.Item, error) {
	defer r.g.lock()()
	return slices.Clone(r.g.s.items), nil
}

func (r *ReferenceRepo) ListStores(context.Context) ([]entity.Store, error) {
	defer r.g.lock()()
	return slices.Clone(r.g.s.stores), nil
}

func (r *ReferenceRepo) ListSuppliers(context.Context) ([]entity.Supplier, error) {
	defer r.g.lock()()
	return slices.Clone(r.g.s.suppliers), nil
}

// page aplica limit/offset; limit <= 0 devuelve todo lo que sigue a offset.
func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
