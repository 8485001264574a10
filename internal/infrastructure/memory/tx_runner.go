package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner da a fn acceso exclusivo al store y restaura el estado anterior cuando fn falla.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StoreStockRepository,
	countRepo repository.PhysicalCountRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	g := guard{s: r.s, inTx: true}
	if err := fn(&LedgerRepo{g: g}, &StoreStockRepo{g: g}, &PhysicalCountRepo{g: g}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
