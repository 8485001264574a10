package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	ledger repository.LedgerRepository
	stock  repository.StoreStockRepository
	counts repository.PhysicalCountRepository
	ref    repository.ReferenceRepository
	tx     inventory.TxRunner
	close  func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("memory storage selected: data is lost on restart")
		s := memory.NewSeeded()
		return &storage{
			ledger: memory.NewLedgerRepository(s),
			stock:  memory.NewStoreStockRepository(s),
			counts: memory.NewPhysicalCountRepository(s),
			ref:    memory.NewReferenceRepository(s),
			tx:     memory.NewTxRunner(s),
			close:  func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return &storage{
			ledger: postgres.NewLedgerRepository(pool),
			stock:  postgres.NewStoreStockRepository(pool),
			counts: postgres.NewPhysicalCountRepository(pool),
			ref:    postgres.NewReferenceRepository(pool),
			tx:     postgres.NewTxRunner(pool),
			close:  pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
