package cache

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

var _ usecase.ReferenceCache = NoopCache{}

// NoopCache se usa cuando REDIS_ADDR está vacío: toda lectura es un miss.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}
