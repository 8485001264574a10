package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ReferenceCache guarda valores serializables a JSON bajo una clave.
// Get devuelve false cuando la clave no existe o expiró.
type ReferenceCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	keyItems     = "stock-ledger:ref:items"
	keyStores    = "stock-ledger:ref:stores"
	keySuppliers = "stock-ledger:ref:suppliers"
)

// ReferenceUseCase sirve el maestro de ítems, la lista de tiendas y la de proveedores. Los datos
// de referencia se mantienen fuera de este servicio, por eso las lecturas pasan por la caché
// durante ttl. Los fallos de caché se registran en el log y se lee del repositorio.
type ReferenceUseCase struct {
	repo  repository.ReferenceRepository
	cache ReferenceCache
	ttl   time.Duration
	log   *logger.Logger
}

func NewReferenceUseCase(repo repository.ReferenceRepository, cache ReferenceCache, ttl time.Duration, log *logger.Logger) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo, cache: cache, ttl: ttl, log: log.Component("reference")}
}

func (uc *ReferenceUseCase) Items(ctx context.Context) ([]entity.Item, error) {
	return cachedList(ctx, uc, keyItems, uc.repo.ListItems)
}

func (uc *ReferenceUseCase) Stores(ctx context.Context) ([]entity.Store, error) {
	return cachedList(ctx, uc, keyStores, uc.repo.ListStores)
}

func (uc *ReferenceUseCase) Suppliers(ctx context.Context) ([]entity.Supplier, error) {
	return cachedList(ctx, uc, keySuppliers, uc.repo.ListSuppliers)
}

func cachedList[T any](ctx context.Context, uc *ReferenceUseCase, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if uc.cache != nil && uc.ttl > 0 {
		var hit []T
		ok, err := uc.cache.Get(ctx, key, &hit)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("reference cache read failed")
		} else if ok {
			return hit, nil
		}
	}

	list, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	if uc.cache != nil && uc.ttl > 0 {
		if err := uc.cache.Set(ctx, key, list, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("reference cache write failed")
		}
	}
	return list, nil
}
