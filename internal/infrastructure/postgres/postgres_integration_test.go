//go:build integration

package postgres_test

// Tests de integración contra un PostgreSQL real vía testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ── Preparación ──────────────────────────────────────────────────────────────

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("stock_ledger_test"),
		tcPostgres.WithUsername("ledger"),
		tcPostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	// una segunda ejecución no debe cambiar nada
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func seedStock(t *testing.T, pool *pgxpool.Pool, storeID, itemCode string, qty int64) *entity.StoreStock {
	t.Helper()
	row := &entity.StoreStock{
		StoreID:    storeID,
		ItemCode:   itemCode,
		ItemName:   "item " + itemCode,
		CurrentQty: decimal.NewFromInt(qty),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, postgres.NewStoreStockRepository(pool).Create(context.Background(), row))
	return row
}

func repositoryFilter(storeID, status string) repository.LedgerFilter {
	return repository.LedgerFilter{StoreID: storeID, Status: status, Limit: 100}
}

func transferReq(from, to, item string, qty int64) dto.TransferRequest {
	return dto.TransferRequest{
		Quantity:        decimal.NewFromInt(qty),
		FromStore:       from,
		StoreID:         to,
		TransactionDate: "2024-05-10",
		ItemCode:        item,
		ItemName:        "item " + item,
		UnitPrice:       1000,
		CreatedBy:       "tester",
	}
}

// ── Repositorios ─────────────────────────────────────────────────────────────

func TestLedgerRepo_CreateGetUpdateList(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewLedgerRepository(pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := &entity.LedgerEntry{
		StoreID:         "000003",
		TransactionDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Supplier:        "(주)에이스",
		ItemCode:        "P001",
		ItemName:        "생수 2L",
		TaxType:         entity.TaxTaxed,
		Quantity:        decimal.RequireFromString("10.5"),
		UnitPrice:       1000,
		Amount:          10500,
		Status:          entity.EntryStatusNew,
		FromStore:       entity.NoSourceStore,
		CreatedBy:       "kim",
		TxRef:           "5f0c6f3e-93a4-4bb4-9a49-0d6f3c1f4a10",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.ID)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Quantity.Equal(e.Quantity))
	assert.Equal(t, int64(10500), got.Amount)
	assert.Equal(t, e.TxRef, got.TxRef)
	assert.Equal(t, "2024-05-01", got.TransactionDate.Format(domain.DateLayout))

	got.Quantity = decimal.NewFromInt(3)
	got.Status = entity.EntryStatusUpdate
	require.NoError(t, repo.Update(ctx, got))

	missing := *got
	missing.ID = 999999
	assert.ErrorIs(t, repo.Update(ctx, &missing), domain.ErrNotFound)

	list, err := repo.List(ctx, repositoryFilter("000003", entity.EntryStatusUpdate))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(3)))

	none, err := repo.GetByID(ctx, 424242)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStoreStockRepo_DuplicateAndSetQuantity(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewStoreStockRepository(pool)

	row := seedStock(t, pool, "000003", "P001", 7)
	err := repo.Create(ctx, &entity.StoreStock{StoreID: "000003", ItemCode: "P001", UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, repo.SetQuantity(ctx, row.ID, decimal.RequireFromString("2.5"), time.Now()))
	got, err := repo.Get(ctx, "000003", "P001")
	require.NoError(t, err)
	assert.True(t, got.CurrentQty.Equal(decimal.RequireFromString("2.5")))

	assert.ErrorIs(t, repo.SetQuantity(ctx, 999999, decimal.Zero, time.Now()), domain.ErrNotFound)

	absent, err := repo.Get(ctx, "000003", "NOPE")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestPhysicalCountRepo_UniqueKeyAndOrder(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewPhysicalCountRepository(pool)

	mk := func(day int, item string, qty int64) *entity.PhysicalCount {
		return &entity.PhysicalCount{
			StoreID:   "000004",
			CountDate: time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
			ItemCode:  item,
			ItemName:  item,
			Quantity:  decimal.NewFromInt(qty),
			CreatedBy: "lee",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	require.NoError(t, repo.Create(ctx, mk(20, "A", 1)))
	require.NoError(t, repo.Create(ctx, mk(5, "A", 2)))
	assert.ErrorIs(t, repo.Create(ctx, mk(5, "A", 9)), domain.ErrDuplicate)

	list, err := repo.ListByStore(ctx, "000004", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 5, list[0].CountDate.Day())
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(2)))

	found, err := repo.FindByKey(ctx, "000004", "A", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(1)))
}

func TestReferenceRepo_Lists(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO stores (store_code, store_name) VALUES ('000004', '2호점'), ('000003', '본점');
		INSERT INTO suppliers (name, sort_order) VALUES ('B상사', 2), ('A상사', 1);
		INSERT INTO items (item_code, item_name, specification, unit) VALUES ('P001', '생수', '2L', '병')`)
	require.NoError(t, err)

	repo := postgres.NewReferenceRepository(pool)
	stores, err := repo.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "000003", stores[0].Code)

	suppliers, err := repo.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A상사", suppliers[0].Name)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "병", items[0].Unit)
}

// ── Casos de uso sobre una transacción real ──────────────────────────────────

func TestTransfer_ConcurrentRequestsNeverOversell(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedStock(t, pool, "000003", "P001", 10)

	uc := inventory.NewTransferUseCase(postgres.NewTxRunner(pool), logger.Nop())

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, transferReq("000003", "000004", "P001", 3))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 10 unidades, 3 por traslado: exactamente tres salen bien.
	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, insufficient)

	stockRepo := postgres.NewStoreStockRepository(pool)
	src, err := stockRepo.Get(ctx, "000003", "P001")
	require.NoError(t, err)
	assert.True(t, src.CurrentQty.Equal(decimal.NewFromInt(1)))
	dst, err := stockRepo.Get(ctx, "000004", "P001")
	require.NoError(t, err)
	require.NotNil(t, dst)
	assert.True(t, dst.CurrentQty.Equal(decimal.NewFromInt(9)))

	entries, err := postgres.NewLedgerRepository(pool).List(ctx, repositoryFilter("000004", entity.EntryStatusMove))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestTransfer_InsufficientRollsBack(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedStock(t, pool, "000003", "P001", 2)

	uc := inventory.NewTransferUseCase(postgres.NewTxRunner(pool), logger.Nop())
	_, err := uc.Execute(ctx, transferReq("000003", "000004", "P001", 5))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	entries, err := postgres.NewLedgerRepository(pool).List(ctx, repositoryFilter("", ""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClose_SetsAndCreatesIdempotently(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedStock(t, pool, "000005", "A", 7)

	log := logger.Nop()
	counts := inventory.NewCountUseCase(postgres.NewPhysicalCountRepository(pool), log)
	for _, c := range []struct {
		item string
		qty  int64
	}{{"A", 10}, {"B", 5}} {
		qty := decimal.NewFromInt(c.qty)
		_, err := counts.Record(ctx, dto.CountRequest{
			StoreID: "000005", CountDate: "2024-05-31", ItemCode: c.item, ItemName: c.item,
			Quantity: &qty, CreatedBy: "park",
		})
		require.NoError(t, err)
	}

	closer := inventory.NewCloseUseCase(postgres.NewTxRunner(pool), postgres.NewStoreStockRepository(pool), nil, nil, log)
	for i := 0; i < 2; i++ {
		res, err := closer.Close(ctx, dto.CloseRequest{StoreID: "000005", Month: "2024-05"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Counted)
	}

	rows, err := postgres.NewStoreStockRepository(pool).ListByStore(ctx, "000005", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CurrentQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, rows[1].CurrentQty.Equal(decimal.NewFromInt(5)))
}
