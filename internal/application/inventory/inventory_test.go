package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	ledger    *memory.LedgerRepo
	stock     *memory.StoreStockRepo
	counts    *memory.PhysicalCountRepo
	purchases *inventory.PurchaseUseCase
	transfers *inventory.TransferUseCase
	countUC   *inventory.CountUseCase
	closer    *inventory.CloseUseCase
}

func newFixture(t *testing.T, renderer inventory.SheetRenderer) *fixture {
	t.Helper()
	s := memory.NewSeeded()
	log := logger.Nop()
	tx := memory.NewTxRunner(s)
	f := &fixture{
		store:  s,
		ledger: memory.NewLedgerRepository(s),
		stock:  memory.NewStoreStockRepository(s),
		counts: memory.NewPhysicalCountRepository(s),
	}
	f.purchases = inventory.NewPurchaseUseCase(f.ledger, log)
	f.transfers = inventory.NewTransferUseCase(tx, log)
	f.countUC = inventory.NewCountUseCase(f.counts, log)
	f.closer = inventory.NewCloseUseCase(tx, f.stock, memory.NewReferenceRepository(s), renderer, log)
	return f
}

func (f *fixture) seedStock(t *testing.T, storeID, item string, qty string) *entity.StoreStock {
	t.Helper()
	row := &entity.StoreStock{StoreID: storeID, ItemCode: item, ItemName: item, CurrentQty: decimal.RequireFromString(qty)}
	require.NoError(t, f.stock.Create(context.Background(), row))
	return row
}

func (f *fixture) qty(t *testing.T, storeID, item string) decimal.Decimal {
	t.Helper()
	row, err := f.stock.Get(context.Background(), storeID, item)
	require.NoError(t, err)
	require.NotNil(t, row, "no snapshot row for %s/%s", storeID, item)
	return row.CurrentQty
}

func (f *fixture) ledgerEntries(t *testing.T) []*entity.LedgerEntry {
	t.Helper()
	list, err := f.ledger.List(context.Background(), repository.LedgerFilter{})
	require.NoError(t, err)
	return list
}

func purchase(item string, qty string, price int64) dto.PurchaseRequest {
	return dto.PurchaseRequest{
		StoreID:         "000003",
		TransactionDate: "2024-05-02",
		Supplier:        "웰스토리",
		ItemCode:        item,
		ItemName:        "item " + item,
		Quantity:        decimal.RequireFromString(qty),
		UnitPrice:       price,
		CreatedBy:       "kim",
	}
}

func transfer(from, to, item, qty string) dto.TransferRequest {
	return dto.TransferRequest{
		Quantity:        decimal.RequireFromString(qty),
		FromStore:       from,
		StoreID:         to,
		TransactionDate: "2024-05-10",
		Supplier:        "본사",
		ItemCode:        item,
		ItemName:        "item " + item,
		UnitPrice:       500,
		CreatedBy:       "kim",
	}
}

func count(storeID, date, item, qty string) dto.CountRequest {
	q := decimal.RequireFromString(qty)
	return dto.CountRequest{
		StoreID:   storeID,
		CountDate: date,
		ItemCode:  item,
		ItemName:  "item " + item,
		Quantity:  &q,
		CreatedBy: "lee",
	}
}

// ── Compras ──────────────────────────────────────────────────────────────────

func TestPurchase_ComputesAmount(t *testing.T) {
	f := newFixture(t, nil)

	out, created, err := f.purchases.Record(context.Background(), purchase("P001", "10", 1000))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10000), out.Amount)
	assert.Equal(t, entity.EntryStatusNew, out.Status)
	assert.Equal(t, entity.NoSourceStore, out.FromStore)
	assert.Equal(t, entity.TaxTaxed, out.TaxType)
	assert.NotEmpty(t, out.TxRef)

	// una cantidad fraccionaria se redondea a won enteros
	out, _, err = f.purchases.Record(context.Background(), purchase("P002", "2.5", 333))
	require.NoError(t, err)
	assert.Equal(t, int64(833), out.Amount)
}

func TestPurchase_AmountOverrideStoredVerbatim(t *testing.T) {
	f := newFixture(t, nil)
	in := purchase("P001", "10", 1000)
	manual := int64(9500)
	in.Amount = &manual
	in.TaxType = entity.TaxExempt

	out, _, err := f.purchases.Record(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(9500), out.Amount)
	assert.Equal(t, entity.TaxExempt, out.TaxType)
}

func TestPurchase_DoesNotTouchSnapshot(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "4")

	_, _, err := f.purchases.Record(context.Background(), purchase("P001", "10", 1000))
	require.NoError(t, err)
	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(4)))
}

func TestPurchase_UpdateByID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first, _, err := f.purchases.Record(ctx, purchase("P001", "10", 1000))
	require.NoError(t, err)

	edit := purchase("P001", "12", 1000)
	edit.ID = first.ID
	out, created, err := f.purchases.Record(ctx, edit)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, out.ID)
	assert.Equal(t, entity.EntryStatusUpdate, out.Status)
	assert.Equal(t, int64(12000), out.Amount)
	assert.Equal(t, first.TxRef, out.TxRef)
	assert.Len(t, f.ledgerEntries(t), 1)
}

func TestPurchase_UpdateMissingID(t *testing.T) {
	f := newFixture(t, nil)
	edit := purchase("P001", "1", 1000)
	edit.ID = 77
	_, _, err := f.purchases.Record(context.Background(), edit)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_RejectsInvalid(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	zero := purchase("P001", "0", 1000)
	_, _, err := f.purchases.Record(ctx, zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badDate := purchase("P001", "1", 1000)
	badDate.TransactionDate = "2024/05/02"
	_, _, err = f.purchases.Record(ctx, badDate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.ledgerEntries(t))
}

func TestPurchase_RejectsAmountOverflow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// 1e10 x 1e10 = 1e20 no cabe en un amount int64
	_, _, err := f.purchases.Record(ctx, purchase("P009", "10000000000", 10000000000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.ledgerEntries(t))
}

func TestPurchase_RejectsUnstorableQuantity(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, qty := range []string{"0.0004", "1.2345", "100000000000", "123456789012.5"} {
		_, _, err := f.purchases.Record(ctx, purchase("P010", qty, 1000))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty %s", qty)
	}

	out, _, err := f.purchases.Record(ctx, purchase("P010", "99999999999.999", 1))
	require.NoError(t, err)
	assert.Equal(t, int64(100000000000), out.Amount)
	assert.Len(t, f.ledgerEntries(t), 1)
}

func TestTransfer_RejectsUnstorableQuantity(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000003", "P001", "1")

	_, err := f.transfers.Execute(ctx, transfer("000003", "000004", "P001", "0.0004"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stale := transfer("000003", "000004", "P001", "0.5")
	residual := decimal.RequireFromString("0.5001")
	stale.NewQty = &residual
	_, err = f.transfers.Execute(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(1)))
	assert.Empty(t, f.ledgerEntries(t))
}

func TestTransfer_RejectsDestinationOverflow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000003", "P001", "10")
	f.seedStock(t, "000004", "P001", "99999999999")

	_, err := f.transfers.Execute(ctx, transfer("000003", "000004", "P001", "5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(10)))
}

func TestCount_RejectsUnstorableQuantity(t *testing.T) {
	f := newFixture(t, nil)
	in := count("000005", "2024-05-31", "C1", "0.0004")
	_, err := f.countUC.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchase_CannotEditTransferEntry(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000003", "P001", "10")
	moved, err := f.transfers.Execute(ctx, transfer("000003", "000004", "P001", "2"))
	require.NoError(t, err)

	edit := purchase("P001", "5", 1000)
	edit.ID = moved.Entry.ID
	_, _, err = f.purchases.Record(ctx, edit)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchase_ListFilters(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, item := range []string{"A", "B", "C"} {
		_, _, err := f.purchases.Record(ctx, purchase(item, "1", 100))
		require.NoError(t, err)
	}
	other := purchase("D", "1", 100)
	other.StoreID = "000004"
	_, _, err := f.purchases.Record(ctx, other)
	require.NoError(t, err)

	out, err := f.purchases.List(ctx, inventory.LedgerQuery{StoreID: "000003", Page: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	_, err = f.purchases.List(ctx, inventory.LedgerQuery{Status: "deleted"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.purchases.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Traslados ────────────────────────────────────────────────────────────────

func TestTransfer_MovesStock(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "10")

	out, err := f.transfers.Execute(context.Background(), transfer("000003", "000004", "P001", "3"))
	require.NoError(t, err)
	assert.True(t, out.SourceQty.Equal(decimal.NewFromInt(7)))
	assert.True(t, out.DestinationQty.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, entity.EntryStatusMove, out.Entry.Status)
	assert.Equal(t, "000004", out.Entry.StoreID)
	assert.Equal(t, "000003", out.Entry.FromStore)
	assert.Equal(t, entity.TaxTaxed, out.Entry.TaxType)
	assert.Equal(t, int64(1500), out.Entry.Amount)

	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(7)))
	assert.True(t, f.qty(t, "000004", "P001").Equal(decimal.NewFromInt(3)))
	assert.Len(t, f.ledgerEntries(t), 1)
}

func TestTransfer_CreditsExistingDestination(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "10")
	f.seedStock(t, "000004", "P001", "1.5")

	_, err := f.transfers.Execute(context.Background(), transfer("000003", "000004", "P001", "10"))
	require.NoError(t, err)
	assert.True(t, f.qty(t, "000003", "P001").IsZero())
	assert.True(t, f.qty(t, "000004", "P001").Equal(decimal.RequireFromString("11.5")))
}

func TestTransfer_InsufficientWritesNothing(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "2")

	_, err := f.transfers.Execute(context.Background(), transfer("000003", "000004", "P001", "5"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(2)))
	assert.Empty(t, f.ledgerEntries(t))

	dest, err := f.stock.Get(context.Background(), "000004", "P001")
	require.NoError(t, err)
	assert.Nil(t, dest)
}

func TestTransfer_SourceMissing(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.transfers.Execute(context.Background(), transfer("000003", "000004", "P404", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransfer_SameStoreRejected(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "10")
	_, err := f.transfers.Execute(context.Background(), transfer("000003", "000003", "P001", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_StockIDMismatch(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "10")
	other := f.seedStock(t, "000003", "P002", "10")

	in := transfer("000003", "000004", "P001", "1")
	in.StockID = other.ID
	_, err := f.transfers.Execute(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_StaleResidualConflicts(t *testing.T) {
	f := newFixture(t, nil)
	row := f.seedStock(t, "000003", "P001", "10")
	ctx := context.Background()

	// el formulario se abrió cuando la fila tenía 10; mientras tanto otro movió 4
	_, err := f.transfers.Execute(ctx, transfer("000003", "000005", "P001", "4"))
	require.NoError(t, err)

	in := transfer("000003", "000004", "P001", "3")
	in.StockID = row.ID
	stale := decimal.NewFromInt(7)
	in.NewQty = &stale
	_, err = f.transfers.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(6)))

	fresh := decimal.NewFromInt(3)
	in.NewQty = &fresh
	out, err := f.transfers.Execute(ctx, in)
	require.NoError(t, err)
	assert.True(t, out.SourceQty.Equal(decimal.NewFromInt(3)))
}

func TestTransfer_ConcurrentNeverOversells(t *testing.T) {
	f := newFixture(t, nil)
	f.seedStock(t, "000003", "P001", "10")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.transfers.Execute(context.Background(), transfer("000003", "000004", "P001", "3"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 3, ok)
	assert.True(t, f.qty(t, "000003", "P001").Equal(decimal.NewFromInt(1)))
	assert.True(t, f.qty(t, "000004", "P001").Equal(decimal.NewFromInt(9)))
	assert.Len(t, f.ledgerEntries(t), 3)
}

// ── Conteos ──────────────────────────────────────────────────────────────────

func TestCount_DuplicateRejectedFirstKept(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	first, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "10"))
	require.NoError(t, err)

	_, err = f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "99"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.countUC.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))

	// otro día es otro conteo
	_, err = f.countUC.Record(ctx, count("000003", "2024-06-01", "A", "8"))
	assert.NoError(t, err)
}

func TestCount_ZeroAllowedNegativeRejected(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "0"))
	assert.NoError(t, err)

	_, err = f.countUC.Record(ctx, count("000003", "2024-05-31", "B", "-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missingQty := count("000003", "2024-05-31", "C", "1")
	missingQty.Quantity = nil
	_, err = f.countUC.Record(ctx, missingQty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCount_Update(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	rec, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "10"))
	require.NoError(t, err)

	out, err := f.countUC.Update(ctx, rec.ID, count("000003", "2024-05-31", "A", "12"))
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(12)))

	_, err = f.countUC.Update(ctx, 999, count("000003", "2024-05-31", "A", "12"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCount_ListRequiresStore(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.countUC.List(context.Background(), inventory.CountQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Cierre de mes ────────────────────────────────────────────────────────────

func TestClose_SetsExistingAndCreatesMissing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000003", "A", "7")
	_, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "10"))
	require.NoError(t, err)
	_, err = f.countUC.Record(ctx, count("000003", "2024-05-31", "B", "5"))
	require.NoError(t, err)

	out, err := f.closer.Close(ctx, dto.CloseRequest{StoreID: "000003"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.CloseID)
	assert.Equal(t, 2, out.Counted)
	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, 1, out.Created)

	assert.True(t, f.qty(t, "000003", "A").Equal(decimal.NewFromInt(10)))
	assert.True(t, f.qty(t, "000003", "B").Equal(decimal.NewFromInt(5)))
}

func TestClose_Idempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000003", "A", "7")
	_, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "10"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := f.closer.Close(ctx, dto.CloseRequest{StoreID: "000003", Month: "2024-05"})
		require.NoError(t, err)
	}
	assert.True(t, f.qty(t, "000003", "A").Equal(decimal.NewFromInt(10)))

	rows, err := f.stock.ListByStore(ctx, "000003", 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestClose_LatestCountWinsAndMonthFilter(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, c := range []dto.CountRequest{
		count("000003", "2024-05-31", "A", "4"),
		count("000003", "2024-05-10", "A", "9"),
		count("000003", "2024-06-02", "A", "1"),
	} {
		_, err := f.countUC.Record(ctx, c)
		require.NoError(t, err)
	}

	out, err := f.closer.Close(ctx, dto.CloseRequest{StoreID: "000003", Month: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Counted)
	assert.True(t, f.qty(t, "000003", "A").Equal(decimal.NewFromInt(4)))

	_, err = f.closer.Close(ctx, dto.CloseRequest{StoreID: "000003"})
	require.NoError(t, err)
	assert.True(t, f.qty(t, "000003", "A").Equal(decimal.NewFromInt(1)))
}

func TestClose_DoesNotTouchOtherStores(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.seedStock(t, "000004", "A", "3")
	_, err := f.countUC.Record(ctx, count("000003", "2024-05-31", "A", "10"))
	require.NoError(t, err)

	_, err = f.closer.Close(ctx, dto.CloseRequest{StoreID: "000003"})
	require.NoError(t, err)
	assert.True(t, f.qty(t, "000004", "A").Equal(decimal.NewFromInt(3)))
}

func TestClose_InvalidMonth(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.closer.Close(context.Background(), dto.CloseRequest{StoreID: "000003", Month: "May"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type recordingRenderer struct {
	got inventory.StockSheet
}

func (r *recordingRenderer) RenderStockSheet(_ context.Context, sheet inventory.StockSheet) ([]byte, error) {
	r.got = sheet
	return []byte("%PDF-fake"), nil
}

func TestSheet_UsesStoreNameAndRows(t *testing.T) {
	rr := &recordingRenderer{}
	f := newFixture(t, rr)
	f.seedStock(t, "000003", "B", "2")
	f.seedStock(t, "000003", "A", "1")

	doc, err := f.closer.Sheet(context.Background(), "000003")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	assert.Equal(t, "놀부유황오리진흙구이 잠실점", rr.got.StoreName)
	require.Len(t, rr.got.Rows, 2)
	assert.Equal(t, "A", rr.got.Rows[0].ItemCode)
}

func TestSheet_NoRenderer(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.closer.Sheet(context.Background(), "000003")
	assert.Error(t, err)
}
