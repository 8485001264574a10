package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// PurchaseUseCase registra las compras directas de tienda (사입) en el libro.
// Las compras nunca tocan el snapshot de stock.
type PurchaseUseCase struct {
	ledgerRepo repository.LedgerRepository
	log        *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(ledgerRepo repository.LedgerRepository, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{ledgerRepo: ledgerRepo, log: log.Component("purchase")}
}

// Record inserta una compra nueva (status new) o, si in.ID está definido, edita ese asiento
// (status update). created indica si se insertó una fila.
func (uc *PurchaseUseCase) Record(ctx context.Context, in dto.PurchaseRequest) (out *dto.LedgerEntryResponse, created bool, err error) {
	if in.StoreID == "" || in.ItemCode == "" || in.ItemName == "" || in.CreatedBy == "" {
		return nil, false, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice < 0 {
		return nil, false, domain.ErrInvalidInput
	}
	if err := checkQuantities(in.Quantity, in.AccuQty); err != nil {
		return nil, false, err
	}
	date, err := domain.ParseDate(in.TransactionDate)
	if err != nil {
		return nil, false, err
	}

	amount, ok := entity.LineAmount(in.Quantity, in.UnitPrice)
	if !ok && in.Amount == nil {
		return nil, false, fmt.Errorf("%w: qty %s x unit_price %d overflows the amount", domain.ErrInvalidInput, in.Quantity, in.UnitPrice)
	}
	if in.Amount != nil {
		amount = *in.Amount
	}
	taxType := in.TaxType
	if taxType == "" {
		taxType = entity.TaxTaxed
	}
	now := time.Now().UTC()

	if in.ID != 0 {
		entry, err := uc.ledgerRepo.GetByID(ctx, in.ID)
		if err != nil {
			return nil, false, err
		}
		if entry == nil {
			return nil, false, fmt.Errorf("%w: ledger entry %d", domain.ErrNotFound, in.ID)
		}
		if entry.Status == entity.EntryStatusMove {
			return nil, false, fmt.Errorf("%w: entry %d is a transfer and cannot be edited as a purchase", domain.ErrInvalidInput, in.ID)
		}
		applyPurchase(entry, in, date, taxType, amount)
		entry.Status = entity.EntryStatusUpdate
		entry.UpdatedAt = now
		if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
			return nil, false, err
		}
		uc.log.Info().Int64("id", entry.ID).Str("store_id", entry.StoreID).Msg("purchase updated")
		resp := dto.NewLedgerEntryResponse(entry)
		return &resp, false, nil
	}

	entry := &entity.LedgerEntry{
		Status:    entity.EntryStatusNew,
		FromStore: entity.NoSourceStore,
		TxRef:     uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPurchase(entry, in, date, taxType, amount)
	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, false, err
	}
	uc.log.Info().
		Int64("id", entry.ID).
		Str("store_id", entry.StoreID).
		Str("item_code", entry.ItemCode).
		Str("qty", entry.Quantity.String()).
		Int64("amount", entry.Amount).
		Msg("purchase recorded")
	resp := dto.NewLedgerEntryResponse(entry)
	return &resp, true, nil
}

func applyPurchase(e *entity.LedgerEntry, in dto.PurchaseRequest, date time.Time, taxType string, amount int64) {
	e.StoreID = in.StoreID
	e.TransactionDate = date
	e.Supplier = in.Supplier
	e.ItemCode = in.ItemCode
	e.ItemName = in.ItemName
	e.TaxType = taxType
	e.Specification = in.Specification
	e.Unit = in.Unit
	e.Quantity = in.Quantity
	e.UnitPrice = in.UnitPrice
	e.Amount = amount
	e.CreatedBy = in.CreatedBy
	e.TransNo = in.TransNo
	e.AccuQty = in.AccuQty
}

// Get devuelve un asiento del libro; domain.ErrNotFound si no existe.
func (uc *PurchaseUseCase) Get(ctx context.Context, id int64) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: ledger entry %d", domain.ErrNotFound, id)
	}
	resp := dto.NewLedgerEntryResponse(entry)
	return &resp, nil
}

// LedgerQuery filtros de List. Fechas en YYYY-MM-DD; vacío significa sin límite.
type LedgerQuery struct {
	StoreID string
	Status  string
	From    string
	To      string
	Page    dto.PageRequest
}

// List devuelve los asientos del libro (compras y traslados) del más nuevo al más viejo.
func (uc *PurchaseUseCase) List(ctx context.Context, q LedgerQuery) (*dto.LedgerListResponse, error) {
	q.Page.Normalize()
	filter := repository.LedgerFilter{
		StoreID: q.StoreID,
		Status:  q.Status,
		Limit:   q.Page.Limit,
		Offset:  q.Page.Offset,
	}
	switch q.Status {
	case "", entity.EntryStatusNew, entity.EntryStatusUpdate, entity.EntryStatusMove:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, q.Status)
	}
	var err error
	if filter.From, err = optionalDate(q.From); err != nil {
		return nil, err
	}
	if filter.To, err = optionalDate(q.To); err != nil {
		return nil, err
	}

	list, err := uc.ledgerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.NewLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset},
	}, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// checkQuantities rechaza cantidades que las columnas del libro redondearían o desbordarían.
func checkQuantities(qs ...decimal.Decimal) error {
	for _, q := range qs {
		if !entity.ValidQuantity(q) {
			return fmt.Errorf("%w: quantity %s exceeds 3 decimals or 1e11", domain.ErrInvalidInput, q)
		}
	}
	return nil
}
