package inventory

import (
	"context"
	"errors"
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

// TransferUseCase mueve stock de un ítem entre dos tiendas (이동).
//
// La búsqueda, la verificación de saldo, el asiento en el libro, el débito del origen y el crédito
// del destino corren en una sola transacción con ambas filas bloqueadas (SELECT FOR UPDATE); así
// los traslados concurrentes sobre la misma fila se serializan y no se pierden actualizaciones.
type TransferUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, log: log.Component("transfer")}
}

// Execute ejecuta el traslado. Errores:
//   - domain.ErrInvalidInput: petición mal formada, origen igual a destino, stock_id no coincide
//   - domain.ErrNotFound: la tienda origen no tiene fila de snapshot para el ítem
//   - domain.ErrInsufficientStock: qty supera la cantidad del origen (no se escribe nada)
//   - domain.ErrConflict: new_qty no coincide con la cantidad bloqueada menos qty (formulario viejo)
func (uc *TransferUseCase) Execute(ctx context.Context, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.FromStore == "" || in.StoreID == "" || in.ItemCode == "" || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromStore == in.StoreID {
		return nil, fmt.Errorf("%w: source and destination store are the same", domain.ErrInvalidInput)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := checkQuantities(in.Quantity, in.AccuQty); err != nil {
		return nil, err
	}
	if in.NewQty != nil && !entity.ValidQuantity(*in.NewQty) {
		return nil, fmt.Errorf("%w: new_qty %s exceeds 3 decimals or 1e11", domain.ErrInvalidInput, in.NewQty)
	}
	date, err := domain.ParseDate(in.TransactionDate)
	if err != nil {
		return nil, err
	}

	amount, ok := entity.LineAmount(in.Quantity, in.UnitPrice)
	if !ok && in.Amount == nil {
		return nil, fmt.Errorf("%w: qty %s x unit_price %d overflows the amount", domain.ErrInvalidInput, in.Quantity, in.UnitPrice)
	}
	if in.Amount != nil {
		amount = *in.Amount
	}
	now := time.Now().UTC()
	txRef := uuid.NewString()

	var out dto.TransferResponse
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StoreStockRepository,
		_ repository.PhysicalCountRepository,
	) error {
		// Bloquear en orden de tienda para que traslados opuestos del mismo ítem no hagan deadlock.
		locked := make(map[string]*entity.StoreStock, 2)
		for _, storeID := range lockOrder(in.FromStore, in.StoreID) {
			row, err := stockRepo.GetForUpdate(ctx, storeID, in.ItemCode)
			if err != nil {
				return err
			}
			locked[storeID] = row
		}

		source := locked[in.FromStore]
		if source == nil {
			return fmt.Errorf("%w: no stock of %s at store %s", domain.ErrNotFound, in.ItemCode, in.FromStore)
		}
		if in.StockID != 0 && in.StockID != source.ID {
			return fmt.Errorf("%w: stock_id %d is not the %s row of store %s", domain.ErrInvalidInput, in.StockID, in.ItemCode, in.FromStore)
		}
		if in.Quantity.GreaterThan(source.CurrentQty) {
			return fmt.Errorf("%w: requested %s, available %s", domain.ErrInsufficientStock, in.Quantity, source.CurrentQty)
		}
		residual := source.CurrentQty.Sub(in.Quantity)
		if in.NewQty != nil && !in.NewQty.Equal(residual) {
			return fmt.Errorf("%w: new_qty %s but store %s now has %s", domain.ErrConflict, in.NewQty, in.FromStore, source.CurrentQty)
		}

		entry := &entity.LedgerEntry{
			StoreID:         in.StoreID,
			TransactionDate: date,
			Supplier:        in.Supplier,
			ItemCode:        in.ItemCode,
			ItemName:        in.ItemName,
			TaxType:         entity.TaxTaxed,
			Specification:   in.Specification,
			Unit:            in.Unit,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			Amount:          amount,
			Status:          entity.EntryStatusMove,
			FromStore:       in.FromStore,
			CreatedBy:       in.CreatedBy,
			TransNo:         in.TransNo,
			AccuQty:         in.AccuQty,
			TxRef:           txRef,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := ledgerRepo.Create(ctx, entry); err != nil {
			return err
		}

		if err := stockRepo.SetQuantity(ctx, source.ID, residual, now); err != nil {
			return err
		}

		destQty := in.Quantity
		if dest := locked[in.StoreID]; dest != nil {
			destQty = dest.CurrentQty.Add(in.Quantity)
			if !entity.ValidQuantity(destQty) {
				return fmt.Errorf("%w: store %s would hold %s of %s", domain.ErrInvalidInput, in.StoreID, destQty, in.ItemCode)
			}
			if err := stockRepo.SetQuantity(ctx, dest.ID, destQty, now); err != nil {
				return err
			}
		} else {
			err := stockRepo.Create(ctx, &entity.StoreStock{
				StoreID:    in.StoreID,
				ItemCode:   in.ItemCode,
				ItemName:   in.ItemName,
				CurrentQty: destQty,
				UpdatedAt:  now,
			})
			if errors.Is(err, domain.ErrDuplicate) {
				// otra petición creó la fila destino después de nuestra búsqueda
				return fmt.Errorf("%w: destination row for %s created concurrently, retry", domain.ErrConflict, in.ItemCode)
			}
			if err != nil {
				return err
			}
		}

		out = dto.TransferResponse{
			Entry:          dto.NewLedgerEntryResponse(entry),
			SourceQty:      residual,
			DestinationQty: destQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tx_ref", txRef).
		Str("from_store", in.FromStore).
		Str("to_store", in.StoreID).
		Str("item_code", in.ItemCode).
		Str("qty", in.Quantity.String()).
		Str("source_qty", out.SourceQty.String()).
		Msg("transfer executed")
	return &out, nil
}

func lockOrder(a, b string) []string {
	if b < a {
		return []string{b, a}
	}
	return []string{a, b}
}
