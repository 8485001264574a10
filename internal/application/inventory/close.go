package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// CloseUseCase ejecuta el cierre de mes (월마감): los conteos físicos de la tienda reemplazan las
// cantidades del snapshot. Las cantidades se asignan, nunca se suman: cerrar dos veces deja el
// mismo estado que cerrar una.
type CloseUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StoreStockRepository
	refRepo   repository.ReferenceRepository
	renderer  SheetRenderer
	log       *logger.Logger
}

// NewCloseUseCase construye el caso de uso. stockRepo, refRepo y renderer solo los usa Sheet;
// renderer puede ser nil y en ese caso Sheet falla.
func NewCloseUseCase(
	txRunner TxRunner,
	stockRepo repository.StoreStockRepository,
	refRepo repository.ReferenceRepository,
	renderer SheetRenderer,
	log *logger.Logger,
) *CloseUseCase {
	return &CloseUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		refRepo:   refRepo,
		renderer:  renderer,
		log:       log.Component("close"),
	}
}

// Close copia los conteos de la tienda al snapshot dentro de una transacción. Con in.Month solo
// se usan los conteos de ese mes. Si un ítem se contó más de una vez gana el conteo más reciente.
func (uc *CloseUseCase) Close(ctx context.Context, in dto.CloseRequest) (*dto.CloseResponse, error) {
	if in.StoreID == "" {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrInvalidInput)
	}
	var from, to *time.Time
	if in.Month != "" {
		first, last, err := domain.MonthRange(in.Month)
		if err != nil {
			return nil, err
		}
		from, to = &first, &last
	}

	out := &dto.CloseResponse{
		CloseID: uuid.NewString(),
		StoreID: in.StoreID,
		Month:   in.Month,
	}
	now := time.Now().UTC()

	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		stockRepo repository.StoreStockRepository,
		countRepo repository.PhysicalCountRepository,
	) error {
		counts, err := countRepo.ListByStore(ctx, in.StoreID, from, to, 0, 0)
		if err != nil {
			return err
		}
		latest := latestPerItem(counts)
		out.Counted = len(latest)

		for _, c := range latest {
			row, err := stockRepo.GetForUpdate(ctx, in.StoreID, c.ItemCode)
			if err != nil {
				return err
			}
			if row != nil {
				if err := stockRepo.SetQuantity(ctx, row.ID, c.Quantity, now); err != nil {
					return err
				}
				out.Updated++
				continue
			}
			err = stockRepo.Create(ctx, &entity.StoreStock{
				StoreID:    in.StoreID,
				ItemCode:   c.ItemCode,
				ItemName:   c.ItemName,
				CurrentQty: c.Quantity,
				UpdatedAt:  now,
			})
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("%w: snapshot row for %s created concurrently, retry", domain.ErrConflict, c.ItemCode)
			}
			if err != nil {
				return err
			}
			out.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("close_id", out.CloseID).
		Str("store_id", out.StoreID).
		Str("month", out.Month).
		Int("counted", out.Counted).
		Int("updated", out.Updated).
		Int("created", out.Created).
		Msg("month-end close applied")
	return out, nil
}

// latestPerItem conserva el último conteo de cada ítem, en el orden en que aparece cada ítem.
// counts debe venir ordenado por fecha de conteo ascendente.
func latestPerItem(counts []*entity.PhysicalCount) []*entity.PhysicalCount {
	idx := make(map[string]int, len(counts))
	out := make([]*entity.PhysicalCount, 0, len(counts))
	for _, c := range counts {
		if i, ok := idx[c.ItemCode]; ok {
			out[i] = c
			continue
		}
		idx[c.ItemCode] = len(out)
		out = append(out, c)
	}
	return out
}

// Sheet genera el snapshot actual de la tienda como un PDF imprimible.
func (uc *CloseUseCase) Sheet(ctx context.Context, storeID string) ([]byte, error) {
	if storeID == "" {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrInvalidInput)
	}
	if uc.renderer == nil {
		return nil, errors.New("stock sheet renderer not configured")
	}
	rows, err := uc.stockRepo.ListByStore(ctx, storeID, 0, 0)
	if err != nil {
		return nil, err
	}

	sheet := StockSheet{StoreID: storeID, StoreName: storeID, PrintedAt: time.Now(), Rows: rows}
	if uc.refRepo != nil {
		stores, err := uc.refRepo.ListStores(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range stores {
			if s.Code == storeID {
				sheet.StoreName = s.Name
				break
			}
		}
	}
	return uc.renderer.RenderStockSheet(ctx, sheet)
}
