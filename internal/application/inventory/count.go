package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// CountUseCase registra conteos físicos (재고실사).
type CountUseCase struct {
	countRepo repository.PhysicalCountRepository
	log       *logger.Logger
}

func NewCountUseCase(countRepo repository.PhysicalCountRepository, log *logger.Logger) *CountUseCase {
	return &CountUseCase{countRepo: countRepo, log: log.Component("count")}
}

// checkCount valida la petición y devuelve la fecha de conteo ya interpretada.
func checkCount(in dto.CountRequest) (time.Time, error) {
	if in.StoreID == "" || in.ItemCode == "" || in.ItemName == "" || in.CreatedBy == "" {
		return time.Time{}, domain.ErrInvalidInput
	}
	if in.Quantity == nil || in.Quantity.IsNegative() {
		return time.Time{}, fmt.Errorf("%w: qty must be zero or more", domain.ErrInvalidInput)
	}
	if err := checkQuantities(*in.Quantity); err != nil {
		return time.Time{}, err
	}
	return domain.ParseDate(in.CountDate)
}

// Record guarda un conteo nuevo. Un segundo conteo para la misma tienda, ítem y fecha se rechaza
// con domain.ErrDuplicate y el primero queda intacto.
func (uc *CountUseCase) Record(ctx context.Context, in dto.CountRequest) (*dto.CountResponse, error) {
	date, err := checkCount(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.countRepo.FindByKey(ctx, in.StoreID, in.ItemCode, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s already counted at store %s on %s", domain.ErrDuplicate, in.ItemCode, in.StoreID, in.CountDate)
	}

	now := time.Now().UTC()
	count := &entity.PhysicalCount{
		StoreID:   in.StoreID,
		CountDate: date,
		ItemCode:  in.ItemCode,
		ItemName:  in.ItemName,
		Quantity:  *in.Quantity,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// el índice único reporta un insert concurrente de la misma clave como ErrDuplicate
	if err := uc.countRepo.Create(ctx, count); err != nil {
		return nil, err
	}
	uc.log.Debug().Int64("id", count.ID).Str("store_id", count.StoreID).Str("item_code", count.ItemCode).Msg("count recorded")
	resp := dto.NewCountResponse(count)
	return &resp, nil
}

// Update sobrescribe el conteo identificado por id.
func (uc *CountUseCase) Update(ctx context.Context, id int64, in dto.CountRequest) (*dto.CountResponse, error) {
	date, err := checkCount(in)
	if err != nil {
		return nil, err
	}
	count, err := uc.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, fmt.Errorf("%w: count %d", domain.ErrNotFound, id)
	}
	count.StoreID = in.StoreID
	count.CountDate = date
	count.ItemCode = in.ItemCode
	count.ItemName = in.ItemName
	count.Quantity = *in.Quantity
	count.CreatedBy = in.CreatedBy
	count.UpdatedAt = time.Now().UTC()
	if err := uc.countRepo.Update(ctx, count); err != nil {
		return nil, err
	}
	resp := dto.NewCountResponse(count)
	return &resp, nil
}

func (uc *CountUseCase) Get(ctx context.Context, id int64) (*dto.CountResponse, error) {
	count, err := uc.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, fmt.Errorf("%w: count %d", domain.ErrNotFound, id)
	}
	resp := dto.NewCountResponse(count)
	return &resp, nil
}

// CountQuery filtros de List. StoreID es obligatorio.
type CountQuery struct {
	StoreID string
	From    string
	To      string
	Page    dto.PageRequest
}

// List devuelve los conteos de una tienda ordenados por fecha de conteo.
func (uc *CountUseCase) List(ctx context.Context, q CountQuery) (*dto.CountListResponse, error) {
	if q.StoreID == "" {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrInvalidInput)
	}
	q.Page.Normalize()
	from, err := optionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(q.To)
	if err != nil {
		return nil, err
	}
	list, err := uc.countRepo.ListByStore(ctx, q.StoreID, from, to, q.Page.Limit, q.Page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CountResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCountResponse(c))
	}
	return &dto.CountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset},
	}, nil
}
