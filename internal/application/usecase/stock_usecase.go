package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockUseCase acceso de solo lectura al snapshot por tienda.
type StockUseCase struct {
	repo repository.StoreStockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StoreStockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// GetByID devuelve una fila del snapshot; domain.ErrNotFound si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id int64) (*dto.StoreStockResponse, error) {
	row, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: stock row %d", domain.ErrNotFound, id)
	}
	resp := dto.NewStoreStockResponse(row)
	return &resp, nil
}

// List lista las filas del snapshot de una tienda con paginación.
func (uc *StockUseCase) List(ctx context.Context, storeID string, page dto.PageRequest) (*dto.StoreStockListResponse, error) {
	if storeID == "" {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrInvalidInput)
	}
	page.Normalize()
	list, err := uc.repo.ListByStore(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreStockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.NewStoreStockResponse(s))
	}
	return &dto.StoreStockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
