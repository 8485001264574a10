package dto

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// NewLedgerEntryResponse mapea un asiento del libro a su forma en la API.
func NewLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID,
		StoreID:         e.StoreID,
		TransactionDate: e.TransactionDate.Format(domain.DateLayout),
		Supplier:        e.Supplier,
		ItemCode:        e.ItemCode,
		ItemName:        e.ItemName,
		TaxType:         e.TaxType,
		Specification:   e.Specification,
		Unit:            e.Unit,
		Quantity:        e.Quantity,
		UnitPrice:       e.UnitPrice,
		Amount:          e.Amount,
		Status:          e.Status,
		FromStore:       e.FromStore,
		CreatedBy:       e.CreatedBy,
		TransNo:         e.TransNo,
		AccuQty:         e.AccuQty,
		TxRef:           e.TxRef,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// NewStoreStockResponse mapea una fila del snapshot.
func NewStoreStockResponse(s *entity.StoreStock) StoreStockResponse {
	return StoreStockResponse{
		ID:         s.ID,
		StoreID:    s.StoreID,
		ItemCode:   s.ItemCode,
		ItemName:   s.ItemName,
		CurrentQty: s.CurrentQty,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewCountResponse mapea un conteo físico.
func NewCountResponse(c *entity.PhysicalCount) CountResponse {
	return CountResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		CountDate: c.CountDate.Format(domain.DateLayout),
		ItemCode:  c.ItemCode,
		ItemName:  c.ItemName,
		Quantity:  c.Quantity,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
