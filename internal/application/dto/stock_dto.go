package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreStockResponse una fila del snapshot.
type StoreStockResponse struct {
	ID         int64           `json:"id"`
	StoreID    string          `json:"store_id"`
	ItemCode   string          `json:"stock_code"`
	ItemName   string          `json:"stock_name"`
	CurrentQty decimal.Decimal `json:"current_qty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StoreStockListResponse listado paginado del snapshot.
type StoreStockListResponse struct {
	Items []StoreStockResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
