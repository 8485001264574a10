package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountRequest body para POST /api/counts y PUT /api/counts/:id.
type CountRequest struct {
	StoreID   string           `json:"store_id" form:"store_id" validate:"required,max=20"`
	CountDate string           `json:"transaction_date" form:"transaction_date" validate:"required,datetime=2006-01-02"`
	ItemCode  string           `json:"stock_code" form:"stock_code" validate:"required,max=50"`
	ItemName  string           `json:"stock_name" form:"stock_name" validate:"required,max=200"`
	Quantity  *decimal.Decimal `json:"qty" form:"qty" validate:"required,gte=0,qty"`
	CreatedBy string           `json:"created_by" form:"created_by" validate:"required,max=100"`
}

// CountResponse un conteo físico tal como lo devuelve la API.
type CountResponse struct {
	ID        int64           `json:"id"`
	StoreID   string          `json:"store_id"`
	CountDate string          `json:"transaction_date"`
	ItemCode  string          `json:"stock_code"`
	ItemName  string          `json:"stock_name"`
	Quantity  decimal.Decimal `json:"qty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CountListResponse listado paginado de conteos.
type CountListResponse struct {
	Items []CountResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
