package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest body para POST /api/purchases (JSON o campos de formulario).
// Un ID distinto de cero edita ese asiento en lugar de insertar uno nuevo.
// Amount es opcional: si falta se calcula como qty * unit_price.
type PurchaseRequest struct {
	ID              int64           `json:"id" form:"id" validate:"gte=0"`
	StoreID         string          `json:"store_id" form:"store_id" validate:"required,max=20"`
	TransactionDate string          `json:"transaction_date" form:"transaction_date" validate:"required,datetime=2006-01-02"`
	Supplier        string          `json:"supply" form:"supply" validate:"max=100"`
	ItemCode        string          `json:"stock_code" form:"stock_code" validate:"required,max=50"`
	ItemName        string          `json:"stock_name" form:"stock_name" validate:"required,max=200"`
	TaxType         string          `json:"tax_yn" form:"tax_yn" validate:"omitempty,oneof=과세 면세"`
	Specification   string          `json:"specification" form:"specification" validate:"max=100"`
	Unit            string          `json:"unit" form:"unit" validate:"max=20"`
	Quantity        decimal.Decimal `json:"qty" form:"qty" validate:"gt=0,qty"`
	UnitPrice       int64           `json:"unit_price" form:"unit_price" validate:"gte=0,max=1000000000"`
	Amount          *int64          `json:"amount,omitempty" form:"amount" validate:"omitempty,gte=0"`
	CreatedBy       string          `json:"created_by" form:"created_by" validate:"required,max=100"`
	TransNo         int64           `json:"trans_no" form:"trans_no" validate:"gte=0"`
	AccuQty         decimal.Decimal `json:"accu_qty" form:"accu_qty" validate:"qty"`
}

// LedgerEntryResponse una fila del libro tal como la devuelve la API.
type LedgerEntryResponse struct {
	ID              int64           `json:"id"`
	StoreID         string          `json:"store_id"`
	TransactionDate string          `json:"transaction_date"`
	Supplier        string          `json:"supply"`
	ItemCode        string          `json:"stock_code"`
	ItemName        string          `json:"stock_name"`
	TaxType         string          `json:"tax_yn"`
	Specification   string          `json:"specification"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"qty"`
	UnitPrice       int64           `json:"unit_price"`
	Amount          int64           `json:"amount"`
	Status          string          `json:"status"`
	FromStore       string          `json:"from_store"`
	CreatedBy       string          `json:"created_by"`
	TransNo         int64           `json:"trans_no"`
	AccuQty         decimal.Decimal `json:"accu_qty"`
	TxRef           string          `json:"tx_ref,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LedgerListResponse listado paginado del libro.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
