package dto

import "github.com/shopspring/decimal"

// TransferRequest body para POST /api/transfers.
// FromStore entrega el stock y StoreID lo recibe. StockID (la fila de origen desde la que se abrió
// el formulario) y NewQty (el saldo que calculó el cliente) son opcionales; si vienen se comparan
// con la fila bloqueada para que un formulario viejo no pise una cantidad más nueva.
type TransferRequest struct {
	Quantity        decimal.Decimal  `json:"qty" form:"qty" validate:"gt=0,qty"`
	FromStore       string           `json:"from_store" form:"from_store" validate:"required,max=20,nefield=StoreID"`
	StoreID         string           `json:"store_id" form:"store_id" validate:"required,max=20"`
	TransactionDate string           `json:"transaction_date" form:"transaction_date" validate:"required,datetime=2006-01-02"`
	Supplier        string           `json:"supply" form:"supply" validate:"max=100"`
	ItemCode        string           `json:"stock_code" form:"stock_code" validate:"required,max=50"`
	ItemName        string           `json:"stock_name" form:"stock_name" validate:"required,max=200"`
	Specification   string           `json:"specification" form:"specification" validate:"max=100"`
	Unit            string           `json:"unit" form:"unit" validate:"max=20"`
	UnitPrice       int64            `json:"unit_price" form:"unit_price" validate:"gte=0,max=1000000000"`
	Amount          *int64           `json:"amount,omitempty" form:"amount" validate:"omitempty,gte=0"`
	CreatedBy       string           `json:"created_by" form:"created_by" validate:"required,max=100"`
	TransNo         int64            `json:"trans_no" form:"trans_no" validate:"gte=0"`
	AccuQty         decimal.Decimal  `json:"accu_qty" form:"accu_qty" validate:"qty"`
	StockID         int64            `json:"stock_id" form:"stock_id" validate:"gte=0"`
	NewQty          *decimal.Decimal `json:"new_qty,omitempty" form:"new_qty" validate:"omitempty,gte=0,qty"`
}

// TransferResponse resultado de un traslado: el asiento del destino y las dos cantidades resultantes.
type TransferResponse struct {
	Entry          LedgerEntryResponse `json:"entry"`
	SourceQty      decimal.Decimal     `json:"source_qty"`
	DestinationQty decimal.Decimal     `json:"destination_qty"`
}
