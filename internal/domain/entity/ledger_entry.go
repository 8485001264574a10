package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un asiento del libro.
const (
	EntryStatusNew    = "new"    // compra (사입)
	EntryStatusUpdate = "update" // compra editada en su lugar
	EntryStatusMove   = "move"   // traslado (이동) acreditado a la tienda que recibe
)

// Clasificaciones tributarias.
const (
	TaxTaxed  = "과세"
	TaxExempt = "면세"
)

// NoSourceStore es el from_store de los asientos que no vienen de otra tienda.
const NoSourceStore = "000000"

// LedgerEntry es una compra o un traslado registrado contra una tienda.
// Amount normalmente es Quantity * UnitPrice, pero quien registra puede sobrescribirlo.
type LedgerEntry struct {
	ID              int64
	StoreID         string
	TransactionDate time.Time
	Supplier        string
	ItemCode        string
	ItemName        string
	TaxType         string
	Specification   string
	Unit            string
	Quantity        decimal.Decimal
	UnitPrice       int64
	Amount          int64
	Status          string
	FromStore       string
	CreatedBy       string
	TransNo         int64
	AccuQty         decimal.Decimal
	TxRef           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuantityScale es la cantidad de decimales que se guardan en las cantidades (numeric(14,3)).
const QuantityScale = 3

var (
	// maxQuantity es la cota superior exclusiva de un valor numeric(14,3).
	maxQuantity = decimal.New(1, 11)
	maxAmount   = decimal.NewFromInt(math.MaxInt64)
)

// ValidQuantity indica si q se puede guardar sin redondeo ni desbordamiento:
// como máximo QuantityScale decimales y |q| < 1e11.
func ValidQuantity(q decimal.Decimal) bool {
	return q.Round(QuantityScale).Equal(q) && q.Abs().LessThan(maxQuantity)
}

// LineAmount devuelve qty * unitPrice redondeado a won enteros. ok es false cuando el resultado
// no cabe en un int64.
func LineAmount(qty decimal.Decimal, unitPrice int64) (amount int64, ok bool) {
	v := qty.Mul(decimal.NewFromInt(unitPrice)).Round(0)
	if v.Abs().GreaterThan(maxAmount) {
		return 0, false
	}
	return v.IntPart(), true
}
