package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreStock es la cantidad disponible de un ítem en una tienda (fila del snapshot).
// Las filas las crean los traslados y cierres de mes cuando hacen falta y nunca se borran.
type StoreStock struct {
	ID         int64
	StoreID    string
	ItemCode   string
	ItemName   string
	CurrentQty decimal.Decimal
	UpdatedAt  time.Time
}
