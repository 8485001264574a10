package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhysicalCount es una cantidad contada a mano para (tienda, ítem, fecha de conteo).
// Hay como máximo un registro por terna; el cierre de mes los copia a StoreStock.
type PhysicalCount struct {
	ID        int64
	StoreID   string
	CountDate time.Time
	ItemCode  string
	ItemName  string
	Quantity  decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
