package domain

import (
	"fmt"
	"time"
)

// DateLayout es el formato en el wire de las fechas de movimiento y de conteo.
const DateLayout = "2006-01-02"

// MonthLayout es el formato en el wire del mes de cierre.
const MonthLayout = "2006-01"

// ParseDate interpreta una fecha YYYY-MM-DD de forma estricta (UTC, sin hora).
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// MonthRange devuelve el primer y el último día de un mes YYYY-MM.
func MonthRange(month string) (from, to time.Time, err error) {
	first, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidInput, month)
	}
	return first, first.AddDate(0, 1, -1), nil
}
