package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry es un movimiento del libro: horas trabajadas, lo pagado y lo adeudado a una persona.
// Los importes son opcionales; nil cuenta como cero en cualquier suma.
type Entry struct {
	ID           int64
	Date         time.Time
	Description  string
	PersonID     int64
	PersonName   string // solo lectura (JOIN)
	CategoryID   int64
	CategoryName string // solo lectura (JOIN)
	WorkHours    *decimal.Decimal
	AmountPaid   *decimal.Decimal
	AmountDue    *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
