package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event representa una visita a la bodega (almuerzo y/o cata).
// LunchAndTastingTotal y GrandTotal son derivados; ver RecalculateTotals.
type Event struct {
	ID               int64
	CreatedTimestamp time.Time
	VisitDate        time.Time
	VisitTime        string // HH:MM:SS

	AdultLunchGuests   int
	AdultTastingGuests int
	ChildrenGuests     int
	ExtraGuests        int

	HotDishVegetarian string
	HotDishMeat       string
	Masterclass       bool
	MealExtraInfo     string

	Company      string
	ContactName  string
	ContactPhone string

	SpecialPriceEnabled bool
	SpecialLunchPrice   *decimal.Decimal
	LunchGroupSize      int
	LunchRate           decimal.Decimal
	LunchTotal          decimal.Decimal

	SpecialTastingPrice *decimal.Decimal
	TastingGroupSize    int
	TastingRate         decimal.Decimal
	TastingTotal        decimal.Decimal

	LunchAndTastingTotal decimal.Decimal

	AddedWinesCount int
	AddedWinesValue decimal.Decimal

	ExtraChargeComment string
	ExtraChargeAmount  decimal.Decimal

	GrandTotal    decimal.Decimal
	InvoiceIssued bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalculateTotals fija los totales derivados a partir de sus componentes:
// LunchAndTastingTotal = LunchTotal + TastingTotal y
// GrandTotal = LunchAndTastingTotal + AddedWinesValue + ExtraChargeAmount.
// Es idempotente y sobrescribe cualquier valor previo.
func (e *Event) RecalculateTotals() {
	e.LunchAndTastingTotal = e.LunchTotal.Add(e.TastingTotal)
	e.GrandTotal = e.LunchAndTastingTotal.Add(e.AddedWinesValue).Add(e.ExtraChargeAmount)
}
