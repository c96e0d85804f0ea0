// Package ledger contiene el cálculo puro de totales agregados de movimientos y eventos.
// Los totales se representan con registros de campos fijos; el mapa con claves
// camelCase solo existe en la frontera JSON.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// Scale escala de todos los importes (NUMERIC(10,2)).
const Scale = 2

// EntryTotals totales de movimientos: amountPaid, amountDue, total y workHours.
type EntryTotals struct {
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
	Total      decimal.Decimal
	WorkHours  decimal.Decimal
}

// EventTotals totales de eventos: lunchTotal, tastingTotal, addedWinesValue, extraChargeAmount y grandTotal.
type EventTotals struct {
	LunchTotal        decimal.Decimal
	TastingTotal      decimal.Decimal
	AddedWinesValue   decimal.Decimal
	ExtraChargeAmount decimal.Decimal
	GrandTotal        decimal.Decimal
}

// Round deja un importe con escala 2.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(Scale)
}

func orZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// NewEntryTotals construye los totales de movimientos redondeados; Total = AmountPaid + AmountDue.
func NewEntryTotals(paid, due, hours decimal.Decimal) EntryTotals {
	paid, due = Round(paid), Round(due)
	return EntryTotals{
		AmountPaid: paid,
		AmountDue:  due,
		Total:      paid.Add(due),
		WorkHours:  Round(hours),
	}
}

// SumEntries suma los movimientos en memoria. Los importes nil cuentan como cero.
func SumEntries(entries []*entity.Entry) EntryTotals {
	paid, due, hours := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e == nil {
			continue
		}
		paid = paid.Add(orZero(e.AmountPaid))
		due = due.Add(orZero(e.AmountDue))
		hours = hours.Add(orZero(e.WorkHours))
	}
	return NewEntryTotals(paid, due, hours)
}

// SumEvents suma los eventos en memoria.
func SumEvents(events []*entity.Event) EventTotals {
	var t EventTotals
	for _, e := range events {
		if e == nil {
			continue
		}
		t.LunchTotal = t.LunchTotal.Add(e.LunchTotal)
		t.TastingTotal = t.TastingTotal.Add(e.TastingTotal)
		t.AddedWinesValue = t.AddedWinesValue.Add(e.AddedWinesValue)
		t.ExtraChargeAmount = t.ExtraChargeAmount.Add(e.ExtraChargeAmount)
		t.GrandTotal = t.GrandTotal.Add(e.GrandTotal)
	}
	return t.rounded()
}

func (t EventTotals) rounded() EventTotals {
	return EventTotals{
		LunchTotal:        Round(t.LunchTotal),
		TastingTotal:      Round(t.TastingTotal),
		AddedWinesValue:   Round(t.AddedWinesValue),
		ExtraChargeAmount: Round(t.ExtraChargeAmount),
		GrandTotal:        Round(t.GrandTotal),
	}
}

// normalizeKey reduce un nombre de columna a su forma comparable:
// minúsculas y sin guiones bajos ("amount_paid", "amountpaid" y "amountPaid" coinciden).
func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "")
}

func normalizeColumns(cols map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(cols))
	for k, v := range cols {
		out[normalizeKey(k)] = v
	}
	return out
}

// EntryTotalsFromColumns traduce el resultado de un agregado SQL (columnas con nombres
// de la base, normalmente en minúsculas) a EntryTotals. Columnas ausentes valen cero.
func EntryTotalsFromColumns(cols map[string]decimal.Decimal) EntryTotals {
	n := normalizeColumns(cols)
	return NewEntryTotals(n["amountpaid"], n["amountdue"], n["workhours"])
}

// EventTotalsFromColumns traduce el resultado de un agregado SQL a EventTotals.
func EventTotalsFromColumns(cols map[string]decimal.Decimal) EventTotals {
	n := normalizeColumns(cols)
	return EventTotals{
		LunchTotal:        n["lunchtotal"],
		TastingTotal:      n["tastingtotal"],
		AddedWinesValue:   n["addedwinesvalue"],
		ExtraChargeAmount: n["extrachargeamount"],
		GrandTotal:        n["grandtotal"],
	}.rounded()
}
