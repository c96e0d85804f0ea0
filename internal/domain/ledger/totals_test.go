package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", field, want, got.String())
}

// =============================================================================
// Movimientos
// =============================================================================

func TestSumEntries_NilCuentaComoCero(t *testing.T) {
	t.Parallel()

	entries := []*entity.Entry{
		{AmountPaid: dp("100.00"), AmountDue: dp("20.00"), WorkHours: dp("8.00")},
		{AmountPaid: nil, AmountDue: dp("5.50"), WorkHours: nil},
		{AmountPaid: dp("0.10"), AmountDue: nil, WorkHours: dp("1.25")},
	}

	got := ledger.SumEntries(entries)
	assertDec(t, "100.10", got.AmountPaid, "amountPaid")
	assertDec(t, "25.50", got.AmountDue, "amountDue")
	assertDec(t, "125.60", got.Total, "total")
	assertDec(t, "9.25", got.WorkHours, "workHours")
}

func TestSumEntries_ListaVaciaEsCero(t *testing.T) {
	t.Parallel()

	got := ledger.SumEntries(nil)
	assert.True(t, got.AmountPaid.IsZero())
	assert.True(t, got.AmountDue.IsZero())
	assert.True(t, got.Total.IsZero())
	assert.True(t, got.WorkHours.IsZero())
}

func TestSumEntries_TotalEsPagadoMasAdeudado(t *testing.T) {
	t.Parallel()

	entries := []*entity.Entry{
		{AmountPaid: dp("33.33"), AmountDue: dp("66.67")},
		{AmountPaid: dp("0.01")},
	}
	got := ledger.SumEntries(entries)
	assert.True(t, got.Total.Equal(got.AmountPaid.Add(got.AmountDue)))
}

func TestEntryTotalsFromColumns_NormalizaClaves(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cols map[string]decimal.Decimal
	}{
		{"minusculas", map[string]decimal.Decimal{"amountpaid": d("10"), "amountdue": d("2.5"), "workhours": d("3")}},
		{"snake_case", map[string]decimal.Decimal{"amount_paid": d("10"), "amount_due": d("2.5"), "work_hours": d("3")}},
		{"camelCase", map[string]decimal.Decimal{"amountPaid": d("10"), "amountDue": d("2.5"), "workHours": d("3")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.EntryTotalsFromColumns(tc.cols)
			assertDec(t, "10.00", got.AmountPaid, "amountPaid")
			assertDec(t, "2.50", got.AmountDue, "amountDue")
			assertDec(t, "12.50", got.Total, "total")
			assertDec(t, "3.00", got.WorkHours, "workHours")
		})
	}
}

func TestEntryTotalsFromColumns_ColumnasAusentesSonCero(t *testing.T) {
	t.Parallel()

	got := ledger.EntryTotalsFromColumns(map[string]decimal.Decimal{"amountpaid": d("4")})
	assertDec(t, "4", got.AmountPaid, "amountPaid")
	assert.True(t, got.AmountDue.IsZero())
	assertDec(t, "4", got.Total, "total")
}

// Ambos caminos de cálculo deben coincidir sobre el mismo conjunto.
func TestEntryTotals_CaminosCoinciden(t *testing.T) {
	t.Parallel()

	entries := []*entity.Entry{
		{AmountPaid: dp("12.34"), AmountDue: dp("1.00"), WorkHours: dp("2.50")},
		{AmountPaid: dp("7.66"), WorkHours: dp("0.50")},
		{AmountDue: dp("3.00")},
	}
	inMemory := ledger.SumEntries(entries)
	fromSQL := ledger.EntryTotalsFromColumns(map[string]decimal.Decimal{
		"amountpaid": d("20.00"), "amountdue": d("4.00"), "total": d("24.00"), "workhours": d("3.00"),
	})

	assert.True(t, inMemory.AmountPaid.Equal(fromSQL.AmountPaid))
	assert.True(t, inMemory.AmountDue.Equal(fromSQL.AmountDue))
	assert.True(t, inMemory.Total.Equal(fromSQL.Total))
	assert.True(t, inMemory.WorkHours.Equal(fromSQL.WorkHours))
}

// =============================================================================
// Eventos
// =============================================================================

func TestSumEvents(t *testing.T) {
	t.Parallel()

	e1 := &entity.Event{LunchTotal: d("100"), TastingTotal: d("50"), AddedWinesValue: d("30"), ExtraChargeAmount: d("20")}
	e2 := &entity.Event{LunchTotal: d("10.5"), ExtraChargeAmount: d("0.5")}
	e1.RecalculateTotals()
	e2.RecalculateTotals()

	got := ledger.SumEvents([]*entity.Event{e1, e2})
	assertDec(t, "110.50", got.LunchTotal, "lunchTotal")
	assertDec(t, "50.00", got.TastingTotal, "tastingTotal")
	assertDec(t, "30.00", got.AddedWinesValue, "addedWinesValue")
	assertDec(t, "20.50", got.ExtraChargeAmount, "extraChargeAmount")
	assertDec(t, "211.00", got.GrandTotal, "grandTotal")
}

func TestEventTotalsFromColumns_NormalizaClaves(t *testing.T) {
	t.Parallel()

	got := ledger.EventTotalsFromColumns(map[string]decimal.Decimal{
		"lunchtotal":          d("1"),
		"TASTINGTOTAL":        d("2"),
		"added_wines_value":   d("3"),
		"extraChargeAmount":   d("4"),
		"grandtotal":          d("10"),
		"columna_desconocida": d("99"),
	})
	assertDec(t, "1", got.LunchTotal, "lunchTotal")
	assertDec(t, "2", got.TastingTotal, "tastingTotal")
	assertDec(t, "3", got.AddedWinesValue, "addedWinesValue")
	assertDec(t, "4", got.ExtraChargeAmount, "extraChargeAmount")
	assertDec(t, "10", got.GrandTotal, "grandTotal")
}

func TestRound_EscalaDos(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.24", ledger.Round(d("1.235")).StringFixed(2))
	assert.Equal(t, "0.00", ledger.Round(decimal.Zero).StringFixed(2))
}
