package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/usecase"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(y int, m time.Month, d int) *dto.Date {
	v := dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func assertMoney(t *testing.T, want string, got dto.Money) {
	t.Helper()
	assert.Equal(t, want, got.Decimal().StringFixed(2))
}

type entryFixture struct {
	uc      *usecase.EntryUseCase
	entries *fakeEntries
	audit   *recordingAuditor
}

func newEntryFixture() entryFixture {
	persons := newFakePersons("Ana")
	categories := newFakeCategories("Poda")
	entries := newFakeEntries(persons, categories)
	aud := &recordingAuditor{}
	return entryFixture{
		uc:      usecase.NewEntryUseCase(entries, persons, categories, &fakeTx{}, aud),
		entries: entries,
		audit:   aud,
	}
}

func TestEntryUseCase_Create_DevuelveNombres(t *testing.T) {
	fx := newEntryFixture()

	resp, err := fx.uc.Create(context.Background(), dto.EntryRequest{
		Date: day(2024, 3, 1), Description: "poda viña", PersonID: 1, CategoryID: 1,
		WorkHours: dec("8"), AmountPaid: dec("100.456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.PersonName)
	assert.Equal(t, "Poda", resp.CategoryName)
	require.NotNil(t, resp.AmountPaid)
	assertMoney(t, "100.46", *resp.AmountPaid)
	assert.Nil(t, resp.AmountDue)
	assert.Len(t, fx.audit.calls, 1)
}

func TestEntryUseCase_Create_PersonaInexistente(t *testing.T) {
	fx := newEntryFixture()

	_, err := fx.uc.Create(context.Background(), dto.EntryRequest{
		Date: day(2024, 3, 1), Description: "x", PersonID: 7, CategoryID: 1,
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Persona no encontrada con id: 7")
	assert.Empty(t, fx.entries.all())
}

func TestEntryUseCase_Create_CategoriaInexistente(t *testing.T) {
	fx := newEntryFixture()

	_, err := fx.uc.Create(context.Background(), dto.EntryRequest{
		Date: day(2024, 3, 1), Description: "x", PersonID: 1, CategoryID: 4,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Categoría no encontrada con id: 4")
}

func seedEntries(t *testing.T, fx entryFixture, amounts ...string) {
	t.Helper()
	for _, a := range amounts {
		_, err := fx.uc.Create(context.Background(), dto.EntryRequest{
			Date: day(2024, 1, 1), Description: "mov", PersonID: 1, CategoryID: 1,
			AmountPaid: dec(a), AmountDue: dec("1"),
		})
		require.NoError(t, err)
	}
}

func TestEntryUseCase_List_SinFiltrosSumaEnMemoria(t *testing.T) {
	fx := newEntryFixture()
	seedEntries(t, fx, "10", "20", "30")

	page, err := fx.uc.List(context.Background(), repository.EntryFilter{}, repository.PageQuery{Size: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.TotalElements)
	assert.Len(t, page.Content, 2)
	assertMoney(t, "30.00", page.PageTotal.AmountPaid)
	assertMoney(t, "32.00", page.PageTotal.Total)
	assertMoney(t, "60.00", page.GrandTotal.AmountPaid)
	assertMoney(t, "63.00", page.GrandTotal.Total)
	assertMoney(t, "0.00", page.GrandTotal.WorkHours)

	assert.Equal(t, 1, fx.entries.listAmountsHit)
	assert.Empty(t, fx.entries.sumFilters)
}

func TestEntryUseCase_List_ConFiltrosAgregaEnBase(t *testing.T) {
	fx := newEntryFixture()
	seedEntries(t, fx, "10")
	fixed := ledger.NewEntryTotals(decimal.NewFromInt(5), decimal.NewFromInt(2), decimal.Zero)
	fx.entries.sum = &fixed

	personID := int64(1)
	f := repository.EntryFilter{PersonID: &personID}
	page, err := fx.uc.List(context.Background(), f, repository.PageQuery{})
	require.NoError(t, err)

	assertMoney(t, "7.00", page.GrandTotal.Total)
	assertMoney(t, "10.00", page.PageTotal.AmountPaid)
	require.Len(t, fx.entries.sumFilters, 1)
	assert.Equal(t, f, fx.entries.sumFilters[0])
	assert.Zero(t, fx.entries.listAmountsHit)
}

func TestEntryUseCase_List_PaginasSumanElTotalGeneral(t *testing.T) {
	ctx := context.Background()
	persons := newFakePersons("Ana", "Luis")
	categories := newFakeCategories("Poda")
	entries := newFakeEntries(persons, categories)
	uc := usecase.NewEntryUseCase(entries, persons, categories, &fakeTx{}, nil)

	for i, a := range []string{"10.10", "20.25", "30", "40.05", "5.5"} {
		_, err := uc.Create(ctx, dto.EntryRequest{
			Date: day(2024, 1, i+1), Description: "mov", PersonID: int64(i%2 + 1), CategoryID: 1,
			WorkHours: dec("1.5"), AmountPaid: dec(a), AmountDue: dec("2"),
		})
		require.NoError(t, err)
	}

	luis := int64(2)
	cases := []struct {
		name      string
		filter    repository.EntryFilter
		wantPages int
		wantPaid  string
	}{
		{"sin filtros", repository.EntryFilter{}, 3, "105.90"},
		{"por persona", repository.EntryFilter{PersonID: &luis}, 1, "60.30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := uc.List(ctx, tc.filter, repository.PageQuery{Size: 2})
			require.NoError(t, err)
			require.Equal(t, tc.wantPages, first.TotalPages)

			paid, due, total, hours := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
			for p := 0; p < first.TotalPages; p++ {
				page, err := uc.List(ctx, tc.filter, repository.PageQuery{Page: p, Size: 2})
				require.NoError(t, err)
				paid = paid.Add(page.PageTotal.AmountPaid.Decimal())
				due = due.Add(page.PageTotal.AmountDue.Decimal())
				total = total.Add(page.PageTotal.Total.Decimal())
				hours = hours.Add(page.PageTotal.WorkHours.Decimal())
				assertMoney(t, first.GrandTotal.Total.Decimal().StringFixed(2), page.GrandTotal.Total)
			}

			assertMoney(t, tc.wantPaid, first.GrandTotal.AmountPaid)
			assertMoney(t, paid.StringFixed(2), first.GrandTotal.AmountPaid)
			assertMoney(t, due.StringFixed(2), first.GrandTotal.AmountDue)
			assertMoney(t, total.StringFixed(2), first.GrandTotal.Total)
			assertMoney(t, hours.StringFixed(2), first.GrandTotal.WorkHours)
		})
	}
	assert.Len(t, entries.sumFilters, 2, "solo la consulta filtrada agrega en base")
	assert.Equal(t, 4, entries.listAmountsHit)
}

func TestEntryUseCase_UpdateYDelete(t *testing.T) {
	fx := newEntryFixture()
	seedEntries(t, fx, "10")

	resp, err := fx.uc.Update(context.Background(), 1, dto.EntryRequest{
		Date: day(2024, 2, 2), Description: "corregido", PersonID: 1, CategoryID: 1, AmountPaid: dec("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, "corregido", resp.Description)
	assert.Nil(t, resp.AmountDue)

	require.NoError(t, fx.uc.Delete(context.Background(), 1))
	_, err = fx.uc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	actions := []string{}
	for _, c := range fx.audit.calls {
		actions = append(actions, c.Action)
	}
	assert.Equal(t, []string{"INSERT", "UPDATE", "DELETE"}, actions)
}
