package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/usecase"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
)

type stubRenderer struct {
	got *dto.ReportSummaryResponse
	err error
}

func (s *stubRenderer) RenderSummary(_ context.Context, r dto.ReportSummaryResponse) ([]byte, error) {
	s.got = &r
	return []byte("%PDF-1.4"), s.err
}

func TestReportUseCase_Summary(t *testing.T) {
	entries := newFakeEntries(newFakePersons(), newFakeCategories())
	fixed := ledger.NewEntryTotals(decimal.RequireFromString("150"), decimal.RequireFromString("50.5"), decimal.RequireFromString("12"))
	entries.sum = &fixed
	entries.count = 4
	uc := usecase.NewReportUseCase(entries, nil)

	categoryID := int64(2)
	s, err := uc.Summary(context.Background(), usecase.ReportParams{
		From: *day(2024, 1, 1), To: *day(2024, 1, 31), CategoryID: &categoryID,
	})
	require.NoError(t, err)
	assertMoney(t, "150.00", s.TotalAmountPaid)
	assertMoney(t, "50.50", s.TotalAmountDue)
	assertMoney(t, "200.50", s.GrandTotal)
	assertMoney(t, "12.00", s.TotalWorkHours)
	assert.Equal(t, int64(4), s.TotalEntries)
	assert.Equal(t, "2024-01-01", s.FromDate.String())

	require.Len(t, entries.sumFilters, 1)
	f := entries.sumFilters[0]
	assert.Nil(t, f.PersonID)
	assert.Equal(t, &categoryID, f.CategoryID)
	assert.Equal(t, day(2024, 1, 31).Time(), *f.DateTo)
}

func TestReportUseCase_Summary_RangoInvertidoDevuelveCeros(t *testing.T) {
	entries := newFakeEntries(newFakePersons(), newFakeCategories())
	entries.count = 9
	uc := usecase.NewReportUseCase(entries, nil)

	s, err := uc.Summary(context.Background(), usecase.ReportParams{From: *day(2024, 2, 1), To: *day(2024, 1, 1)})
	require.NoError(t, err)
	assertMoney(t, "0.00", s.GrandTotal)
	assert.Zero(t, s.TotalEntries)
	assert.Equal(t, "2024-02-01", s.FromDate.String())
	assert.Empty(t, entries.sumFilters)
}

func TestReportUseCase_SummaryPDF(t *testing.T) {
	entries := newFakeEntries(newFakePersons(), newFakeCategories())
	r := &stubRenderer{}
	uc := usecase.NewReportUseCase(entries, r)

	b, err := uc.SummaryPDF(context.Background(), usecase.ReportParams{From: *day(2024, 1, 1), To: *day(2024, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
	require.NotNil(t, r.got)
	assert.Equal(t, "2024-01-01", r.got.ToDate.String())

	r.err = errors.New("fallo")
	_, err = uc.SummaryPDF(context.Background(), usecase.ReportParams{From: *day(2024, 1, 1), To: *day(2024, 1, 1)})
	assert.Error(t, err)

	_, err = usecase.NewReportUseCase(entries, nil).SummaryPDF(context.Background(), usecase.ReportParams{})
	assert.Error(t, err)
}
