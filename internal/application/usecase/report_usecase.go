package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// ReportParams parámetros del resumen. Fechas inclusivas.
type ReportParams struct {
	From       dto.Date
	To         dto.Date
	PersonID   *int64
	CategoryID *int64
}

// ReportUseCase resume los movimientos de un rango de fechas.
type ReportUseCase struct {
	entries  repository.EntryRepository
	renderer ReportRenderer
}

// NewReportUseCase construye el caso de uso; renderer puede ser nil si no se sirve el PDF.
func NewReportUseCase(entries repository.EntryRepository, renderer ReportRenderer) *ReportUseCase {
	return &ReportUseCase{entries: entries, renderer: renderer}
}

// Summary agrega importes y cuenta movimientos. Un rango invertido devuelve ceros.
func (uc *ReportUseCase) Summary(ctx context.Context, p ReportParams) (*dto.ReportSummaryResponse, error) {
	out := &dto.ReportSummaryResponse{FromDate: p.From, ToDate: p.To}
	if p.From.Time().After(p.To.Time()) {
		fillSummary(out, ledger.EntryTotals{})
		return out, nil
	}

	from, to := p.From.Time(), p.To.Time()
	f := repository.EntryFilter{DateFrom: &from, DateTo: &to, PersonID: p.PersonID, CategoryID: p.CategoryID}

	totals, err := uc.entries.SumTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	count, err := uc.entries.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	fillSummary(out, totals)
	out.TotalEntries = count
	return out, nil
}

// SummaryPDF genera el mismo resumen en PDF.
func (uc *ReportUseCase) SummaryPDF(ctx context.Context, p ReportParams) ([]byte, error) {
	if uc.renderer == nil {
		return nil, errors.New("generador de PDF no configurado")
	}
	s, err := uc.Summary(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderSummary(ctx, *s)
}

func fillSummary(out *dto.ReportSummaryResponse, t ledger.EntryTotals) {
	out.TotalAmountPaid = dto.NewMoney(t.AmountPaid)
	out.TotalAmountDue = dto.NewMoney(t.AmountDue)
	out.GrandTotal = dto.NewMoney(t.Total)
	out.TotalWorkHours = dto.NewMoney(t.WorkHours)
}
