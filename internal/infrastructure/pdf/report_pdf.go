// Package pdf genera la versión imprimible del resumen de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la bodega  │  Rango de fechas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Importe                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GENERAL                                               │
//	│  FOOTER: fecha de emisión                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 110, Green: 20, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// SummaryRenderer implementa usecase.ReportRenderer usando Maroto v2.
type SummaryRenderer struct {
	title string
	now   func() time.Time
}

var _ usecase.ReportRenderer = (*SummaryRenderer)(nil)

// NewSummaryRenderer construye el renderer; title encabeza el documento.
func NewSummaryRenderer(title string) *SummaryRenderer {
	return &SummaryRenderer{title: title, now: time.Now}
}

// RenderSummary genera el PDF y devuelve sus bytes.
func (r *SummaryRenderer) RenderSummary(_ context.Context, s dto.ReportSummaryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Resumen de movimientos", true).
		WithAuthor(r.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r.title, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(4))

	m.AddRows(amountRow("Total pagado", s.TotalAmountPaid, false))
	m.AddRows(amountRow("Total adeudado", s.TotalAmountDue, false))
	m.AddRows(amountRow("Horas trabajadas", s.TotalWorkHours, false))
	m.AddRows(countRow(s.TotalEntries))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountRow("TOTAL GENERAL", s.GrandTotal, true))

	m.AddRows(line.NewRow(6))
	m.AddRows(footerRow(r.now()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, s dto.ReportSummaryResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de movimientos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Desde: "+s.FromDate.Time().Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Hasta: "+s.ToDate.Time().Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func amountRow(label string, v dto.Money, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(label, props.Text{Style: style, Top: 2})),
		col.New(4).Add(text.New(v.Decimal().StringFixed(2), props.Text{
			Style: style, Align: align.Right, Top: 2,
		})),
	)
}

func countRow(n int64) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Movimientos", props.Text{Top: 2})),
		col.New(4).Add(text.New(fmt.Sprintf("%d", n), props.Text{Align: align.Right, Top: 2})),
	)
}

func footerRow(at time.Time) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Emitido el "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Align: align.Center,
		}),
	))
}
