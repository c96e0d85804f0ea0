package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/usecase"
)

// ReportService resumen de movimientos.
type ReportService interface {
	Summary(ctx context.Context, p usecase.ReportParams) (*dto.ReportSummaryResponse, error)
	SummaryPDF(ctx context.Context, p usecase.ReportParams) ([]byte, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// params exige fromDate y toDate; personId y categoryId son opcionales.
func (h *ReportHandler) params(c *fiber.Ctx) (usecase.ReportParams, error) {
	q := newQuery(c)
	from, to := q.date("fromDate"), q.date("toDate")
	if from == nil {
		q.fail("fromDate", "es obligatorio (YYYY-MM-DD)")
	}
	if to == nil {
		q.fail("toDate", "es obligatorio (YYYY-MM-DD)")
	}
	p := usecase.ReportParams{PersonID: q.int64("personId"), CategoryID: q.int64("categoryId")}
	if err := q.err(); err != nil {
		return p, err
	}
	p.From, p.To = dto.NewDate(*from), dto.NewDate(*to)
	return p, nil
}

// Summary godoc
// @Summary      Resumen de movimientos
// @Description  Un rango con fromDate posterior a toDate devuelve ceros.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        fromDate    query  string  true   "Desde (YYYY-MM-DD)"
// @Param        toDate      query  string  true   "Hasta (YYYY-MM-DD)"
// @Param        personId    query  int     false  "Persona"
// @Param        categoryId  query  int     false  "Categoría"
// @Success      200         {object}  dto.ReportSummaryResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	p, err := h.params(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Summary(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen de movimientos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        fromDate    query  string  true   "Desde (YYYY-MM-DD)"
// @Param        toDate      query  string  true   "Hasta (YYYY-MM-DD)"
// @Param        personId    query  int     false  "Persona"
// @Param        categoryId  query  int     false  "Categoría"
// @Success      200
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	p, err := h.params(c)
	if err != nil {
		return writeError(c, err)
	}
	b, err := h.svc.SummaryPDF(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="resumen_%s_%s.pdf"`, p.From, p.To))
	return c.Send(b)
}
