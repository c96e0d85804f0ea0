package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// AuditService lectura del historial de auditoría.
type AuditService interface {
	History(ctx context.Context, f repository.AuditFilter, page repository.PageQuery) (*dto.PageResponse[dto.AuditLogResponse], error)
	EntityHistory(ctx context.Context, table string, recordID int64, page repository.PageQuery) (*dto.PageResponse[dto.AuditLogResponse], error)
}

type AuditHandler struct {
	svc AuditService
}

func NewAuditHandler(svc AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// History godoc
// @Summary      Historial de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        tableName  query  string  false  "Tabla (exacta)"
// @Param        recordId   query  int     false  "ID del registro"
// @Param        changedBy  query  string  false  "Usuario (subcadena)"
// @Param        startDate  query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Param        page       query  int     false  "Página (0-based)"  default(0)
// @Param        size       query  int     false  "Tamaño"            default(15)
// @Success      200        {object}  dto.PageResponse[dto.AuditLogResponse]
// @Router       /api/audit [get]
func (h *AuditHandler) History(c *fiber.Ctx) error {
	q := newQuery(c)
	f := repository.AuditFilter{
		TableName: q.str("tableName"),
		RecordID:  q.int64("recordId"),
		ChangedBy: q.str("changedBy"),
		StartDate: q.timestamp("startDate", false),
		EndDate:   q.timestamp("endDate", true),
	}
	page := q.page()
	if err := q.err(); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.History(c.UserContext(), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EntityHistory godoc
// @Summary      Historial de un registro
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table  path  string  true  "Tabla"
// @Param        id     path  int     true  "ID del registro"
// @Success      200    {object}  dto.PageResponse[dto.AuditLogResponse]
// @Router       /api/audit/entity/{table}/{id} [get]
func (h *AuditHandler) EntityHistory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	q := newQuery(c)
	page := q.page()
	if err := q.err(); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.EntityHistory(c.UserContext(), c.Params("table"), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
