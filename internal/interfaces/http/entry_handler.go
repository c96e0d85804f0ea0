package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// EntryService operaciones de movimientos que expone la API.
type EntryService interface {
	Create(ctx context.Context, req dto.EntryRequest) (*dto.EntryResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.EntryResponse, error)
	List(ctx context.Context, f repository.EntryFilter, page repository.PageQuery) (*dto.EntryPage, error)
	Update(ctx context.Context, id int64, req dto.EntryRequest) (*dto.EntryResponse, error)
	Delete(ctx context.Context, id int64) error
}

// EntryHandler maneja las peticiones HTTP para Entry.
type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// List godoc
// @Summary      Listar movimientos
// @Description  Incluye pageTotal (filas de la página) y grandTotal (todo el conjunto filtrado).
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        dateFrom     query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        dateTo       query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        personId     query  int     false  "Persona"
// @Param        categoryId   query  int     false  "Categoría"
// @Param        description  query  string  false  "Subcadena de la descripción"
// @Param        page         query  int     false  "Página (0-based)"  default(0)
// @Param        size         query  int     false  "Tamaño"            default(15)
// @Param        sort         query  string  false  "campo,asc|desc"    default(date,desc)
// @Success      200          {object}  dto.EntryPage
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	q := newQuery(c)
	f := repository.EntryFilter{
		DateFrom:    q.date("dateFrom"),
		DateTo:      q.date("dateTo"),
		PersonID:    q.int64("personId"),
		CategoryID:  q.int64("categoryId"),
		Description: q.str("description"),
	}
	page := q.page()
	if err := q.err(); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.List(c.UserContext(), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear movimiento
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del movimiento"
// @Param        body  body  dto.EntryRequest  true  "Datos del movimiento"
// @Success      200   {object}  dto.EntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         entries
// @Security     Bearer
// @Param        id   path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
