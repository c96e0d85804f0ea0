package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// EventService operaciones de eventos que expone la API.
type EventService interface {
	Create(ctx context.Context, req dto.EventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	List(ctx context.Context, f repository.EventFilter, page repository.PageQuery) (*dto.EventPage, error)
	Update(ctx context.Context, id int64, req dto.EventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id int64) error
}

// EventHandler maneja las peticiones HTTP para Event.
type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List godoc
// @Summary      Listar eventos
// @Description  Incluye pageTotal y grandTotal; todos los filtros aplican a ambos y al listado.
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        dateFrom       query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        dateTo         query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        company        query  string  false  "Subcadena de la empresa"
// @Param        contactName    query  string  false  "Subcadena del contacto"
// @Param        specialPrice   query  bool    false  "Precio especial"
// @Param        masterclass    query  bool    false  "Masterclass"
// @Param        invoiceIssued  query  bool    false  "Factura emitida"
// @Param        page           query  int     false  "Página (0-based)"  default(0)
// @Param        size           query  int     false  "Tamaño"            default(15)
// @Param        sort           query  string  false  "campo,asc|desc"    default(visitDate,desc)
// @Success      200            {object}  dto.EventPage
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	q := newQuery(c)
	f := repository.EventFilter{
		DateFrom:      q.date("dateFrom"),
		DateTo:        q.date("dateTo"),
		Company:       q.str("company"),
		ContactName:   q.str("contactName"),
		SpecialPrice:  q.bool("specialPrice"),
		Masterclass:   q.bool("masterclass"),
		InvoiceIssued: q.bool("invoiceIssued"),
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
// @Summary      Obtener evento por ID
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.EventRequest
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
// @Summary      Actualizar evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del evento"
// @Param        body  body  dto.EventRequest  true  "Datos del evento"
// @Success      200   {object}  dto.EventResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.EventRequest
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
// @Summary      Eliminar evento
// @Tags         events
// @Security     Bearer
// @Param        id   path  int  true  "ID del evento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
