package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// PersonService operaciones de personas que expone la API.
type PersonService interface {
	Create(ctx context.Context, req dto.PersonRequest) (*dto.PersonResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PersonResponse, error)
	List(ctx context.Context, f repository.NameFilter, page repository.PageQuery) (*dto.PageResponse[dto.PersonResponse], error)
	Update(ctx context.Context, id int64, req dto.PersonRequest) (*dto.PersonResponse, error)
	Delete(ctx context.Context, id int64) error
	Archive(ctx context.Context, id int64) (*dto.PersonResponse, error)
}

// PersonHandler maneja las peticiones HTTP para Person.
type PersonHandler struct {
	svc PersonService
}

// NewPersonHandler construye el handler.
func NewPersonHandler(svc PersonService) *PersonHandler {
	return &PersonHandler{svc: svc}
}

// List godoc
// @Summary      Listar personas
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "Subcadena del nombre"
// @Param        active  query  bool    false  "Estado"
// @Param        page    query  int     false  "Página (0-based)"  default(0)
// @Param        size    query  int     false  "Tamaño"            default(15)
// @Param        sort    query  string  false  "campo,asc|desc"    default(id,asc)
// @Success      200     {object}  dto.PageResponse[dto.PersonResponse]
// @Router       /api/persons [get]
func (h *PersonHandler) List(c *fiber.Ctx) error {
	q := newQuery(c)
	f := repository.NameFilter{Name: q.str("name"), Active: q.bool("active")}
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
// @Summary      Obtener persona por ID
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [get]
func (h *PersonHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear persona
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PersonRequest  true  "Datos de la persona"
// @Success      201   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/persons [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var in dto.PersonRequest
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
// @Summary      Actualizar persona
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID de la persona"
// @Param        body  body  dto.PersonRequest  true  "Datos de la persona"
// @Success      200   {object}  dto.PersonResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [put]
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PersonRequest
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
// @Summary      Eliminar persona
// @Description  Falla con 409 si la persona tiene movimientos asociados.
// @Tags         persons
// @Security     Bearer
// @Param        id   path  int  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [delete]
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Archive godoc
// @Summary      Archivar persona
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id}/archive [put]
func (h *PersonHandler) Archive(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Archive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
