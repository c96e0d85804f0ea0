package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// query acumula errores de parseo de parámetros de consulta para responder un único 400.
type query struct {
	c    *fiber.Ctx
	errs dto.ValidationErrors
}

func newQuery(c *fiber.Ctx) *query {
	return &query{c: c, errs: dto.ValidationErrors{}}
}

func (q *query) fail(name, msg string) {
	if _, ok := q.errs[name]; !ok {
		q.errs[name] = msg
	}
}

func (q *query) str(name string) string {
	return strings.TrimSpace(q.c.Query(name))
}

func (q *query) int(name string, def int) int {
	raw := q.str(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(name, "debe ser un número entero")
		return def
	}
	return n
}

func (q *query) int64(name string) *int64 {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.fail(name, "debe ser un número entero")
		return nil
	}
	return &n
}

func (q *query) bool(name string) *bool {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(name, "debe ser true o false")
		return nil
	}
	return &b
}

func (q *query) date(name string) *time.Time {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		q.fail(name, "formato de fecha inválido, se espera YYYY-MM-DD")
		return nil
	}
	t := d.Time()
	return &t
}

// timestamp acepta RFC 3339 o una fecha YYYY-MM-DD. endOfDay extiende la fecha sola al final del día.
func (q *query) timestamp(name string, endOfDay bool) *time.Time {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		q.fail(name, "formato inválido, se espera RFC 3339 o YYYY-MM-DD")
		return nil
	}
	t := d.Time()
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// page lee page (0-based), size y sort=campo,dirección.
func (q *query) page() repository.PageQuery {
	p := repository.PageQuery{
		Page: q.int("page", 0),
		Size: q.int("size", repository.DefaultPageSize),
	}
	if p.Page < 0 {
		q.fail("page", "debe ser mayor o igual a 0")
	}
	if p.Size < 1 {
		q.fail("size", "debe ser mayor que 0")
	}
	if sort := q.str("sort"); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		p.SortField = strings.TrimSpace(field)
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			p.SortDesc = true
		default:
			q.fail("sort", "la dirección debe ser asc o desc")
		}
	}
	return p.Normalize()
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.Validation("parámetros inválidos", q.errs)
}

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("identificador inválido", map[string]string{name: "debe ser un entero positivo"})
	}
	return id, nil
}
