package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// psql builder de squirrel con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// isOutOfRange detecta valores que la columna no puede representar
// (22003 numeric_value_out_of_range, 22P02 invalid_text_representation).
func isOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22003" || pgErr.Code == "22P02"
	}
	return false
}

// wrapErr traduce errores de pgx a errores de dominio.
// Los errores de contexto se devuelven envueltos sin clasificar.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isOutOfRange(err):
		return fmt.Errorf("%s: %w", op, domain.Validation("valor fuera del rango permitido", nil))
	}
	return domain.Storage(op, err)
}

// likePattern arma un patrón ILIKE de subcadena escapando los comodines del usuario.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// sortSpec columnas ordenables de un recurso y su orden por defecto.
type sortSpec struct {
	columns     map[string]string // campo público -> columna
	defaultCol  string
	defaultDesc bool
	tieBreaker  string
}

// orderBy devuelve la cláusula ORDER BY para la página. Campos fuera de la lista blanca
// usan el orden por defecto.
func (s sortSpec) orderBy(p repository.PageQuery) string {
	col, desc := s.defaultCol, s.defaultDesc
	if c, ok := s.columns[p.SortField]; ok {
		col, desc = c, p.SortDesc
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	clause := col + " " + dir
	if s.tieBreaker != "" && s.tieBreaker != col {
		clause += ", " + s.tieBreaker + " " + dir
	}
	return clause
}

// paginate aplica orden, LIMIT y OFFSET.
func paginate(b sq.SelectBuilder, s sortSpec, p repository.PageQuery) sq.SelectBuilder {
	p = p.Normalize()
	return b.OrderBy(s.orderBy(p)).Limit(uint64(p.Size)).Offset(uint64(p.Offset()))
}
