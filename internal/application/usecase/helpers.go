package usecase

import (
	"context"
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain"
)

// sameName compara nombres en minúsculas, la misma regla que los índices LOWER(name).
// Un Caser no es seguro entre goroutines; se crea uno por llamada.
func sameName(a, b string) bool {
	lower := cases.Lower(language.Und)
	return lower.String(a) == lower.String(b)
}

// conflictOnDuplicate traduce una violación de unicidad de la base en un Conflict del dominio.
func conflictOnDuplicate(err error, format string, args ...any) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Conflict(domain.ErrDuplicate, format, args...)
	}
	return err
}

type nopAuditor struct{}

func (nopAuditor) LogCreate(context.Context, string, int64, any)      {}
func (nopAuditor) LogUpdate(context.Context, string, int64, any, any) {}
func (nopAuditor) LogDelete(context.Context, string, int64, any)      {}

func auditorOrNop(a Auditor) Auditor {
	if a == nil {
		return nopAuditor{}
	}
	return a
}

// invalid convierte los errores por campo de un DTO en un error de validación.
func invalid(errs dto.ValidationErrors) error {
	if errs == nil {
		return nil
	}
	return domain.Validation("datos inválidos", errs)
}
