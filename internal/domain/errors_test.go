package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/winery-api/internal/domain"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"error tipado", domain.NotFound("Persona no encontrada con id: %d", 7), domain.KindNotFound},
		{"tipado envuelto", fmt.Errorf("capa: %w", domain.Conflict(domain.ErrInUse, "en uso")), domain.KindConflict},
		{"sentinel duplicado", fmt.Errorf("insert: %w", domain.ErrDuplicate), domain.KindConflict},
		{"sentinel ultimo admin", domain.ErrLastAdmin, domain.KindConflict},
		{"storage", domain.Storage("listar personas", errors.New("conn refused")), domain.KindStorage},
		{"desconocido", errors.New("boom"), domain.KindUnexpected},
		{"nil", nil, domain.KindUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.KindOf(tc.err))
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	t.Parallel()

	err := domain.Conflict(domain.ErrDuplicate, "Ya existe una categoría con el nombre: %s", "Vino")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Ya existe una categoría con el nombre: Vino: recurso duplicado", err.Error())

	st := domain.Storage("crear persona", errors.New("timeout"))
	assert.ErrorIs(t, st, domain.ErrStorage)
}

func TestValidation_Fields(t *testing.T) {
	t.Parallel()

	err := domain.Validation("Datos inválidos", map[string]string{"name": "es obligatorio"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "es obligatorio", err.Fields["name"])
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
