package http_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/winery-api/internal/domain"
	apphttp "github.com/jhoicas/winery-api/internal/interfaces/http"
)

func TestStatusForKind(t *testing.T) {
	t.Parallel()

	cases := map[domain.Kind]int{
		domain.KindNotFound:     http.StatusNotFound,
		domain.KindConflict:     http.StatusConflict,
		domain.KindValidation:   http.StatusBadRequest,
		domain.KindForbidden:    http.StatusForbidden,
		domain.KindUnauthorized: http.StatusUnauthorized,
		domain.KindStorage:      http.StatusInternalServerError,
		domain.KindUnexpected:   http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, apphttp.StatusForKind(kind), kind.String())
	}
}

func TestErrorHandler_OcultaDetallesInternos(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return domain.Storage("listar personas", errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "10.0.0.5")
	assert.Contains(t, string(body), `"error":"Internal Server Error"`)
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":404`)
}
