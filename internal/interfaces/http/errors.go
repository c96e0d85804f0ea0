package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/pkg/ctxutil"
)

const genericErrorMessage = "Error interno del servidor"

// StatusForKind traduce la clase de error de dominio a código HTTP.
func StatusForKind(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// errorJSON escribe el cuerpo {status, error, message, timestamp}.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Status:    status,
		Error:     utils.StatusMessage(status),
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// writeError responde según el Kind del error. Las validaciones devuelven el mapa
// campo -> mensaje; los fallos internos un mensaje genérico (el detalle va al log).
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindValidation && len(de.Fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(de.Fields)
	}

	status := StatusForKind(domain.KindOf(err))
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", ctxutil.RequestIDFromCtx(c.UserContext())).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return errorJSON(c, status, genericErrorMessage)
	}

	msg := err.Error()
	if de != nil && de.Message != "" {
		msg = de.Message
	}
	return errorJSON(c, status, msg)
}

// ErrorHandler para fiber.Config: errores no controlados y pánicos recuperados salen con el mismo formato.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := fe.Message
		if fe.Code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error de fiber")
			msg = genericErrorMessage
		}
		return errorJSON(c, fe.Code, msg)
	}
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
}
