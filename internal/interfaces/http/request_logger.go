package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/pkg/ctxutil"
	"github.com/jhoicas/winery-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog: método, ruta, status, latencia,
// request id y usuario autenticado.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// Aún no pasó por el ErrorHandler.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", ctxutil.RequestIDFromCtx(c.UserContext())).
			Str("username", GetUsername(c)).
			Msg("http")
		return err
	}
}
