package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/pkg/ctxutil"
)

// LocalRequestID clave donde el middleware requestid deja el identificador.
const LocalRequestID = "requestid"

// RequestContext copia IP de origen, user-agent e id de petición al contexto de la
// petición. La IP es la de c.IP(), que solo considera X-Forwarded-For detrás de un proxy
// confiable (ver ServerConfig).
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := ctxutil.WithActor(c.UserContext(), ctxutil.Actor{
			IP:        c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		if id, ok := c.Locals(LocalRequestID).(string); ok && id != "" {
			ctx = ctxutil.WithRequestID(ctx, id)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
