package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/pkg/ctxutil"
	"github.com/jhoicas/winery-api/pkg/jwt"
)

// Locals keys para usuario y rol en Fiber.
const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT de tipo access, deja usuario y rol en
// c.Locals y propaga el usuario al contexto de la petición para la auditoría.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN: Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN: formato Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN: token vacío")
		}
		claims, err := jwt.ParseType(jwtSecret, tokenString, jwt.TypeAccess)
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN: token inválido o expirado")
		}
		c.Locals(LocalUsername, claims.Username())
		c.Locals(LocalRole, claims.Role)
		c.SetUserContext(ctxutil.WithUsername(c.UserContext(), claims.Username()))
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_ROLE: el token no contiene rol")
		}
		if _, ok := allowed[strings.ToUpper(role)]; !ok {
			return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN: permisos insuficientes")
		}
		return c.Next()
	}
}

// GetUsername devuelve el usuario autenticado (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
