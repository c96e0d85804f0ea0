package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/application/dto"
)

// AuthService login y refresh de tokens.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.AuthResponse, error)
}

// AuthHandler maneja login y refresh. Cualquier fallo responde 400 con un mensaje genérico.
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

const authFailedMessage = "Usuario o contraseña inválidos"

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, authFailedMessage)
	}
	out, err := h.svc.Login(c.UserContext(), in)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, authFailedMessage)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refreshToken"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Refresh token inválido")
	}
	out, err := h.svc.Refresh(c.UserContext(), in)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Refresh token inválido")
	}
	return c.JSON(out)
}
