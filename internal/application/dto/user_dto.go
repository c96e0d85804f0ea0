package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// UserRequest entrada para crear/actualizar un usuario (password en texto, se hashea en use case).
// En update, un password vacío conserva el actual.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// Validate devuelve errores por campo o nil. requirePassword aplica en altas.
func (r *UserRequest) Validate(requirePassword bool) ValidationErrors {
	v := ValidationErrors{}
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	if n := len([]rune(r.Username)); n < 3 || n > 50 {
		v.add("username", "el usuario debe tener entre 3 y 50 caracteres")
	}
	switch {
	case r.Password == "" && requirePassword:
		v.add("password", "la contraseña es obligatoria")
	case r.Password != "" && len([]rune(r.Password)) < MinPasswordLength:
		v.add("password", "la contraseña debe tener al menos 6 caracteres")
	}
	if !entity.ValidRole(r.Role) {
		v.add("role", "el rol debe ser ADMIN o USER")
	}
	return v.OrNil()
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest cuerpo de /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse par de tokens emitido en login/refresh.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}
