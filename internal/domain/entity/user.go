package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole indica si r es uno de los roles soportados.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User representa un usuario del back-office.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, USER
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActiveAdmin indica si el usuario cuenta para la regla del último administrador.
func (u *User) IsActiveAdmin() bool {
	return u != nil && u.Active && u.Role == RoleAdmin
}
