package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/winery-api/internal/application/auth"
	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
	"github.com/jhoicas/winery-api/pkg/jwt"
)

const testSecret = "test-secret"

// usersByName implementa solo lo que usa AuthUseCase.
type usersByName struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (u usersByName) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	return u.users[name], nil
}

func newAuth(t *testing.T, users ...*entity.User) *auth.AuthUseCase {
	t.Helper()
	m := map[string]*entity.User{}
	for _, u := range users {
		m[u.Username] = u
	}
	return auth.NewAuthUseCase(usersByName{users: m}, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 5, RefreshExpMinutes: 60, Issuer: "winery-api",
	}, nil)
}

func user(t *testing.T, name, password, role string, active bool) *entity.User {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: 1, Username: name, PasswordHash: string(h), Role: role, Active: active}
}

func TestLogin_EmiteParDeTokens(t *testing.T) {
	uc := newAuth(t, user(t, "admin", "admin", entity.RoleAdmin, true))

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	claims, err := jwt.ParseType(testSecret, resp.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username())
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = jwt.ParseType(testSecret, resp.RefreshToken, jwt.TypeRefresh)
	assert.NoError(t, err)
}

func TestLogin_FallosSonGenericos(t *testing.T) {
	uc := newAuth(t,
		user(t, "admin", "admin", entity.RoleAdmin, true),
		user(t, "baja", "secreto", entity.RoleUser, false),
	)

	cases := []dto.LoginRequest{
		{Username: "admin", Password: "otra"},
		{Username: "nadie", Password: "x"},
		{Username: "baja", Password: "secreto"},
		{},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
		assert.Contains(t, err.Error(), "Credenciales inválidas")
	}
}

func TestRefresh(t *testing.T) {
	active := user(t, "pepe", "123456", entity.RoleUser, true)
	uc := newAuth(t, active)

	first, err := uc.Login(context.Background(), dto.LoginRequest{Username: "pepe", Password: "123456"})
	require.NoError(t, err)

	second, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: first.AccessToken})
	assert.Error(t, err, "un access token no sirve para refrescar")

	active.Active = false
	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.Error(t, err)
}
