package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
	"github.com/jhoicas/winery-api/pkg/jwt"
	"github.com/jhoicas/winery-api/pkg/logger"
)

// TokenType tipo anunciado en la respuesta de login/refresh.
const TokenType = "Bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// errInvalidCredentials es el único error visible hacia el cliente.
var errInvalidCredentials = domain.Unauthorized("Credenciales inválidas")

// AuthUseCase casos de uso de autenticación: login y refresh.
// Cualquier fallo se colapsa en un error genérico; el motivo real solo va al log.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// Login verifica usuario/password y emite el par de tokens. Los usuarios inactivos no acceden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, errInvalidCredentials
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.log.Error().Err(err).Msg("login: error consultando usuario")
		return nil, errInvalidCredentials
	}
	if user == nil {
		uc.log.Debug().Str("username", in.Username).Msg("login: usuario inexistente")
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Debug().Str("username", in.Username).Msg("login: contraseña incorrecta")
		return nil, errInvalidCredentials
	}
	if !user.Active {
		uc.log.Debug().Str("username", in.Username).Msg("login: usuario inactivo")
		return nil, errInvalidCredentials
	}
	return uc.issue(user)
}

// Refresh emite un par nuevo a partir de un refresh token vigente de un usuario activo.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.AuthResponse, error) {
	claims, err := jwt.ParseType(uc.jwtCfg.Secret, in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		uc.log.Debug().Err(err).Msg("refresh: token rechazado")
		return nil, errInvalidCredentials
	}
	user, err := uc.userRepo.GetByUsername(ctx, claims.Username())
	if err != nil {
		uc.log.Error().Err(err).Msg("refresh: error consultando usuario")
		return nil, errInvalidCredentials
	}
	if user == nil || !user.Active {
		return nil, errInvalidCredentials
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(u *entity.User) (*dto.AuthResponse, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, u.Username, u.Role, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo firmar el access token")
		return nil, errInvalidCredentials
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, u.Username, u.Role, jwt.TypeRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo firmar el refresh token")
		return nil, errInvalidCredentials
	}
	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenType,
		Username:     u.Username,
		Role:         u.Role,
	}, nil
}
