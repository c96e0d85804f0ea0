package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/mapper"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. Siempre debe quedar
// al menos un administrador activo.
type UserUseCase struct {
	repo       repository.UserRepository
	tx         TxRunner
	audit      Auditor
	bcryptCost int
}

// UserOption configura el caso de uso.
type UserOption func(*UserUseCase)

// WithBcryptCost fija el coste de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) UserOption {
	return func(uc *UserUseCase) { uc.bcryptCost = cost }
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx TxRunner, audit Auditor, opts ...UserOption) *UserUseCase {
	uc := &UserUseCase{repo: repo, tx: tx, audit: auditorOrNop(audit), bcryptCost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// DefaultUser credenciales sembradas cuando no existen.
type DefaultUser struct {
	Username string
	Password string
	Role     string
}

// DefaultUsers usuarios iniciales del sistema.
var DefaultUsers = []DefaultUser{
	{Username: "admin", Password: "admin", Role: entity.RoleAdmin},
	{Username: "user", Password: "user", Role: entity.RoleUser},
}

func userNotFound(id int64) error {
	return domain.NotFound("Usuario no encontrado con id: %d", id)
}

func userDuplicate(username string) error {
	return domain.Conflict(domain.ErrDuplicate, "El usuario ya existe: %s", username)
}

func (uc *UserUseCase) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (uc *UserUseCase) load(ctx context.Context, id int64) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, userNotFound(id)
	}
	return u, nil
}

// guardLastAdmin bloquea la operación si u es el único administrador activo.
func (uc *UserUseCase) guardLastAdmin(ctx context.Context, u *entity.User, action string) error {
	if !u.IsActiveAdmin() {
		return nil
	}
	n, err := uc.repo.CountActiveByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return domain.Conflict(domain.ErrLastAdmin, "No se puede %s al último administrador activo", action)
	}
	return nil
}

// Create da de alta un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	if err := invalid(req.Validate(true)); err != nil {
		return nil, err
	}
	hash, err := uc.hash(req.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: req.Username, PasswordHash: hash, Role: req.Role, Active: true}
	if req.Active != nil {
		u.Active = *req.Active
	}

	err = uc.tx.Run(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.GetByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return userDuplicate(u.Username)
		}
		return conflictOnDuplicate(uc.repo.Create(ctx, u), "El usuario ya existe: %s", u.Username)
	})
	if err != nil {
		return nil, err
	}

	resp := mapper.UserToResponse(u)
	uc.audit.LogCreate(ctx, entity.TableUsers, u.ID, resp)
	return &resp, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapper.UserToResponse(u)
	return &resp, nil
}

func (uc *UserUseCase) List(ctx context.Context, page repository.PageQuery) (*dto.PageResponse[dto.UserResponse], error) {
	page = page.Normalize()
	rows, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := dto.NewPage(mapper.MapSlice(rows, mapper.UserToResponse), total, page.Page, page.Size)
	return &out, nil
}

// Update modifica usuario, rol y estado. La contraseña solo se rehashea si viene informada.
func (uc *UserUseCase) Update(ctx context.Context, id int64, req dto.UserRequest) (*dto.UserResponse, error) {
	if err := invalid(req.Validate(false)); err != nil {
		return nil, err
	}

	var before, after dto.UserResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		u, err := uc.load(ctx, id)
		if err != nil {
			return err
		}
		before = mapper.UserToResponse(u)

		if req.Username != u.Username {
			existing, err := uc.repo.GetByUsername(ctx, req.Username)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return userDuplicate(req.Username)
			}
		}

		demoted := req.Role != entity.RoleAdmin
		deactivated := req.Active != nil && !*req.Active
		if demoted || deactivated {
			if err := uc.guardLastAdmin(ctx, u, "degradar o desactivar"); err != nil {
				return err
			}
		}

		u.Username = req.Username
		u.Role = req.Role
		if req.Active != nil {
			u.Active = *req.Active
		}
		if req.Password != "" {
			if u.PasswordHash, err = uc.hash(req.Password); err != nil {
				return err
			}
		}
		if err := uc.repo.Update(ctx, u); err != nil {
			return conflictOnDuplicate(err, "El usuario ya existe: %s", req.Username)
		}
		after = mapper.UserToResponse(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableUsers, id, before, after)
	return &after, nil
}

// Delete elimina un usuario salvo que sea el último administrador activo.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	var before dto.UserResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		u, err := uc.load(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.guardLastAdmin(ctx, u, "eliminar"); err != nil {
			return err
		}
		before = mapper.UserToResponse(u)
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.LogDelete(ctx, entity.TableUsers, id, before)
	return nil
}

func (uc *UserUseCase) Activate(ctx context.Context, id int64) (*dto.UserResponse, error) {
	return uc.setActive(ctx, id, true)
}

// Deactivate desactiva un usuario salvo que sea el último administrador activo.
func (uc *UserUseCase) Deactivate(ctx context.Context, id int64) (*dto.UserResponse, error) {
	return uc.setActive(ctx, id, false)
}

func (uc *UserUseCase) setActive(ctx context.Context, id int64, active bool) (*dto.UserResponse, error) {
	var before, after dto.UserResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		u, err := uc.load(ctx, id)
		if err != nil {
			return err
		}
		if !active {
			if err := uc.guardLastAdmin(ctx, u, "desactivar"); err != nil {
				return err
			}
		}
		before = mapper.UserToResponse(u)
		u.Active = active
		if err := uc.repo.Update(ctx, u); err != nil {
			return err
		}
		after = mapper.UserToResponse(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableUsers, id, before, after)
	return &after, nil
}

// EnsureDefaultUsers crea los usuarios de DefaultUsers que falten y devuelve los creados.
func (uc *UserUseCase) EnsureDefaultUsers(ctx context.Context) ([]string, error) {
	var created []string
	for _, d := range DefaultUsers {
		existing, err := uc.repo.GetByUsername(ctx, d.Username)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		hash, err := uc.hash(d.Password)
		if err != nil {
			return created, err
		}
		u := &entity.User{Username: d.Username, PasswordHash: hash, Role: d.Role, Active: true}
		if err := uc.repo.Create(ctx, u); err != nil {
			return created, err
		}
		uc.audit.LogCreate(ctx, entity.TableUsers, u.ID, mapper.UserToResponse(u))
		created = append(created, u.Username)
	}
	return created, nil
}
