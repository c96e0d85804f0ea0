package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageQuery) ([]*entity.User, int64, error)
	CountActiveByRole(ctx context.Context, role string) (int64, error)
}
