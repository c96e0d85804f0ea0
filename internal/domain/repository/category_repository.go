package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f NameFilter, page PageQuery) ([]*entity.Category, int64, error)
	IsReferenced(ctx context.Context, id int64) (bool, error)
}
