package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// PersonRepository define el puerto de persistencia para Person (DIP).
// GetByID y FindByName devuelven (nil, nil) cuando no existe la fila.
type PersonRepository interface {
	Create(ctx context.Context, p *entity.Person) error
	GetByID(ctx context.Context, id int64) (*entity.Person, error)
	FindByName(ctx context.Context, name string) (*entity.Person, error)
	Update(ctx context.Context, p *entity.Person) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f NameFilter, page PageQuery) ([]*entity.Person, int64, error)
	IsReferenced(ctx context.Context, id int64) (bool, error)
}
