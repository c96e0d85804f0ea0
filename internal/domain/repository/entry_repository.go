package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
)

// EntryRepository define el puerto de persistencia para Entry.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	GetByID(ctx context.Context, id int64) (*entity.Entry, error)
	Update(ctx context.Context, e *entity.Entry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f EntryFilter, page PageQuery) ([]*entity.Entry, int64, error)
	// ListAmounts devuelve todas las filas con sus importes (sin filtros), para sumar en memoria.
	ListAmounts(ctx context.Context) ([]*entity.Entry, error)
	// SumTotals agrega en la base los importes del conjunto filtrado.
	SumTotals(ctx context.Context, f EntryFilter) (ledger.EntryTotals, error)
	Count(ctx context.Context, f EntryFilter) (int64, error)
}
