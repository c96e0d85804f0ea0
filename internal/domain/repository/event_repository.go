package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
)

// EventRepository define el puerto de persistencia para Event.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f EventFilter, page PageQuery) ([]*entity.Event, int64, error)
	// ListAmounts devuelve los totales de todos los eventos (sin filtros), para sumar en memoria.
	ListAmounts(ctx context.Context) ([]*entity.Event, error)
	SumTotals(ctx context.Context, f EventFilter) (ledger.EventTotals, error)
}
