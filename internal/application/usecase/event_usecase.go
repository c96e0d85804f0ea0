package usecase

import (
	"context"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/mapper"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// EventUseCase gestiona las visitas con almuerzo y/o cata.
// Los totales derivados se recalculan siempre antes de persistir.
type EventUseCase struct {
	repo  repository.EventRepository
	tx    TxRunner
	audit Auditor
}

func NewEventUseCase(repo repository.EventRepository, tx TxRunner, audit Auditor) *EventUseCase {
	return &EventUseCase{repo: repo, tx: tx, audit: auditorOrNop(audit)}
}

func eventNotFound(id int64) error {
	return domain.NotFound("Evento no encontrado con id: %d", id)
}

func (uc *EventUseCase) load(ctx context.Context, id int64) (*entity.Event, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, eventNotFound(id)
	}
	return e, nil
}

// Create registra un evento ignorando los totales derivados enviados por el cliente.
func (uc *EventUseCase) Create(ctx context.Context, req dto.EventRequest) (*dto.EventResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}
	e := mapper.NewEvent(req)
	e.RecalculateTotals()

	if err := uc.tx.Run(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, e)
	}); err != nil {
		return nil, err
	}

	resp := mapper.EventToResponse(e)
	uc.audit.LogCreate(ctx, entity.TableEvents, e.ID, resp)
	return &resp, nil
}

func (uc *EventUseCase) GetByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	e, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapper.EventToResponse(e)
	return &resp, nil
}

// List devuelve la página con pageTotal y grandTotal del conjunto filtrado.
func (uc *EventUseCase) List(ctx context.Context, f repository.EventFilter, page repository.PageQuery) (*dto.EventPage, error) {
	page = page.Normalize()
	rows, total, err := uc.repo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	grand, err := uc.GrandTotal(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.EventPage{
		PageResponse: dto.NewPage(mapper.MapSlice(rows, mapper.EventToResponse), total, page.Page, page.Size),
		PageTotal:    mapper.EventTotalsToDTO(ledger.SumEvents(rows)),
		GrandTotal:   mapper.EventTotalsToDTO(grand),
	}, nil
}

// GrandTotal mismo criterio que en movimientos: memoria sin filtros, agregado SQL con filtros.
func (uc *EventUseCase) GrandTotal(ctx context.Context, f repository.EventFilter) (ledger.EventTotals, error) {
	if f.IsEmpty() {
		all, err := uc.repo.ListAmounts(ctx)
		if err != nil {
			return ledger.EventTotals{}, err
		}
		return ledger.SumEvents(all), nil
	}
	return uc.repo.SumTotals(ctx, f)
}

func (uc *EventUseCase) Update(ctx context.Context, id int64, req dto.EventRequest) (*dto.EventResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	var before, after dto.EventResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		e, err := uc.load(ctx, id)
		if err != nil {
			return err
		}
		before = mapper.EventToResponse(e)
		mapper.ApplyEvent(req, e)
		e.RecalculateTotals()
		if err := uc.repo.Update(ctx, e); err != nil {
			return err
		}
		after = mapper.EventToResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableEvents, id, before, after)
	return &after, nil
}

func (uc *EventUseCase) Delete(ctx context.Context, id int64) error {
	var before dto.EventResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		e, err := uc.load(ctx, id)
		if err != nil {
			return err
		}
		before = mapper.EventToResponse(e)
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.LogDelete(ctx, entity.TableEvents, id, before)
	return nil
}
