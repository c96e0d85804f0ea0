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

// EntryUseCase gestiona los movimientos (horas trabajadas, pagos y deudas).
type EntryUseCase struct {
	entries    repository.EntryRepository
	persons    repository.PersonRepository
	categories repository.CategoryRepository
	tx         TxRunner
	audit      Auditor
}

// NewEntryUseCase construye el caso de uso de movimientos.
func NewEntryUseCase(
	entries repository.EntryRepository,
	persons repository.PersonRepository,
	categories repository.CategoryRepository,
	tx TxRunner,
	audit Auditor,
) *EntryUseCase {
	return &EntryUseCase{entries: entries, persons: persons, categories: categories, tx: tx, audit: auditorOrNop(audit)}
}

func entryNotFound(id int64) error {
	return domain.NotFound("Movimiento no encontrado con id: %d", id)
}

// checkRefs verifica que la persona y la categoría referenciadas existan.
func (uc *EntryUseCase) checkRefs(ctx context.Context, personID, categoryID int64) error {
	p, err := uc.persons.GetByID(ctx, personID)
	if err != nil {
		return err
	}
	if p == nil {
		return personNotFound(personID)
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return categoryNotFound(categoryID)
	}
	return nil
}

// Create registra un movimiento y lo devuelve con los nombres resueltos.
func (uc *EntryUseCase) Create(ctx context.Context, req dto.EntryRequest) (*dto.EntryResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	var saved *entity.Entry
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		if err := uc.checkRefs(ctx, req.PersonID, req.CategoryID); err != nil {
			return err
		}
		e := mapper.NewEntry(req)
		if err := uc.entries.Create(ctx, e); err != nil {
			return err
		}
		var err error
		saved, err = uc.reload(ctx, e.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := mapper.EntryToResponse(saved)
	uc.audit.LogCreate(ctx, entity.TableEntries, saved.ID, resp)
	return &resp, nil
}

func (uc *EntryUseCase) reload(ctx context.Context, id int64) (*entity.Entry, error) {
	e, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, entryNotFound(id)
	}
	return e, nil
}

func (uc *EntryUseCase) GetByID(ctx context.Context, id int64) (*dto.EntryResponse, error) {
	e, err := uc.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapper.EntryToResponse(e)
	return &resp, nil
}

// List devuelve la página pedida con dos totales independientes: pageTotal sobre
// las filas de la página y grandTotal sobre todo el conjunto filtrado.
func (uc *EntryUseCase) List(ctx context.Context, f repository.EntryFilter, page repository.PageQuery) (*dto.EntryPage, error) {
	page = page.Normalize()
	rows, total, err := uc.entries.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	grand, err := uc.GrandTotal(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.EntryPage{
		PageResponse: dto.NewPage(mapper.MapSlice(rows, mapper.EntryToResponse), total, page.Page, page.Size),
		PageTotal:    mapper.EntryTotalsToDTO(ledger.SumEntries(rows)),
		GrandTotal:   mapper.EntryTotalsToDTO(grand),
	}, nil
}

// GrandTotal suma en memoria cuando no hay filtros y delega el agregado a la base cuando los hay.
func (uc *EntryUseCase) GrandTotal(ctx context.Context, f repository.EntryFilter) (ledger.EntryTotals, error) {
	if f.IsEmpty() {
		all, err := uc.entries.ListAmounts(ctx)
		if err != nil {
			return ledger.EntryTotals{}, err
		}
		return ledger.SumEntries(all), nil
	}
	return uc.entries.SumTotals(ctx, f)
}

// Update reemplaza los campos editables de un movimiento.
func (uc *EntryUseCase) Update(ctx context.Context, id int64, req dto.EntryRequest) (*dto.EntryResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	var before, after dto.EntryResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		e, err := uc.reload(ctx, id)
		if err != nil {
			return err
		}
		before = mapper.EntryToResponse(e)
		if err := uc.checkRefs(ctx, req.PersonID, req.CategoryID); err != nil {
			return err
		}
		mapper.ApplyEntry(req, e)
		if err := uc.entries.Update(ctx, e); err != nil {
			return err
		}
		saved, err := uc.reload(ctx, id)
		if err != nil {
			return err
		}
		after = mapper.EntryToResponse(saved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableEntries, id, before, after)
	return &after, nil
}

func (uc *EntryUseCase) Delete(ctx context.Context, id int64) error {
	var before dto.EntryResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		e, err := uc.reload(ctx, id)
		if err != nil {
			return err
		}
		before = mapper.EntryToResponse(e)
		return uc.entries.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.LogDelete(ctx, entity.TableEntries, id, before)
	return nil
}
