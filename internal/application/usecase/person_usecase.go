package usecase

import (
	"context"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/mapper"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// PersonUseCase aplica las reglas de negocio de personas: nombre único sin
// distinguir mayúsculas y borrado bloqueado si hay movimientos que la referencian.
type PersonUseCase struct {
	repo  repository.PersonRepository
	tx    TxRunner
	audit Auditor
}

// NewPersonUseCase construye el caso de uso con sus puertos.
func NewPersonUseCase(repo repository.PersonRepository, tx TxRunner, audit Auditor) *PersonUseCase {
	return &PersonUseCase{repo: repo, tx: tx, audit: auditorOrNop(audit)}
}

func personNotFound(id int64) error {
	return domain.NotFound("Persona no encontrada con id: %d", id)
}

func personDuplicate(name string) error {
	return domain.Conflict(domain.ErrDuplicate, "Ya existe una persona con el nombre: %s", name)
}

// Create da de alta una persona.
func (uc *PersonUseCase) Create(ctx context.Context, req dto.PersonRequest) (*dto.PersonResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}
	p := mapper.NewPerson(req)

	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.FindByName(ctx, p.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return personDuplicate(p.Name)
		}
		return conflictOnDuplicate(uc.repo.Create(ctx, p), "Ya existe una persona con el nombre: %s", p.Name)
	})
	if err != nil {
		return nil, err
	}

	resp := mapper.PersonToResponse(p)
	uc.audit.LogCreate(ctx, entity.TablePersons, p.ID, resp)
	return &resp, nil
}

// GetByID obtiene una persona o NotFound.
func (uc *PersonUseCase) GetByID(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, personNotFound(id)
	}
	resp := mapper.PersonToResponse(p)
	return &resp, nil
}

// List lista personas filtrando por nombre (subcadena) y estado.
func (uc *PersonUseCase) List(ctx context.Context, f repository.NameFilter, page repository.PageQuery) (*dto.PageResponse[dto.PersonResponse], error) {
	page = page.Normalize()
	rows, total, err := uc.repo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := dto.NewPage(mapper.MapSlice(rows, mapper.PersonToResponse), total, page.Page, page.Size)
	return &out, nil
}

// Update modifica una persona. Renombrar a su propio nombre (con otra capitalización) está permitido.
func (uc *PersonUseCase) Update(ctx context.Context, id int64, req dto.PersonRequest) (*dto.PersonResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	var before, after dto.PersonResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return personNotFound(id)
		}
		before = mapper.PersonToResponse(p)

		if !sameName(p.Name, req.Name) {
			existing, err := uc.repo.FindByName(ctx, req.Name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return personDuplicate(req.Name)
			}
		}

		mapper.ApplyPerson(req, p)
		if err := uc.repo.Update(ctx, p); err != nil {
			return conflictOnDuplicate(err, "Ya existe una persona con el nombre: %s", req.Name)
		}
		after = mapper.PersonToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TablePersons, id, before, after)
	return &after, nil
}

// Delete elimina una persona sin movimientos asociados.
func (uc *PersonUseCase) Delete(ctx context.Context, id int64) error {
	var before dto.PersonResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return personNotFound(id)
		}
		inUse, err := uc.repo.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.Conflict(domain.ErrInUse, "No se puede eliminar la persona %q: tiene movimientos asociados", p.Name)
		}
		before = mapper.PersonToResponse(p)
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.LogDelete(ctx, entity.TablePersons, id, before)
	return nil
}

// Archive marca la persona como inactiva. Nunca se bloquea y es idempotente.
func (uc *PersonUseCase) Archive(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	var before, after dto.PersonResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return personNotFound(id)
		}
		before = mapper.PersonToResponse(p)
		p.Active = false
		if err := uc.repo.Update(ctx, p); err != nil {
			return err
		}
		after = mapper.PersonToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TablePersons, id, before, after)
	return &after, nil
}
