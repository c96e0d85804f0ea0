package usecase

import (
	"context"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/mapper"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// CategoryUseCase mismas reglas que personas: nombre único y borrado solo sin movimientos.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	tx    TxRunner
	audit Auditor
}

// NewCategoryUseCase construye el caso de uso con sus puertos.
func NewCategoryUseCase(repo repository.CategoryRepository, tx TxRunner, audit Auditor) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, audit: auditorOrNop(audit)}
}

func categoryNotFound(id int64) error {
	return domain.NotFound("Categoría no encontrada con id: %d", id)
}

func categoryDuplicate(name string) error {
	return domain.Conflict(domain.ErrDuplicate, "Ya existe una categoría con el nombre: %s", name)
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}
	p := mapper.NewCategory(req)

	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.FindByName(ctx, p.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return categoryDuplicate(p.Name)
		}
		return conflictOnDuplicate(uc.repo.Create(ctx, p), "Ya existe una categoría con el nombre: %s", p.Name)
	})
	if err != nil {
		return nil, err
	}

	resp := mapper.CategoryToResponse(p)
	uc.audit.LogCreate(ctx, entity.TableCategories, p.ID, resp)
	return &resp, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, categoryNotFound(id)
	}
	resp := mapper.CategoryToResponse(p)
	return &resp, nil
}

func (uc *CategoryUseCase) List(ctx context.Context, f repository.NameFilter, page repository.PageQuery) (*dto.PageResponse[dto.CategoryResponse], error) {
	page = page.Normalize()
	rows, total, err := uc.repo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := dto.NewPage(mapper.MapSlice(rows, mapper.CategoryToResponse), total, page.Page, page.Size)
	return &out, nil
}

// Update modifica una categoría. Renombrar a su propio nombre (con otra capitalización) está permitido.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	var before, after dto.CategoryResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return categoryNotFound(id)
		}
		before = mapper.CategoryToResponse(p)

		if !sameName(p.Name, req.Name) {
			existing, err := uc.repo.FindByName(ctx, req.Name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return categoryDuplicate(req.Name)
			}
		}

		mapper.ApplyCategory(req, p)
		if err := uc.repo.Update(ctx, p); err != nil {
			return conflictOnDuplicate(err, "Ya existe una categoría con el nombre: %s", req.Name)
		}
		after = mapper.CategoryToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableCategories, id, before, after)
	return &after, nil
}

// Delete elimina una categoría sin movimientos asociados.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	var before dto.CategoryResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return categoryNotFound(id)
		}
		inUse, err := uc.repo.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.Conflict(domain.ErrInUse, "No se puede eliminar la categoría %q: tiene movimientos asociados", p.Name)
		}
		before = mapper.CategoryToResponse(p)
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.LogDelete(ctx, entity.TableCategories, id, before)
	return nil
}

// Archive marca la categoría como inactiva. Nunca se bloquea y es idempotente.
func (uc *CategoryUseCase) Archive(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	var before, after dto.CategoryResponse
	err := uc.tx.Run(ctx, func(ctx context.Context) error {
		p, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return categoryNotFound(id)
		}
		before = mapper.CategoryToResponse(p)
		p.Active = false
		if err := uc.repo.Update(ctx, p); err != nil {
			return err
		}
		after = mapper.CategoryToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogUpdate(ctx, entity.TableCategories, id, before, after)
	return &after, nil
}
