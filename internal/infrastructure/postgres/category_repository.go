package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

var categoryColumns = []string{"id", "name", "description", "color", "active", "created_at", "updated_at"}

var categorySort = sortSpec{
	columns: map[string]string{
		"id":        "id",
		"name":      "name",
		"color":     "color",
		"active":    "active",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	defaultCol: "id",
	tieBreaker: "id",
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query, args, err := psql.Insert("categories").
		Columns("name", "description", "color", "active").
		Values(c.Name, c.Description, c.Color, c.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert category: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return wrapErr("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.findOne(ctx, "get category by id", sq.Eq{"id": id})
}

// FindByName busca por nombre sin distinguir mayúsculas.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, "get category by name", sq.Expr("LOWER(name) = LOWER(?)", name))
}

func (r *CategoryRepo) findOne(ctx context.Context, op string, where sq.Sqlizer) (*entity.Category, error) {
	query, args, err := psql.Select(categoryColumns...).From("categories").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	c, err := scanCategory(querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query, args, err := psql.Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("color", c.Color).
		Set("active", c.Active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update category: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update category %d: %w", c.ID, domain.ErrNotFound)
		}
		return wrapErr("update category", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := querierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete category %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List devuelve la página solicitada y el total filtrado.
func (r *CategoryRepo) List(ctx context.Context, f repository.NameFilter, page repository.PageQuery) ([]*entity.Category, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := countRows(ctx, q, applyNameFilter(psql.Select("COUNT(*)").From("categories"), f), "count categories")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(applyNameFilter(psql.Select(categoryColumns...).From("categories"), f), categorySort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list categories: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list categories", err)
	}
	defer rows.Close()

	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, wrapErr("scan category", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list categories", err)
	}
	return list, total, nil
}

// IsReferenced indica si algún movimiento usa la categoría.
func (r *CategoryRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var used bool
	err := querierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM entries WHERE category_id = $1)`, id).Scan(&used)
	if err != nil {
		return false, wrapErr("category in use", err)
	}
	return used, nil
}
