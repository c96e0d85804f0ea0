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

var _ repository.PersonRepository = (*PersonRepo)(nil)

var personColumns = []string{"id", "name", "note", "active", "created_at", "updated_at"}

var personSort = sortSpec{
	columns: map[string]string{
		"id":        "id",
		"name":      "name",
		"active":    "active",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	defaultCol: "id",
	tieBreaker: "id",
}

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL.
type PersonRepo struct {
	db Querier
}

// NewPersonRepository construye el adaptador de persistencia para personas.
func NewPersonRepository(db Querier) *PersonRepo {
	return &PersonRepo{db: db}
}

func scanPerson(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	if err := row.Scan(&p.ID, &p.Name, &p.Note, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una nueva persona y completa ID y timestamps.
func (r *PersonRepo) Create(ctx context.Context, p *entity.Person) error {
	query, args, err := psql.Insert("persons").
		Columns("name", "note", "active").
		Values(p.Name, p.Note, p.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert person: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return wrapErr("insert person", err)
	}
	return nil
}

// GetByID obtiene una persona por ID; (nil, nil) si no existe.
func (r *PersonRepo) GetByID(ctx context.Context, id int64) (*entity.Person, error) {
	return r.findOne(ctx, "get person by id", sq.Eq{"id": id})
}

// FindByName busca por nombre sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *PersonRepo) FindByName(ctx context.Context, name string) (*entity.Person, error) {
	return r.findOne(ctx, "get person by name", sq.Expr("LOWER(name) = LOWER(?)", name))
}

func (r *PersonRepo) findOne(ctx context.Context, op string, where sq.Sqlizer) (*entity.Person, error) {
	query, args, err := psql.Select(personColumns...).From("persons").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	p, err := scanPerson(querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return p, nil
}

// Update actualiza nombre, nota y estado.
func (r *PersonRepo) Update(ctx context.Context, p *entity.Person) error {
	query, args, err := psql.Update("persons").
		Set("name", p.Name).
		Set("note", p.Note).
		Set("active", p.Active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update person: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update person %d: %w", p.ID, domain.ErrNotFound)
		}
		return wrapErr("update person", err)
	}
	return nil
}

// Delete elimina una persona por ID.
func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	tag, err := querierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete person", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete person %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func applyNameFilter(b sq.SelectBuilder, f repository.NameFilter) sq.SelectBuilder {
	if f.Name != "" {
		b = b.Where(sq.ILike{"name": likePattern(f.Name)})
	}
	if f.Active != nil {
		b = b.Where(sq.Eq{"active": *f.Active})
	}
	return b
}

// List devuelve la página solicitada y el total de filas que cumplen el filtro.
func (r *PersonRepo) List(ctx context.Context, f repository.NameFilter, page repository.PageQuery) ([]*entity.Person, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := countRows(ctx, q, applyNameFilter(psql.Select("COUNT(*)").From("persons"), f), "count persons")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(applyNameFilter(psql.Select(personColumns...).From("persons"), f), personSort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list persons: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list persons", err)
	}
	defer rows.Close()

	list := make([]*entity.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, wrapErr("scan person", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list persons", err)
	}
	return list, total, nil
}

// IsReferenced indica si algún movimiento apunta a la persona.
func (r *PersonRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var used bool
	err := querierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM entries WHERE person_id = $1)`, id).Scan(&used)
	if err != nil {
		return false, wrapErr("person in use", err)
	}
	return used, nil
}

// countRows ejecuta un SELECT COUNT(*) construido con squirrel.
func countRows(ctx context.Context, q Querier, b sq.SelectBuilder, op string) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, wrapErr(op, err)
	}
	return total, nil
}
