package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

const entryFrom = "entries e JOIN persons p ON p.id = e.person_id JOIN categories c ON c.id = e.category_id"

var entryColumns = []string{
	"e.id", "e.date", "e.description", "e.person_id", "p.name", "e.category_id", "c.name",
	"e.work_hours", "e.amount_paid", "e.amount_due", "e.created_at", "e.updated_at",
}

var entrySort = sortSpec{
	columns: map[string]string{
		"id":           "e.id",
		"date":         "e.date",
		"description":  "e.description",
		"personName":   "p.name",
		"categoryName": "c.name",
		"workHours":    "e.work_hours",
		"amountPaid":   "e.amount_paid",
		"amountDue":    "e.amount_due",
		"createdAt":    "e.created_at",
	},
	defaultCol:  "e.date",
	defaultDesc: true,
	tieBreaker:  "e.id",
}

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL.
type EntryRepo struct {
	db Querier
}

// NewEntryRepository construye el adaptador de persistencia para movimientos.
func NewEntryRepository(db Querier) *EntryRepo {
	return &EntryRepo{db: db}
}

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.Date, &e.Description, &e.PersonID, &e.PersonName, &e.CategoryID, &e.CategoryName,
		&e.WorkHours, &e.AmountPaid, &e.AmountDue, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un movimiento. PersonName/CategoryName no se completan aquí.
func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	query, args, err := psql.Insert("entries").
		Columns("date", "description", "person_id", "category_id", "work_hours", "amount_paid", "amount_due").
		Values(e.Date, e.Description, e.PersonID, e.CategoryID, e.WorkHours, e.AmountPaid, e.AmountDue).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert entry: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return wrapErr("insert entry", err)
	}
	return nil
}

// GetByID obtiene un movimiento con los nombres de persona y categoría; (nil, nil) si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	query, args, err := psql.Select(entryColumns...).From(entryFrom).Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get entry: %w", err)
	}
	e, err := scanEntry(querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get entry by id", err)
	}
	return e, nil
}

// Update actualiza un movimiento.
func (r *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	query, args, err := psql.Update("entries").
		Set("date", e.Date).
		Set("description", e.Description).
		Set("person_id", e.PersonID).
		Set("category_id", e.CategoryID).
		Set("work_hours", e.WorkHours).
		Set("amount_paid", e.AmountPaid).
		Set("amount_due", e.AmountDue).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update entry: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update entry %d: %w", e.ID, domain.ErrNotFound)
		}
		return wrapErr("update entry", err)
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := querierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete entry", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete entry %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func applyEntryFilter(b sq.SelectBuilder, f repository.EntryFilter) sq.SelectBuilder {
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"e.date": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"e.date": *f.DateTo})
	}
	if f.PersonID != nil {
		b = b.Where(sq.Eq{"e.person_id": *f.PersonID})
	}
	if f.CategoryID != nil {
		b = b.Where(sq.Eq{"e.category_id": *f.CategoryID})
	}
	if f.Description != "" {
		b = b.Where(sq.ILike{"e.description": likePattern(f.Description)})
	}
	return b
}

// List devuelve la página filtrada y el total de filas del conjunto.
func (r *EntryRepo) List(ctx context.Context, f repository.EntryFilter, page repository.PageQuery) ([]*entity.Entry, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := r.count(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(applyEntryFilter(psql.Select(entryColumns...).From(entryFrom), f), entrySort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list entries: %w", err)
	}
	list, err := r.queryEntries(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAmounts devuelve todas las filas con sus importes, sin nombres ni filtros.
func (r *EntryRepo) ListAmounts(ctx context.Context) ([]*entity.Entry, error) {
	rows, err := querierFromCtx(ctx, r.db).Query(ctx,
		`SELECT id, work_hours, amount_paid, amount_due FROM entries`)
	if err != nil {
		return nil, wrapErr("list entry amounts", err)
	}
	defer rows.Close()

	list := make([]*entity.Entry, 0)
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.WorkHours, &e.AmountPaid, &e.AmountDue); err != nil {
			return nil, wrapErr("scan entry amounts", err)
		}
		list = append(list, &e)
	}
	return list, wrapErr("list entry amounts", rows.Err())
}

// SumTotals agrega en SQL los importes del conjunto filtrado.
func (r *EntryRepo) SumTotals(ctx context.Context, f repository.EntryFilter) (ledger.EntryTotals, error) {
	b := applyEntryFilter(psql.Select(
		"COALESCE(SUM(e.amount_paid), 0) AS amount_paid",
		"COALESCE(SUM(e.amount_due), 0) AS amount_due",
		"COALESCE(SUM(COALESCE(e.amount_paid, 0) + COALESCE(e.amount_due, 0)), 0) AS total",
		"COALESCE(SUM(e.work_hours), 0) AS work_hours",
	).From("entries e"), f)

	cols, err := queryDecimalColumns(ctx, querierFromCtx(ctx, r.db), b, "sum entries")
	if err != nil {
		return ledger.EntryTotals{}, err
	}
	return ledger.EntryTotalsFromColumns(cols), nil
}

// Count cuenta las filas del conjunto filtrado.
func (r *EntryRepo) Count(ctx context.Context, f repository.EntryFilter) (int64, error) {
	return r.count(ctx, querierFromCtx(ctx, r.db), f)
}

func (r *EntryRepo) count(ctx context.Context, q Querier, f repository.EntryFilter) (int64, error) {
	return countRows(ctx, q, applyEntryFilter(psql.Select("COUNT(*)").From("entries e"), f), "count entries")
}

func (r *EntryRepo) queryEntries(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Entry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list entries", err)
	}
	defer rows.Close()

	list := make([]*entity.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrapErr("scan entry", err)
		}
		list = append(list, e)
	}
	return list, wrapErr("list entries", rows.Err())
}
