package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

var eventColumns = []string{
	"id", "created_timestamp", "visit_date", "visit_time",
	"adult_lunch_guests", "adult_tasting_guests", "children_guests", "extra_guests",
	"hot_dish_vegetarian", "hot_dish_meat", "masterclass", "meal_extra_info",
	"company", "contact_name", "contact_phone",
	"special_price_enabled", "special_lunch_price", "lunch_group_size", "lunch_rate", "lunch_total",
	"special_tasting_price", "tasting_group_size", "tasting_rate", "tasting_total",
	"lunch_and_tasting_total", "added_wines_count", "added_wines_value",
	"extra_charge_comment", "extra_charge_amount", "grand_total", "invoice_issued",
	"created_at", "updated_at",
}

var eventSort = sortSpec{
	columns: map[string]string{
		"id":               "id",
		"visitDate":        "visit_date",
		"visitTime":        "visit_time",
		"company":          "company",
		"contactName":      "contact_name",
		"grandTotal":       "grand_total",
		"createdTimestamp": "created_timestamp",
	},
	defaultCol:  "visit_date",
	defaultDesc: true,
	tieBreaker:  "id",
}

// EventRepo implementación del puerto EventRepository sobre PostgreSQL.
type EventRepo struct {
	db Querier
}

// NewEventRepository construye el adaptador de persistencia para eventos.
func NewEventRepository(db Querier) *EventRepo {
	return &EventRepo{db: db}
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var (
		e         entity.Event
		visitTime pgtype.Time
	)
	err := row.Scan(
		&e.ID, &e.CreatedTimestamp, &e.VisitDate, &visitTime,
		&e.AdultLunchGuests, &e.AdultTastingGuests, &e.ChildrenGuests, &e.ExtraGuests,
		&e.HotDishVegetarian, &e.HotDishMeat, &e.Masterclass, &e.MealExtraInfo,
		&e.Company, &e.ContactName, &e.ContactPhone,
		&e.SpecialPriceEnabled, &e.SpecialLunchPrice, &e.LunchGroupSize, &e.LunchRate, &e.LunchTotal,
		&e.SpecialTastingPrice, &e.TastingGroupSize, &e.TastingRate, &e.TastingTotal,
		&e.LunchAndTastingTotal, &e.AddedWinesCount, &e.AddedWinesValue,
		&e.ExtraChargeComment, &e.ExtraChargeAmount, &e.GrandTotal, &e.InvoiceIssued,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.VisitTime = fromPgTime(visitTime)
	return &e, nil
}

// eventValues columnas escribibles de un evento.
func eventValues(e *entity.Event) (map[string]any, error) {
	visitTime, err := toPgTime(e.VisitTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return map[string]any{
		"visit_date":              e.VisitDate,
		"visit_time":              visitTime,
		"adult_lunch_guests":      e.AdultLunchGuests,
		"adult_tasting_guests":    e.AdultTastingGuests,
		"children_guests":         e.ChildrenGuests,
		"extra_guests":            e.ExtraGuests,
		"hot_dish_vegetarian":     e.HotDishVegetarian,
		"hot_dish_meat":           e.HotDishMeat,
		"masterclass":             e.Masterclass,
		"meal_extra_info":         e.MealExtraInfo,
		"company":                 e.Company,
		"contact_name":            e.ContactName,
		"contact_phone":           e.ContactPhone,
		"special_price_enabled":   e.SpecialPriceEnabled,
		"special_lunch_price":     e.SpecialLunchPrice,
		"lunch_group_size":        e.LunchGroupSize,
		"lunch_rate":              e.LunchRate,
		"lunch_total":             e.LunchTotal,
		"special_tasting_price":   e.SpecialTastingPrice,
		"tasting_group_size":      e.TastingGroupSize,
		"tasting_rate":            e.TastingRate,
		"tasting_total":           e.TastingTotal,
		"lunch_and_tasting_total": e.LunchAndTastingTotal,
		"added_wines_count":       e.AddedWinesCount,
		"added_wines_value":       e.AddedWinesValue,
		"extra_charge_comment":    e.ExtraChargeComment,
		"extra_charge_amount":     e.ExtraChargeAmount,
		"grand_total":             e.GrandTotal,
		"invoice_issued":          e.InvoiceIssued,
	}, nil
}

// Create persiste un evento. Si CreatedTimestamp está vacío lo fija la base.
func (r *EventRepo) Create(ctx context.Context, e *entity.Event) error {
	values, err := eventValues(e)
	if err != nil {
		return err
	}
	if !e.CreatedTimestamp.IsZero() {
		values["created_timestamp"] = e.CreatedTimestamp
	}
	query, args, err := psql.Insert("events").
		SetMap(values).
		Suffix("RETURNING id, created_timestamp, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert event: %w", err)
	}
	err = querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.CreatedTimestamp, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return wrapErr("insert event", err)
	}
	return nil
}

// GetByID obtiene un evento; (nil, nil) si no existe.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query, args, err := psql.Select(eventColumns...).From("events").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}
	e, err := scanEvent(querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get event by id", err)
	}
	return e, nil
}

// Update actualiza todas las columnas escribibles del evento.
func (r *EventRepo) Update(ctx context.Context, e *entity.Event) error {
	values, err := eventValues(e)
	if err != nil {
		return err
	}
	values["updated_at"] = sq.Expr("now()")
	query, args, err := psql.Update("events").
		SetMap(values).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update event: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update event %d: %w", e.ID, domain.ErrNotFound)
		}
		return wrapErr("update event", err)
	}
	return nil
}

// Delete elimina un evento por ID.
func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	tag, err := querierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete event %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func applyEventFilter(b sq.SelectBuilder, f repository.EventFilter) sq.SelectBuilder {
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"visit_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"visit_date": *f.DateTo})
	}
	if f.Company != "" {
		b = b.Where(sq.ILike{"company": likePattern(f.Company)})
	}
	if f.ContactName != "" {
		b = b.Where(sq.ILike{"contact_name": likePattern(f.ContactName)})
	}
	if f.SpecialPrice != nil {
		b = b.Where(sq.Eq{"special_price_enabled": *f.SpecialPrice})
	}
	if f.Masterclass != nil {
		b = b.Where(sq.Eq{"masterclass": *f.Masterclass})
	}
	if f.InvoiceIssued != nil {
		b = b.Where(sq.Eq{"invoice_issued": *f.InvoiceIssued})
	}
	return b
}

// List devuelve la página filtrada y el total de filas.
func (r *EventRepo) List(ctx context.Context, f repository.EventFilter, page repository.PageQuery) ([]*entity.Event, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := countRows(ctx, q, applyEventFilter(psql.Select("COUNT(*)").From("events"), f), "count events")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(applyEventFilter(psql.Select(eventColumns...).From("events"), f), eventSort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list events: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list events", err)
	}
	defer rows.Close()

	list := make([]*entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, wrapErr("scan event", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list events", err)
	}
	return list, total, nil
}

// ListAmounts devuelve las columnas de totales de todos los eventos.
func (r *EventRepo) ListAmounts(ctx context.Context) ([]*entity.Event, error) {
	rows, err := querierFromCtx(ctx, r.db).Query(ctx,
		`SELECT id, lunch_total, tasting_total, added_wines_value, extra_charge_amount, grand_total FROM events`)
	if err != nil {
		return nil, wrapErr("list event amounts", err)
	}
	defer rows.Close()

	list := make([]*entity.Event, 0)
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.LunchTotal, &e.TastingTotal, &e.AddedWinesValue, &e.ExtraChargeAmount, &e.GrandTotal); err != nil {
			return nil, wrapErr("scan event amounts", err)
		}
		list = append(list, &e)
	}
	return list, wrapErr("list event amounts", rows.Err())
}

// SumTotals agrega en SQL los totales del conjunto filtrado.
func (r *EventRepo) SumTotals(ctx context.Context, f repository.EventFilter) (ledger.EventTotals, error) {
	b := applyEventFilter(psql.Select(
		"COALESCE(SUM(lunch_total), 0) AS lunch_total",
		"COALESCE(SUM(tasting_total), 0) AS tasting_total",
		"COALESCE(SUM(added_wines_value), 0) AS added_wines_value",
		"COALESCE(SUM(extra_charge_amount), 0) AS extra_charge_amount",
		"COALESCE(SUM(grand_total), 0) AS grand_total",
	).From("events"), f)

	cols, err := queryDecimalColumns(ctx, querierFromCtx(ctx, r.db), b, "sum events")
	if err != nil {
		return ledger.EventTotals{}, err
	}
	return ledger.EventTotalsFromColumns(cols), nil
}
