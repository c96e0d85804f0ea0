package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

var auditColumns = []string{
	"id", "table_name", "record_id", "action", "old_values", "new_values",
	"changed_by", "changed_at", "ip_address", "user_agent",
}

var auditSort = sortSpec{
	columns: map[string]string{
		"id":        "id",
		"changedAt": "changed_at",
		"tableName": "table_name",
		"recordId":  "record_id",
		"action":    "action",
		"changedBy": "changed_by",
	},
	defaultCol:  "changed_at",
	defaultDesc: true,
	tieBreaker:  "id",
}

// AuditLogRepo persistencia append-only de auditoría sobre PostgreSQL.
type AuditLogRepo struct {
	db Querier
}

// NewAuditLogRepository construye el adaptador de auditoría.
func NewAuditLogRepository(db Querier) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

// nullableJSON mapea un snapshot vacío a NULL.
func nullableJSON(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}

// Create inserta un registro de auditoría. Si ChangedAt es cero lo fija la base.
func (r *AuditLogRepo) Create(ctx context.Context, a *entity.AuditLog) error {
	b := psql.Insert("audit_log").
		Columns("table_name", "record_id", "action", "old_values", "new_values", "changed_by", "ip_address", "user_agent", "changed_at")
	var changedAt any = sq.Expr("now()")
	if !a.ChangedAt.IsZero() {
		changedAt = a.ChangedAt
	}
	query, args, err := b.Values(a.TableName, a.RecordID, a.Action, nullableJSON(a.OldValues), nullableJSON(a.NewValues),
		a.ChangedBy, a.IPAddress, a.UserAgent, changedAt).
		Suffix("RETURNING id, changed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit_log: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&a.ID, &a.ChangedAt); err != nil {
		return wrapErr("insert audit_log", err)
	}
	return nil
}

func applyAuditFilter(b sq.SelectBuilder, f repository.AuditFilter) sq.SelectBuilder {
	if f.TableName != "" {
		b = b.Where(sq.Eq{"table_name": f.TableName})
	}
	if f.RecordID != nil {
		b = b.Where(sq.Eq{"record_id": *f.RecordID})
	}
	if f.ChangedBy != "" {
		b = b.Where(sq.ILike{"changed_by": likePattern(f.ChangedBy)})
	}
	if f.StartDate != nil {
		b = b.Where(sq.GtOrEq{"changed_at": *f.StartDate})
	}
	if f.EndDate != nil {
		b = b.Where(sq.LtOrEq{"changed_at": *f.EndDate})
	}
	return b
}

// List devuelve la página del historial filtrado (por defecto más reciente primero).
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter, page repository.PageQuery) ([]*entity.AuditLog, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := countRows(ctx, q, applyAuditFilter(psql.Select("COUNT(*)").From("audit_log"), f), "count audit_log")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(applyAuditFilter(psql.Select(auditColumns...).From("audit_log"), f), auditSort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list audit_log: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list audit_log", err)
	}
	defer rows.Close()

	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var (
			a          entity.AuditLog
			oldV, newV []byte
		)
		if err := rows.Scan(&a.ID, &a.TableName, &a.RecordID, &a.Action, &oldV, &newV,
			&a.ChangedBy, &a.ChangedAt, &a.IPAddress, &a.UserAgent); err != nil {
			return nil, 0, wrapErr("scan audit_log", err)
		}
		a.OldValues, a.NewValues = oldV, newV
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list audit_log", err)
	}
	return list, total, nil
}
