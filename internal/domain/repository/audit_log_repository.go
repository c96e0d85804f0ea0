package repository

import (
	"context"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// AuditLogRepository persistencia append-only de la auditoría.
type AuditLogRepository interface {
	Create(ctx context.Context, a *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter, page PageQuery) ([]*entity.AuditLog, int64, error)
}
