package usecase

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/application/mapper"
	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
	"github.com/jhoicas/winery-api/pkg/ctxutil"
	"github.com/jhoicas/winery-api/pkg/logger"
)

// AuditUseCase registra y consulta el historial de cambios.
type AuditUseCase struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

var _ Auditor = (*AuditUseCase)(nil)

// NewAuditUseCase construye el caso de uso de auditoría.
func NewAuditUseCase(repo repository.AuditLogRepository, log *logger.Logger) *AuditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{repo: repo, log: log.Named("audit")}
}

func (uc *AuditUseCase) LogCreate(ctx context.Context, table string, recordID int64, newState any) {
	uc.record(ctx, table, recordID, entity.AuditInsert, nil, newState)
}

func (uc *AuditUseCase) LogUpdate(ctx context.Context, table string, recordID int64, oldState, newState any) {
	uc.record(ctx, table, recordID, entity.AuditUpdate, oldState, newState)
}

func (uc *AuditUseCase) LogDelete(ctx context.Context, table string, recordID int64, oldState any) {
	uc.record(ctx, table, recordID, entity.AuditDelete, oldState, nil)
}

// record persiste una fila de auditoría. Los fallos se registran en el log y no se propagan.
func (uc *AuditUseCase) record(ctx context.Context, table string, recordID int64, action string, oldState, newState any) {
	actor := ctxutil.ActorFromCtx(ctx)
	a := &entity.AuditLog{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		ChangedBy: actor.Username,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}

	var err error
	if a.OldValues, err = snapshot(oldState); err != nil {
		uc.warn(ctx, a, err)
		return
	}
	if a.NewValues, err = snapshot(newState); err != nil {
		uc.warn(ctx, a, err)
		return
	}

	if err := uc.repo.Create(context.WithoutCancel(ctx), a); err != nil {
		uc.warn(ctx, a, err)
	}
}

func (uc *AuditUseCase) warn(ctx context.Context, a *entity.AuditLog, err error) {
	uc.log.Warn().Err(err).
		Str("request_id", ctxutil.RequestIDFromCtx(ctx)).
		Str("table", a.TableName).
		Int64("record_id", a.RecordID).
		Str("action", a.Action).
		Msg("no se pudo registrar la auditoría")
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// History lista la auditoría con cualquier combinación de filtros, más reciente primero.
func (uc *AuditUseCase) History(ctx context.Context, f repository.AuditFilter, page repository.PageQuery) (*dto.PageResponse[dto.AuditLogResponse], error) {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, domain.Validation("rango de fechas inválido", map[string]string{
			"startDate": "debe ser anterior o igual a endDate",
		})
	}
	page = page.Normalize()
	rows, total, err := uc.repo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := dto.NewPage(mapper.MapSlice(rows, mapper.AuditToResponse), total, page.Page, page.Size)
	return &out, nil
}

// EntityHistory lista los cambios de un registro concreto.
func (uc *AuditUseCase) EntityHistory(ctx context.Context, table string, recordID int64, page repository.PageQuery) (*dto.PageResponse[dto.AuditLogResponse], error) {
	if table == "" {
		return nil, domain.Validation("tabla obligatoria", map[string]string{"tableName": "es obligatorio"})
	}
	return uc.History(ctx, repository.AuditFilter{TableName: table, RecordID: &recordID}, page)
}
