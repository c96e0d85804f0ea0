package usecase

import (
	"context"

	"github.com/jhoicas/winery-api/internal/application/dto"
)

// TxRunner ejecuta fn dentro de una transacción; los repositorios la toman del contexto.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// Auditor registra cambios sobre registros de negocio. Es best-effort: nunca falla al llamador.
type Auditor interface {
	LogCreate(ctx context.Context, table string, recordID int64, newState any)
	LogUpdate(ctx context.Context, table string, recordID int64, oldState, newState any)
	LogDelete(ctx context.Context, table string, recordID int64, oldState any)
}

// ReportRenderer genera la representación PDF del resumen de movimientos.
type ReportRenderer interface {
	RenderSummary(ctx context.Context, s dto.ReportSummaryResponse) ([]byte, error)
}
