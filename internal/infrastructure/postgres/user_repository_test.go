package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
	"github.com/jhoicas/winery-api/internal/infrastructure/postgres"
)

// =============================================================================
// Usuarios
// =============================================================================

func TestUserRepo_CountActiveByRole(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE active = \$1 AND role = \$2`).
		WithArgs(true, entity.RoleAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	n, err := postgres.NewUserRepository(mock).CountActiveByRole(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, username, password_hash, role, active, created_at, updated_at FROM users WHERE username = \$1 LIMIT 1`).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "active", "created_at", "updated_at"}).
			AddRow(int64(1), "admin", "$2a$hash", entity.RoleAdmin, true, now, now))

	u, err := postgres.NewUserRepository(mock).GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsActiveAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List_OrdenPorDefectoUsername(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`FROM users ORDER BY username ASC, id ASC LIMIT 15 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "active", "created_at", "updated_at"}))

	_, _, err := postgres.NewUserRepository(mock).List(context.Background(), repository.PageQuery{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =============================================================================
// Auditoría
// =============================================================================

func TestAuditLogRepo_Create(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO audit_log \(table_name,record_id,action,old_values,new_values,changed_by,ip_address,user_agent,changed_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,now\(\)\) RETURNING id, changed_at`).
		WithArgs("persons", int64(5), entity.AuditInsert, nil, []byte(`{"id":5}`), "admin", "10.0.0.1", "curl/8").
		WillReturnRows(pgxmock.NewRows([]string{"id", "changed_at"}).AddRow(int64(42), now))

	a := &entity.AuditLog{
		TableName: entity.TablePersons,
		RecordID:  5,
		Action:    entity.AuditInsert,
		NewValues: json.RawMessage(`{"id":5}`),
		ChangedBy: "admin",
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8",
	}
	require.NoError(t, postgres.NewAuditLogRepository(mock).Create(context.Background(), a))
	assert.Equal(t, int64(42), a.ID)
	assert.Equal(t, now, a.ChangedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_List_FiltrosCombinados(t *testing.T) {
	mock := newMock(t)
	recordID := int64(5)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM audit_log WHERE table_name = \$1 AND record_id = \$2 AND changed_by ILIKE \$3`).
		WithArgs("persons", int64(5), "%adm%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`FROM audit_log WHERE .+ ORDER BY changed_at DESC, id DESC LIMIT 15 OFFSET 0`).
		WithArgs("persons", int64(5), "%adm%").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "table_name", "record_id", "action", "old_values", "new_values",
			"changed_by", "changed_at", "ip_address", "user_agent",
		}).AddRow(int64(1), "persons", int64(5), "DELETE", []byte(`{"id":5}`), nil, "admin", now, "unknown", "unknown"))

	list, total, err := postgres.NewAuditLogRepository(mock).List(context.Background(),
		repository.AuditFilter{TableName: "persons", RecordID: &recordID, ChangedBy: "adm"},
		repository.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"id":5}`, string(list[0].OldValues))
	assert.Empty(t, list[0].NewValues)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =============================================================================
// Transacciones
// =============================================================================

func TestTxRunner_CommitUsaLaTransaccion(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM persons WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	repo := postgres.NewPersonRepository(mock)
	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ctx context.Context) error {
		return repo.Delete(ctx, 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_ErrorHaceRollback(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("regla de negocio")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackFallidoConservaElErrorOriginal(t *testing.T) {
	mock := newMock(t)
	rbErr := errors.New("conexión cerrada")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rbErr)

	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ctx context.Context) error {
		return domain.Conflict(domain.ErrLastAdmin, "no se puede desactivar el último administrador")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, rbErr)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_BeginFalla(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("sin conexiones"))

	called := false
	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
