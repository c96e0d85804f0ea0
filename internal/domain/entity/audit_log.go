package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la auditoría.
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// Tablas auditadas.
const (
	TablePersons    = "persons"
	TableCategories = "categories"
	TableEntries    = "entries"
	TableEvents     = "events"
	TableUsers      = "users"
)

// AuditLog es un registro inmutable de un cambio sobre una fila de negocio.
// OldValues/NewValues son instantáneas JSON de la representación pública del registro.
type AuditLog struct {
	ID        int64
	TableName string
	RecordID  int64
	Action    string
	OldValues json.RawMessage
	NewValues json.RawMessage
	ChangedBy string
	ChangedAt time.Time
	IPAddress string
	UserAgent string
}
