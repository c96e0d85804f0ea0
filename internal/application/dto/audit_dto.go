package dto

import (
	"encoding/json"
	"time"
)

// AuditLogResponse salida de un registro de auditoría.
type AuditLogResponse struct {
	ID        int64           `json:"id"`
	TableName string          `json:"tableName"`
	RecordID  int64           `json:"recordId"`
	Action    string          `json:"action"`
	OldValues json.RawMessage `json:"oldValues"`
	NewValues json.RawMessage `json:"newValues"`
	ChangedBy string          `json:"changedBy"`
	ChangedAt time.Time       `json:"changedAt"`
	IPAddress string          `json:"ipAddress"`
	UserAgent string          `json:"userAgent"`
}
