package repository

import "time"

// NameFilter filtros de listado para Person y Category.
type NameFilter struct {
	Name   string // subcadena, sin distinguir mayúsculas
	Active *bool
}

// EntryFilter filtros de movimientos. Fechas inclusivas.
type EntryFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	PersonID    *int64
	CategoryID  *int64
	Description string // subcadena, sin distinguir mayúsculas
}

// IsEmpty indica si no hay ningún filtro activo.
func (f EntryFilter) IsEmpty() bool {
	return f.DateFrom == nil && f.DateTo == nil && f.PersonID == nil && f.CategoryID == nil && f.Description == ""
}

// EventFilter filtros de eventos. Fechas inclusivas sobre visit_date.
type EventFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	Company       string // subcadena, sin distinguir mayúsculas
	ContactName   string // subcadena, sin distinguir mayúsculas
	SpecialPrice  *bool
	Masterclass   *bool
	InvoiceIssued *bool
}

// IsEmpty indica si no hay ningún filtro activo.
func (f EventFilter) IsEmpty() bool {
	return f.DateFrom == nil && f.DateTo == nil && f.Company == "" && f.ContactName == "" &&
		f.SpecialPrice == nil && f.Masterclass == nil && f.InvoiceIssued == nil
}

// AuditFilter filtros del historial de auditoría.
type AuditFilter struct {
	TableName string // exacto
	RecordID  *int64
	ChangedBy string // subcadena, sin distinguir mayúsculas
	StartDate *time.Time
	EndDate   *time.Time
}
