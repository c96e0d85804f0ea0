package entity

import "time"

// Category clasifica los movimientos del libro (nombre único sin distinguir mayúsculas).
type Category struct {
	ID          int64
	Name        string
	Description string
	Color       string // #RRGGBB, vacío si no se define
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
