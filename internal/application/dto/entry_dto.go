package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest entrada para crear/actualizar un movimiento.
type EntryRequest struct {
	Date        *Date            `json:"date"`
	Description string           `json:"description"`
	PersonID    int64            `json:"personId"`
	CategoryID  int64            `json:"categoryId"`
	WorkHours   *decimal.Decimal `json:"workHours"`
	AmountPaid  *decimal.Decimal `json:"amountPaid"`
	AmountDue   *decimal.Decimal `json:"amountDue"`
}

// Validate devuelve errores por campo o nil.
func (r *EntryRequest) Validate() ValidationErrors {
	v := ValidationErrors{}
	r.Description = strings.TrimSpace(r.Description)
	if r.Date == nil {
		v.add("date", "la fecha es obligatoria")
	}
	if r.Description == "" {
		v.add("description", "la descripción es obligatoria")
	}
	v.maxLen("description", r.Description, 500)
	if r.PersonID <= 0 {
		v.add("personId", "la persona es obligatoria")
	}
	if r.CategoryID <= 0 {
		v.add("categoryId", "la categoría es obligatoria")
	}
	v.nonNegative("workHours", r.WorkHours)
	v.maxDecimal("workHours", r.WorkHours, MaxWorkHours)
	v.amount("amountPaid", r.AmountPaid)
	v.amount("amountDue", r.AmountDue)
	return v.OrNil()
}

// EntryResponse salida de un movimiento con nombres resueltos.
type EntryResponse struct {
	ID           int64     `json:"id"`
	Date         Date      `json:"date"`
	Description  string    `json:"description"`
	PersonID     int64     `json:"personId"`
	PersonName   string    `json:"personName"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	WorkHours    *Money    `json:"workHours"`
	AmountPaid   *Money    `json:"amountPaid"`
	AmountDue    *Money    `json:"amountDue"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EntryTotals totales de movimientos en la frontera JSON.
type EntryTotals struct {
	AmountPaid Money `json:"amountPaid"`
	AmountDue  Money `json:"amountDue"`
	Total      Money `json:"total"`
	WorkHours  Money `json:"workHours"`
}

// EntryPage listado de movimientos con totales de página y del conjunto filtrado.
type EntryPage struct {
	PageResponse[EntryResponse]
	PageTotal  EntryTotals `json:"pageTotal"`
	GrandTotal EntryTotals `json:"grandTotal"`
}
