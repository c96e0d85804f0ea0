package dto

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas en la API (ISO-8601, sin hora).
const DateLayout = "2006-01-02"

// Date fecha sin hora serializada como "YYYY-MM-DD".
type Date time.Time

// NewDate trunca t a su fecha en UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate interpreta "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q, se espera YYYY-MM-DD", s)
	}
	return Date(t), nil
}

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	parsed, err := ParseDate(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Money importe serializado como número JSON con dos decimales (ej. 150.00).
type Money decimal.Decimal

// NewMoney envuelve un decimal.
func NewMoney(v decimal.Decimal) Money { return Money(v) }

// MoneyPtr envuelve un decimal opcional (nil se serializa como null).
func MoneyPtr(v *decimal.Decimal) *Money {
	if v == nil {
		return nil
	}
	m := Money(*v)
	return &m
}

func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// PageResponse página de resultados (page 0-based).
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage arma los metadatos de página a partir del total.
func NewPage[T any](content []T, total int64, page, size int) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		Size:          size,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Límites de las columnas: NUMERIC(5,2) para horas, NUMERIC(10,2) para importes, INTEGER para conteos.
var (
	MaxWorkHours = decimal.RequireFromString("999.99")
	MaxMoney     = decimal.RequireFromString("99999999.99")
)

const maxCount = math.MaxInt32

// ValidationErrors errores por campo (campo -> mensaje).
type ValidationErrors map[string]string

func (v ValidationErrors) add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

func (v ValidationErrors) nonNegative(field string, d *decimal.Decimal) {
	if d != nil && d.IsNegative() {
		v.add(field, "debe ser mayor o igual a 0")
	}
}

// maxDecimal compara el valor ya redondeado a 2 decimales, que es lo que guarda la columna.
func (v ValidationErrors) maxDecimal(field string, d *decimal.Decimal, limit decimal.Decimal) {
	if d != nil && d.Round(2).GreaterThan(limit) {
		v.add(field, "no puede superar "+limit.StringFixed(2))
	}
}

// amount valida un importe no negativo dentro de MaxMoney.
func (v ValidationErrors) amount(field string, d *decimal.Decimal) {
	v.nonNegative(field, d)
	v.maxDecimal(field, d, MaxMoney)
}

// count valida un conteo entre 0 y el máximo de INTEGER.
func (v ValidationErrors) count(field string, n int) {
	switch {
	case n < 0:
		v.add(field, "debe ser mayor o igual a 0")
	case n > maxCount:
		v.add(field, fmt.Sprintf("no puede superar %d", maxCount))
	}
}

func (v ValidationErrors) maxLen(field, s string, max int) {
	if len([]rune(s)) > max {
		v.add(field, fmt.Sprintf("no puede superar %d caracteres", max))
	}
}

// OrNil devuelve nil si no hay errores.
func (v ValidationErrors) OrNil() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	return v
}
