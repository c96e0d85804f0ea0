package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const clockLayout = "15:04:05"

// toPgTime convierte "HH:MM:SS" (o "HH:MM") a pgtype.Time.
func toPgTime(s string) (pgtype.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		if t, err = time.Parse("15:04", s); err != nil {
			return pgtype.Time{}, fmt.Errorf("hora inválida %q: %w", s, err)
		}
	}
	us := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond) +
		int64(t.Second())*int64(time.Second/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}, nil
}

// fromPgTime formatea una columna TIME como "HH:MM:SS".
func fromPgTime(t pgtype.Time) string {
	if !t.Valid {
		return ""
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return time.Time{}.Add(d).Format(clockLayout)
}
