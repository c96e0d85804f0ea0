package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// queryDecimalColumns ejecuta un agregado de una sola fila y devuelve sus columnas
// por el nombre con que las reporta la base (en minúsculas salvo alias entre comillas).
func queryDecimalColumns(ctx context.Context, q Querier, b sq.SelectBuilder, op string) (map[string]decimal.Decimal, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	cols := make(map[string]decimal.Decimal)
	if !rows.Next() {
		return cols, wrapErr(op, rows.Err())
	}

	fields := rows.FieldDescriptions()
	values := make([]decimal.Decimal, len(fields))
	dest := make([]any, len(fields))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, wrapErr(op, err)
	}
	for i, f := range fields {
		cols[f.Name] = values[i]
	}
	return cols, wrapErr(op, rows.Err())
}
