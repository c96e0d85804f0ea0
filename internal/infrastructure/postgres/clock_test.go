package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPgTime(t *testing.T) {
	got, err := toPgTime("13:30:15")
	require.NoError(t, err)
	assert.Equal(t, pgtype.Time{Microseconds: (13*3600 + 30*60 + 15) * 1_000_000, Valid: true}, got)

	got, err = toPgTime("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", fromPgTime(got))

	_, err = toPgTime("25:99")
	assert.Error(t, err)
}

func TestFromPgTime_Nulo(t *testing.T) {
	assert.Empty(t, fromPgTime(pgtype.Time{}))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
