package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "start_time").
		From("bookings").
		Where(squirrel.Eq{"schedule_id": int64(1)}).
		Where(squirrel.Lt{"start_time": "2025-01-01"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, start_time FROM bookings WHERE schedule_id = $1 AND start_time < $2", query)
	assert.Equal(t, []interface{}{int64(1), "2025-01-01"}, args)
}

func TestUpdate_DollarPlaceholders(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "confirmed").
		Where(squirrel.Eq{"id": int64(7)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
