package schedule

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntriesSelect_ChecksBothScheduleSources(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	query, args, err := buildEntriesSelect(42, "Monday", date).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM work_schedules ws JOIN offices o ON o.id = ws.office_id")
	assert.Contains(t, query, "WHERE ws.practitioner_id = $1 AND (ws.day_of_week = $2 OR $3::date = ANY(ws.explicit_dates))")
	assert.Contains(t, query, "ORDER BY o.name ASC, ws.start_time ASC")
	assert.Equal(t, []interface{}{int64(42), "Monday", "2025-01-06"}, args)
}

func TestParseDates(t *testing.T) {
	dates, err := parseDates(pq.StringArray{"2025-01-06", "2025-02-10"})
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.February, dates[1].Month())

	empty, err := parseDates(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = parseDates(pq.StringArray{"06.01.2025"})
	assert.Error(t, err)
}
