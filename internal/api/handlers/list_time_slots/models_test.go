package list_time_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	got, err := ParseWeekday("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseWeekday("0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Sunday, *got)

	got, err = ParseWeekday("6")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, *got)

	for _, raw := range []string{"7", "-1", "mon"} {
		_, err := ParseWeekday(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseDate("2025-10-18")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Saturday, got.Weekday())

	for _, raw := range []string{"18.10.2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}
