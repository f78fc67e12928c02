package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateZeroPads(t *testing.T) {
	assert.Equal(t, "2025-04-01", FormatDate(2025, 3, 1))
	assert.Equal(t, "2025-12-31", FormatDate(2025, 11, 31))
	assert.Equal(t, "0999-01-09", FormatDate(999, 0, 9))
}

func TestFormatDateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		year := 1970 + rng.Intn(100)
		month0 := rng.Intn(12)
		day := 1 + rng.Intn(daysInMonth(year, month0))

		raw := FormatDate(year, month0, day)
		parsed, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, FormatDate(parsed.Year(), int(parsed.Month())-1, parsed.Day()))
	}
}

func daysInMonth(year, month0 int) int {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "2025-13-01", "2025-04-31", "04/01/2025", "2025-4-1"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 4, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 4, 1, 23, 59, 59, 0, time.UTC)
	next := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, next))
}

func TestEnumerateDaysInclusive(t *testing.T) {
	start := time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	days := EnumerateDays(start, end)
	require.Len(t, days, 5)
	assert.Equal(t, "2025-04-28", days[0].Format(DateLayout))
	assert.Equal(t, "2025-05-02", days[4].Format(DateLayout))
}

func TestEnumerateDaysSingleDay(t *testing.T) {
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	days := EnumerateDays(day, day)
	require.Len(t, days, 1)
	assert.True(t, SameDay(day, days[0]))
}

func TestEnumerateDaysInvertedRangeIsEmpty(t *testing.T) {
	start := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, EnumerateDays(start, end))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, 2, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "2024-02-01", first.Format(DateLayout))
	assert.Equal(t, "2024-02-29", last.Format(DateLayout))

	first, last = MonthBounds(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-12-01", first.Format(DateLayout))
	assert.Equal(t, "2025-12-31", last.Format(DateLayout))
}
