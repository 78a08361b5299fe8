package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All tests run against the default business timezone (Asia/Kolkata,
// UTC+5:30); Init is sync.Once so the package cannot be re-pointed per test.

func TestLocation_DefaultsWithoutInit(t *testing.T) {
	loc := Location()
	require.NotNil(t, loc)
	assert.Equal(t, DefaultTimezone, loc.String())
}

func TestStartOfMonthUTC(t *testing.T) {
	start := StartOfMonthUTC(2026, time.August)
	// Midnight Aug 1 in Kolkata is 18:30 Jul 31 UTC.
	assert.Equal(t, time.Date(2026, 7, 31, 18, 30, 0, 0, time.UTC), start)
}

func TestEndOfMonthUTC_JustBeforeNextMonth(t *testing.T) {
	end := EndOfMonthUTC(2026, time.August)
	next := StartOfMonthUTC(2026, time.September)
	assert.True(t, end.Before(next))
	assert.Equal(t, time.Nanosecond, next.Sub(end))
}

func TestYearMonth_BusinessMonthBoundary(t *testing.T) {
	// 19:00 UTC on Jul 31 is already Aug 1 in the business timezone.
	year, month := YearMonth(time.Date(2026, 7, 31, 19, 0, 0, 0, time.UTC))
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.August, month)

	// 18:00 UTC the same day is still Jul 31 locally.
	year, month = YearMonth(time.Date(2026, 7, 31, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.July, month)
}

func TestStartOfDayUTC(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	start := StartOfDayUTC(noon)
	assert.Equal(t, time.Date(2026, 8, 14, 18, 30, 0, 0, time.UTC), start)
}

func TestNowUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NowUTC().Location())
}
