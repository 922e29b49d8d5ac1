package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence_Daily(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"regular day", date(2024, time.March, 15), date(2024, time.March, 16)},
		{"month boundary", date(2024, time.March, 31), date(2024, time.April, 1)},
		{"year boundary", date(2023, time.December, 31), date(2024, time.January, 1)},
		{"leap day", date(2024, time.February, 28), date(2024, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(FrequencyDaily, Anchor{}, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrence_Weekly(t *testing.T) {
	// 2024-03-15 is a Friday (weekday 5)
	friday := date(2024, time.March, 15)

	t.Run("advances to the anchor weekday", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyWeekly, Anchor{DayOfWeek: 1}, friday) // Monday
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 18), got)
	})

	t.Run("same weekday advances a full week, never today", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyWeekly, Anchor{DayOfWeek: 5}, friday)
		require.NoError(t, err)
		assert.Equal(t, friday.AddDate(0, 0, 7), got)
	})

	t.Run("result is always strictly in the future", func(t *testing.T) {
		for dow := 0; dow <= 6; dow++ {
			got, err := NextOccurrence(FrequencyWeekly, Anchor{DayOfWeek: dow}, friday)
			require.NoError(t, err)
			assert.True(t, got.After(friday), "anchor weekday %d", dow)
			assert.Equal(t, dow, int(got.Weekday()))
		}
	})

	t.Run("rejects out-of-range weekday", func(t *testing.T) {
		_, err := NextOccurrence(FrequencyWeekly, Anchor{DayOfWeek: 7}, friday)
		assert.ErrorIs(t, err, ErrInvalidAnchor)
		_, err = NextOccurrence(FrequencyWeekly, Anchor{DayOfWeek: -1}, friday)
		assert.ErrorIs(t, err, ErrInvalidAnchor)
	})
}

func TestNextOccurrence_Monthly(t *testing.T) {
	t.Run("regular anchor day", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 10}, date(2024, time.March, 15))
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.April, 10), got)
	})

	t.Run("clamps to last day of a short month", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 31}, date(2024, time.January, 15))
		require.NoError(t, err)
		// 2024 is a leap year
		assert.Equal(t, date(2024, time.February, 29), got)
	})

	t.Run("clamps to Feb 28 outside leap years", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 30}, date(2023, time.January, 20))
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.February, 28), got)
	})

	t.Run("rolls over the year", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 5}, date(2023, time.December, 12))
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.January, 5), got)
	})

	t.Run("rejects out-of-range day", func(t *testing.T) {
		_, err := NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 0}, date(2024, time.March, 15))
		assert.ErrorIs(t, err, ErrInvalidAnchor)
		_, err = NextOccurrence(FrequencyMonthly, Anchor{DayOfMonth: 32}, date(2024, time.March, 15))
		assert.ErrorIs(t, err, ErrInvalidAnchor)
	})
}

func TestNextOccurrence_Yearly(t *testing.T) {
	t.Run("same month next year", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyYearly, Anchor{DayOfMonth: 14}, date(2024, time.July, 4))
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.July, 14), got)
	})

	t.Run("clamps day 29 in February of a non-leap target year", func(t *testing.T) {
		got, err := NextOccurrence(FrequencyYearly, Anchor{DayOfMonth: 29}, date(2024, time.February, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.February, 28), got)
	})

	t.Run("rejects out-of-range day", func(t *testing.T) {
		_, err := NextOccurrence(FrequencyYearly, Anchor{DayOfMonth: 40}, date(2024, time.March, 15))
		assert.ErrorIs(t, err, ErrInvalidAnchor)
	})
}

func TestNextOccurrence_UnknownFrequency(t *testing.T) {
	_, err := NextOccurrence(Frequency("biweekly"), Anchor{}, date(2024, time.March, 15))
	assert.ErrorIs(t, err, ErrUnknownFrequency)
}

func TestNextOccurrence_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)
	got, err := NextOccurrence(FrequencyDaily, Anchor{}, lateEvening)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 16), got)
}
