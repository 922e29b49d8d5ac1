package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow_Daily(t *testing.T) {
	w, err := Window(Daily, date(2024, time.March, 15), DefaultWeekStart)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), w.Start)
	assert.Equal(t, date(2024, time.March, 16), w.End)
}

func TestWindow_Weekly(t *testing.T) {
	tests := []struct {
		name      string
		reference time.Time
		weekStart time.Weekday
		wantStart time.Time
	}{
		// 2024-03-15 is a Friday
		{"mid-week falls back to Monday", date(2024, time.March, 15), time.Monday, date(2024, time.March, 11)},
		{"Monday stays on Monday", date(2024, time.March, 11), time.Monday, date(2024, time.March, 11)},
		{"Sunday belongs to previous Monday week", date(2024, time.March, 17), time.Monday, date(2024, time.March, 11)},
		{"Sunday week start", date(2024, time.March, 15), time.Sunday, date(2024, time.March, 10)},
		{"week spanning month boundary", date(2024, time.April, 2), time.Monday, date(2024, time.April, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Window(Weekly, tt.reference, tt.weekStart)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 7), w.End)
		})
	}
}

func TestWindow_Monthly(t *testing.T) {
	w, err := Window(Monthly, date(2024, time.February, 29), DefaultWeekStart)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 1), w.Start)
	assert.Equal(t, date(2024, time.March, 1), w.End)

	// December rolls over to January of the next year
	w, err = Window(Monthly, date(2023, time.December, 31), DefaultWeekStart)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.December, 1), w.Start)
	assert.Equal(t, date(2024, time.January, 1), w.End)
}

func TestWindow_Yearly(t *testing.T) {
	w, err := Window(Yearly, date(2024, time.July, 4), DefaultWeekStart)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 1), w.Start)
	assert.Equal(t, date(2025, time.January, 1), w.End)
}

func TestWindow_ContainsReference(t *testing.T) {
	// Window containment must hold for every period and any reference date.
	references := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2024, time.June, 15),
		date(2024, time.December, 31),
		date(2025, time.March, 3),
	}
	for _, p := range []Period{Daily, Weekly, Monthly, Yearly} {
		for _, ref := range references {
			w, err := Window(p, ref, DefaultWeekStart)
			require.NoError(t, err)
			assert.True(t, w.Contains(ref), "period %s should contain %s", p, ref)
			assert.True(t, w.Start.Before(w.End))
		}
	}
}

func TestWindow_UnknownPeriod(t *testing.T) {
	_, err := Window(Period("quarterly"), date(2024, time.March, 15), DefaultWeekStart)
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestWindow_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)
	w, err := Window(Daily, late, DefaultWeekStart)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), w.Start)
	assert.True(t, w.Contains(late))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: date(2024, time.March, 1), End: date(2024, time.April, 1)}
	assert.True(t, r.Contains(date(2024, time.March, 1)), "start is inclusive")
	assert.True(t, r.Contains(date(2024, time.March, 31)))
	assert.False(t, r.Contains(date(2024, time.April, 1)), "end is exclusive")
	assert.False(t, r.Contains(date(2024, time.February, 29)))
}

func TestPeriod_Valid(t *testing.T) {
	for _, p := range []Period{Daily, Weekly, Monthly, Yearly} {
		assert.True(t, p.Valid())
	}
	assert.False(t, Period("").Valid())
	assert.False(t, Period("fortnightly").Valid())
}
