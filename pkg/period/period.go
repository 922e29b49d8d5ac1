package period

import (
	"errors"
	"time"
)

// Period is the length of a budget limit window.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// DefaultWeekStart is the week-start convention used when the user has not
// chosen one. Weekly windows always start on an explicit weekday rather than
// rolling back 7 days from "now".
const DefaultWeekStart = time.Monday

var ErrUnknownPeriod = errors.New("unknown period")

func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Range is a half-open date interval: Start is inclusive, End is exclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the range.
func (r Range) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(r.Start) && d.Before(r.End)
}

// DateOf truncates a timestamp to its calendar date (midnight, same location).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Window returns the current window of the given period containing the
// reference date. It never reads a clock; the reference date is always
// caller-supplied. For any valid period, Start <= reference < End.
func Window(p Period, reference time.Time, weekStart time.Weekday) (Range, error) {
	ref := DateOf(reference)
	switch p {
	case Daily:
		return Range{Start: ref, End: ref.AddDate(0, 0, 1)}, nil
	case Weekly:
		back := (int(ref.Weekday()) - int(weekStart) + 7) % 7
		start := ref.AddDate(0, 0, -back)
		return Range{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case Monthly:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case Yearly:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, nil
	default:
		return Range{}, ErrUnknownPeriod
	}
}
