package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/aksuite/aksuite/pkg/period"
)

var (
	ErrInvalidAnchor    = errors.New("anchor out of range")
	ErrUnknownFrequency = errors.New("unknown frequency")
)

// Anchor pins a rule's occurrences to a fixed point within its cycle.
type Anchor struct {
	DayOfWeek  int // 0=Sunday..6=Saturday, weekly rules
	DayOfMonth int // 1..31, monthly and yearly rules
}

// NextOccurrence computes the next date a rule should fire, strictly after
// the reference date. It is a pure function: materializing the occurrence and
// persisting the advanced date are the caller's responsibility.
//
//   - daily: the following day.
//   - weekly: the next date falling on the anchor weekday; when the reference
//     date already falls on it, a full 7 days later, never the reference
//     date itself.
//   - monthly: the anchor day in the following month, clamped to that month's
//     last day (an anchor of 31 fires on Feb 29 in a leap year).
//   - yearly: the anchor day in the same month one year later, clamped the
//     same way.
func NextOccurrence(frequency Frequency, anchor Anchor, now time.Time) (time.Time, error) {
	ref := period.DateOf(now)

	switch frequency {
	case FrequencyDaily:
		return ref.AddDate(0, 0, 1), nil

	case FrequencyWeekly:
		if anchor.DayOfWeek < 0 || anchor.DayOfWeek > 6 {
			return time.Time{}, fmt.Errorf("%w: day of week %d", ErrInvalidAnchor, anchor.DayOfWeek)
		}
		delta := (anchor.DayOfWeek - int(ref.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return ref.AddDate(0, 0, delta), nil

	case FrequencyMonthly:
		if anchor.DayOfMonth < 1 || anchor.DayOfMonth > 31 {
			return time.Time{}, fmt.Errorf("%w: day of month %d", ErrInvalidAnchor, anchor.DayOfMonth)
		}
		target := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
		return withClampedDay(target, anchor.DayOfMonth), nil

	case FrequencyYearly:
		if anchor.DayOfMonth < 1 || anchor.DayOfMonth > 31 {
			return time.Time{}, fmt.Errorf("%w: day of month %d", ErrInvalidAnchor, anchor.DayOfMonth)
		}
		target := time.Date(ref.Year()+1, ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return withClampedDay(target, anchor.DayOfMonth), nil

	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, frequency)
	}
}

// withClampedDay returns the given day within firstOfMonth's month, clamped
// to the month's actual length.
func withClampedDay(firstOfMonth time.Time, day int) time.Time {
	last := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, firstOfMonth.Location())
}
