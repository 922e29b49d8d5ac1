package recurring

import (
	"time"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/transaction"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Rule is a template that periodically produces a concrete transaction.
// NextDate is the next calendar date the rule should fire; it is seeded at
// creation time and advanced each time the rule is materialized.
type Rule struct {
	ID     int
	Uid    string
	UserId int
	Kind   transaction.Kind
	Amount money.Money
	// Category and Description are copied verbatim onto materialized
	// transactions.
	Category    string
	Description string
	Emoji       string
	Frequency   Frequency
	// DayOfWeek anchors weekly rules (0=Sunday..6=Saturday); DayOfMonth
	// anchors monthly and yearly rules (1..31). Daily rules use neither.
	DayOfWeek  int
	DayOfMonth int
	NextDate   time.Time
	Active     bool
}

func (r Rule) Anchor() Anchor {
	return Anchor{DayOfWeek: r.DayOfWeek, DayOfMonth: r.DayOfMonth}
}
