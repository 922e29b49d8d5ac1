package limit

import (
	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
)

// BudgetLimit caps spending for one category over a recurring period window.
// At most one active limit exists per category for an account.
type BudgetLimit struct {
	ID        int
	Uid       string
	Category  string
	CapAmount money.Money
	Period    period.Period
	// AlertThresholdPercent is the percentage of the cap at which the limit
	// starts reporting a warning, in [0,100].
	AlertThresholdPercent int
	Active                bool
}

type Status string

const (
	StatusOk       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// LimitStatus is the evaluated state of a limit for the current period
// window. It is derived on demand and never persisted.
type LimitStatus struct {
	BudgetLimit
	CurrentSpending money.Money
	// PercentageUsed is not clamped; values above 100 mean the cap is
	// exceeded. Clamping for progress bars is a presentation concern.
	PercentageUsed float64
	Remaining      money.Money
	Status         Status
}
