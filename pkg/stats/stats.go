package stats

import (
	"time"

	"github.com/aksuite/aksuite/pkg/money"
)

// Summary aggregates an account's cash flow over a date range.
type Summary struct {
	StartDate     time.Time
	EndDate       time.Time
	Days          []DailyStats
	Categories    []CategorySpending
	TotalIncome   money.Money
	TotalExpenses money.Money
	Net           money.Money
}

type DailyStats struct {
	Date     time.Time
	Income   money.Money
	Expenses money.Money
}

// CategorySpending is the expense total for one category. Share is the
// fraction of all expenses in the range, in [0,1].
type CategorySpending struct {
	Category string
	Amount   money.Money
	Share    float64
}
