package limit

import (
	"errors"
	"fmt"
	"time"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
	"github.com/aksuite/aksuite/pkg/transaction"
)

var ErrInvalidLimit = errors.New("invalid budget limit")

// Evaluate computes the current spending status of a single limit against
// the account's transactions. Only expenses in the limit's category dated
// inside the current period window count; income and out-of-window entries
// never contribute. The function is pure: it reads its arguments, mutates
// nothing, and uses only the supplied reference time.
func Evaluate(limit BudgetLimit, transactions []transaction.Transaction, now time.Time, weekStart time.Weekday) (LimitStatus, error) {
	if !limit.CapAmount.IsPositive() {
		return LimitStatus{}, fmt.Errorf("%w: cap amount must be positive", ErrInvalidLimit)
	}
	if limit.AlertThresholdPercent < 0 || limit.AlertThresholdPercent > 100 {
		return LimitStatus{}, fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrInvalidLimit)
	}

	window, err := period.Window(limit.Period, now, weekStart)
	if err != nil {
		return LimitStatus{}, fmt.Errorf("%w: %v", ErrInvalidLimit, err)
	}

	var spending money.Money
	for _, tx := range transactions {
		if tx.Kind != transaction.KindExpense {
			continue
		}
		if tx.Category != limit.Category {
			continue
		}
		if !window.Contains(tx.Date) {
			continue
		}
		spending = spending.Add(tx.Amount)
	}

	return LimitStatus{
		BudgetLimit:     limit,
		CurrentSpending: spending,
		PercentageUsed:  float64(spending.Cents) / float64(limit.CapAmount.Cents) * 100,
		Remaining:       limit.CapAmount.Sub(spending),
		Status:          statusOf(limit, spending),
	}, nil
}

// statusOf classifies spending against the cap using integer cents, so
// boundaries like 79.99 vs 80.00 of an 80% threshold resolve exactly.
func statusOf(limit BudgetLimit, spending money.Money) Status {
	if spending.Cents >= limit.CapAmount.Cents {
		return StatusExceeded
	}
	if spending.Cents > 0 && spending.Cents*100 >= limit.CapAmount.Cents*int64(limit.AlertThresholdPercent) {
		return StatusWarning
	}
	return StatusOk
}

// EvaluateAll evaluates every active limit, preserving input order. Inactive
// limits are left out of the result.
func EvaluateAll(limits []BudgetLimit, transactions []transaction.Transaction, now time.Time, weekStart time.Weekday) ([]LimitStatus, error) {
	statuses := make([]LimitStatus, 0, len(limits))
	for _, l := range limits {
		if !l.Active {
			continue
		}
		status, err := Evaluate(l, transactions, now, weekStart)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
