package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
)

type StatsService interface {
	GetSummary(ctx context.Context, from time.Time, to time.Time) (Summary, error)
}

type StatsServiceImpl struct {
	txRepo transaction.Repo
}

func NewStatsServiceImpl(txRepo transaction.Repo) *StatsServiceImpl {
	return &StatsServiceImpl{txRepo: txRepo}
}

// GetSummary aggregates the user's transactions between from (inclusive) and
// to (exclusive). Every day of the range appears in Days, including days
// without transactions.
func (s *StatsServiceImpl) GetSummary(ctx context.Context, from time.Time, to time.Time) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !to.After(from) {
		return Summary{}, fmt.Errorf("end date must be after start date")
	}

	from = period.DateOf(from)
	to = period.DateOf(to)

	transactions, err := s.txRepo.FindByDateRange(ctx, userId, from, to)
	if err != nil {
		return Summary{}, err
	}

	incomeByDay := map[time.Time]money.Money{}
	expensesByDay := map[time.Time]money.Money{}
	expensesByCategory := map[string]money.Money{}
	var totalIncome, totalExpenses money.Money

	for _, tx := range transactions {
		day := period.DateOf(tx.Date)
		switch tx.Kind {
		case transaction.KindIncome:
			incomeByDay[day] = incomeByDay[day].Add(tx.Amount)
			totalIncome = totalIncome.Add(tx.Amount)
		case transaction.KindExpense:
			expensesByDay[day] = expensesByDay[day].Add(tx.Amount)
			expensesByCategory[tx.Category] = expensesByCategory[tx.Category].Add(tx.Amount)
			totalExpenses = totalExpenses.Add(tx.Amount)
		}
	}

	days := make([]DailyStats, 0, int(to.Sub(from).Hours()/24))
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		days = append(days, DailyStats{
			Date:     day,
			Income:   incomeByDay[day],
			Expenses: expensesByDay[day],
		})
	}

	categories := make([]CategorySpending, 0, len(expensesByCategory))
	for category, amount := range expensesByCategory {
		share := 0.0
		if totalExpenses.Cents > 0 {
			share = float64(amount.Cents) / float64(totalExpenses.Cents)
		}
		categories = append(categories, CategorySpending{
			Category: category,
			Amount:   amount,
			Share:    share,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount.Cents != categories[j].Amount.Cents {
			return categories[i].Amount.Cents > categories[j].Amount.Cents
		}
		return categories[i].Category < categories[j].Category
	})

	return Summary{
		StartDate:     from,
		EndDate:       to,
		Days:          days,
		Categories:    categories,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Net:           totalIncome.Sub(totalExpenses),
	}, nil
}
