package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
)

var userCtx = user.WithUser(context.Background(), user.User{Id: 1, Username: "anna"})

func date(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func storeTx(t *testing.T, repo *transaction.StubRepo, uid string, kind transaction.Kind, amount float64, category string, d time.Time) {
	t.Helper()
	_, err := repo.Store(userCtx, 1, transaction.Transaction{
		Uid:      uid,
		Kind:     kind,
		Amount:   money.FromFloat(amount),
		Category: category,
		Date:     d,
	})
	require.NoError(t, err)
}

func TestStatsService_GetSummary(t *testing.T) {
	t.Run("aggregates income and expenses per day and category", func(t *testing.T) {
		txRepo := transaction.NewStubRepo()
		service := NewStatsServiceImpl(txRepo)

		storeTx(t, txRepo, "tx-1", transaction.KindIncome, 3000, "Salary", date(1))
		storeTx(t, txRepo, "tx-2", transaction.KindExpense, 120.50, "Groceries", date(1))
		storeTx(t, txRepo, "tx-3", transaction.KindExpense, 79.50, "Groceries", date(2))
		storeTx(t, txRepo, "tx-4", transaction.KindExpense, 50, "Dining", date(2))

		// when
		summary, err := service.GetSummary(userCtx, date(1), date(4))

		// then
		require.NoError(t, err)
		assert.Equal(t, money.FromFloat(3000), summary.TotalIncome)
		assert.Equal(t, money.FromFloat(250), summary.TotalExpenses)
		assert.Equal(t, money.FromFloat(2750), summary.Net)

		require.Len(t, summary.Days, 3, "every day of the range appears, even empty ones")
		assert.Equal(t, money.FromFloat(120.50), summary.Days[0].Expenses)
		assert.Equal(t, money.FromFloat(3000), summary.Days[0].Income)
		assert.Equal(t, money.FromFloat(129.50), summary.Days[1].Expenses)
		assert.Zero(t, summary.Days[2].Expenses.Cents)

		require.Len(t, summary.Categories, 2)
		assert.Equal(t, "Groceries", summary.Categories[0].Category, "sorted by amount descending")
		assert.Equal(t, money.FromFloat(200), summary.Categories[0].Amount)
		assert.InDelta(t, 0.8, summary.Categories[0].Share, 0.001)
		assert.Equal(t, "Dining", summary.Categories[1].Category)
	})

	t.Run("empty range yields zero totals", func(t *testing.T) {
		service := NewStatsServiceImpl(transaction.NewStubRepo())

		summary, err := service.GetSummary(userCtx, date(1), date(3))

		require.NoError(t, err)
		assert.Zero(t, summary.TotalIncome.Cents)
		assert.Zero(t, summary.TotalExpenses.Cents)
		assert.Empty(t, summary.Categories)
		assert.Len(t, summary.Days, 2)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		service := NewStatsServiceImpl(transaction.NewStubRepo())

		_, err := service.GetSummary(userCtx, date(5), date(1))

		assert.Error(t, err)
	})

	t.Run("fails without a user in context", func(t *testing.T) {
		service := NewStatsServiceImpl(transaction.NewStubRepo())

		_, err := service.GetSummary(context.Background(), date(1), date(2))

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}
