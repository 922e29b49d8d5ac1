package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/transaction"
)

func setupProcessor(now time.Time) (*Processor, *StubRepo, *transaction.StubRepo, *event_bus.EventBus) {
	ruleRepo := NewStubRepo()
	txRepo := transaction.NewStubRepo()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: now}
	return NewProcessor(ruleRepo, txRepo, bus, clock), ruleRepo, txRepo, bus
}

func storedRule(t *testing.T, repo *StubRepo, rule Rule) Rule {
	t.Helper()
	id, err := repo.Store(context.Background(), rule.UserId, rule)
	require.NoError(t, err)
	rule.ID = id
	return rule
}

func TestProcessor_ProcessDue(t *testing.T) {
	now := time.Date(2024, time.March, 15, 6, 0, 0, 0, time.UTC)

	t.Run("materializes a due rule and advances its schedule", func(t *testing.T) {
		processor, ruleRepo, txRepo, _ := setupProcessor(now)
		rule := storedRule(t, ruleRepo, Rule{
			Uid:        "rule-1",
			UserId:     7,
			Kind:       transaction.KindExpense,
			Amount:     money.FromFloat(1200),
			Category:   "Housing",
			Frequency:  FrequencyMonthly,
			DayOfMonth: 15,
			NextDate:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			Active:     true,
		})

		// when
		processed, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		transactions, err := txRepo.GetAll(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, rule.NextDate, transactions[0].Date, "transaction carries the due date")
		assert.Equal(t, rule.ID, transactions[0].OriginRuleId)
		assert.Equal(t, int64(120000), transactions[0].Amount.Cents)

		advanced, err := ruleRepo.GetByUid(context.Background(), 7, "rule-1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), advanced.NextDate)
	})

	t.Run("skips rules that are not yet due", func(t *testing.T) {
		processor, ruleRepo, txRepo, _ := setupProcessor(now)
		storedRule(t, ruleRepo, Rule{
			Uid:       "rule-future",
			UserId:    7,
			Kind:      transaction.KindExpense,
			Amount:    money.FromFloat(10),
			Category:  "Subscriptions",
			Frequency: FrequencyDaily,
			NextDate:  time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			Active:    true,
		})

		// when
		processed, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		assert.Zero(t, processed)
		transactions, _ := txRepo.GetAll(context.Background(), 7)
		assert.Empty(t, transactions)
	})

	t.Run("skips inactive rules even when overdue", func(t *testing.T) {
		processor, ruleRepo, txRepo, _ := setupProcessor(now)
		storedRule(t, ruleRepo, Rule{
			Uid:       "rule-paused",
			UserId:    7,
			Kind:      transaction.KindExpense,
			Amount:    money.FromFloat(10),
			Category:  "Subscriptions",
			Frequency: FrequencyDaily,
			NextDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			Active:    false,
		})

		// when
		processed, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		assert.Zero(t, processed)
		transactions, _ := txRepo.GetAll(context.Background(), 7)
		assert.Empty(t, transactions)
	})

	t.Run("materializes at most once when ticks race", func(t *testing.T) {
		processor, ruleRepo, txRepo, _ := setupProcessor(now)
		rule := storedRule(t, ruleRepo, Rule{
			Uid:       "rule-race",
			UserId:    7,
			Kind:      transaction.KindIncome,
			Amount:    money.FromFloat(3000),
			Category:  "Salary",
			Frequency: FrequencyMonthly, DayOfMonth: 15,
			NextDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			Active:   true,
		})

		// A competing tick already advanced the rule.
		ok, err := ruleRepo.AdvanceNextDate(context.Background(), rule.ID, rule.NextDate,
			time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, ok)

		// when
		processed, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		assert.Zero(t, processed, "claimed occurrence must not be materialized again")
		transactions, _ := txRepo.GetAll(context.Background(), 7)
		assert.Empty(t, transactions)
	})

	t.Run("reactivated rule fires once for its stale date without catch-up", func(t *testing.T) {
		processor, ruleRepo, txRepo, _ := setupProcessor(now)
		// Paused in January, reactivated in March with the January date intact.
		rule := storedRule(t, ruleRepo, Rule{
			Uid:       "rule-resumed",
			UserId:    7,
			Kind:      transaction.KindExpense,
			Amount:    money.FromFloat(9.99),
			Category:  "Subscriptions",
			Frequency: FrequencyMonthly, DayOfMonth: 10,
			NextDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			Active:   true,
		})

		// when
		processed, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, processed, "a single occurrence, not one per missed month")

		transactions, _ := txRepo.GetAll(context.Background(), 7)
		require.Len(t, transactions, 1)
		assert.Equal(t, rule.NextDate, transactions[0].Date)

		// The schedule resumes from now, not from the stale date.
		advanced, err := ruleRepo.GetByUid(context.Background(), 7, "rule-resumed")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), advanced.NextDate)
	})

	t.Run("publishes a recorded event for materialized transactions", func(t *testing.T) {
		processor, ruleRepo, _, bus := setupProcessor(now)
		storedRule(t, ruleRepo, Rule{
			Uid:       "rule-event",
			UserId:    7,
			Kind:      transaction.KindExpense,
			Amount:    money.FromFloat(50),
			Category:  "Groceries",
			Frequency: FrequencyWeekly, DayOfWeek: 5,
			NextDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			Active:   true,
		})

		var received []event_bus.TransactionRecorded
		bus.Subscribe(event_bus.TransactionRecordedEvent, func(e event_bus.Event) error {
			received = append(received, e.Data.(event_bus.TransactionRecorded))
			return nil
		})

		// when
		_, err := processor.ProcessDue(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "Groceries", received[0].Category)
		assert.True(t, received[0].FromRule)
		assert.Equal(t, 7, received[0].UserId)
	})
}
