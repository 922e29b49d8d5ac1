package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/user"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var repoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewTransactionService(repoStub, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func validExpense() Transaction {
	return Transaction{
		Kind:     KindExpense,
		Amount:   money.FromFloat(42.50),
		Category: "Groceries",
		Date:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a transaction successfully", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, validExpense())

		// then
		assert.NoError(t, err)
		assert.NotEmpty(t, created.Uid)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(4250), created.Amount.Cents)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tx := validExpense()
		tx.Amount = money.FromCents(0)

		// when
		_, err := service.Create(ctx, tx)

		// then
		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tx := validExpense()
		tx.Kind = Kind("transfer")

		// when
		_, err := service.Create(ctx, tx)

		// then
		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})

	t.Run("should reject empty category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tx := validExpense()
		tx.Category = ""

		// when
		_, err := service.Create(ctx, tx)

		// then
		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})

	t.Run("should publish a recorded event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		bus := event_bus.NewEventBus()
		service = NewTransactionService(repoStub, bus)

		var received []event_bus.TransactionRecorded
		bus.Subscribe(event_bus.TransactionRecordedEvent, func(e event_bus.Event) error {
			received = append(received, e.Data.(event_bus.TransactionRecorded))
			return nil
		})

		// when
		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		// then
		require.Len(t, received, 1)
		assert.Equal(t, created.Uid, received[0].Uid)
		assert.Equal(t, "Groceries", received[0].Category)
		assert.Equal(t, int64(4250), received[0].AmountCents)
		assert.False(t, received[0].FromRule)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), validExpense())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_FindByDateRange(t *testing.T) {
	t.Run("should only return transactions inside the range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		inRange := validExpense()
		_, err := service.Create(ctx, inRange)
		require.NoError(t, err)

		outOfRange := validExpense()
		outOfRange.Date = time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
		_, err = service.Create(ctx, outOfRange)
		require.NoError(t, err)

		// when
		found, err := service.FindByDateRange(ctx,
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		)

		// then
		assert.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should report false for unknown transaction", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tx := validExpense()
		tx.Uid = "missing"

		// when
		ok, err := service.Update(ctx, tx)

		// then
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should update an existing transaction", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validExpense())
		require.NoError(t, err)

		created.Amount = money.FromFloat(99.90)

		// when
		ok, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}
