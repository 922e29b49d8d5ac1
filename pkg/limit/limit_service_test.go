package limit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
)

var testUser = user.User{
	Id:       1,
	Uid:      "user-1",
	Username: "anna",
	Settings: user.Settings{WeekFirstDay: time.Monday, Currency: "EUR"},
}

var userCtx = user.WithUser(context.Background(), testUser)

func setupService() (*ServiceImpl, *StubRepo, *transaction.StubRepo) {
	repo := NewStubRepo()
	txRepo := transaction.NewStubRepo()
	clock := &utils.MockClock{FixedNow: now}
	return NewLimitService(repo, txRepo, clock), repo, txRepo
}

func TestLimitService_Create(t *testing.T) {
	t.Run("creates an active limit with a generated id", func(t *testing.T) {
		service, _, _ := setupService()

		// when
		created, err := service.Create(userCtx, groceriesLimit())

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.Uid)
		assert.NotZero(t, created.ID)
		assert.True(t, created.Active)
	})

	t.Run("rejects a second limit for the same category", func(t *testing.T) {
		service, _, _ := setupService()
		_, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)

		// when
		_, err = service.Create(userCtx, groceriesLimit())

		// then
		assert.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("rejects invalid limits", func(t *testing.T) {
		service, _, _ := setupService()

		noCategory := groceriesLimit()
		noCategory.Category = ""
		_, err := service.Create(userCtx, noCategory)
		assert.ErrorIs(t, err, ErrInvalidLimit)

		zeroCap := groceriesLimit()
		zeroCap.CapAmount = money.FromCents(0)
		_, err = service.Create(userCtx, zeroCap)
		assert.ErrorIs(t, err, ErrInvalidLimit)

		badThreshold := groceriesLimit()
		badThreshold.AlertThresholdPercent = 150
		_, err = service.Create(userCtx, badThreshold)
		assert.ErrorIs(t, err, ErrInvalidLimit)

		badPeriod := groceriesLimit()
		badPeriod.Period = period.Period("fortnightly")
		_, err = service.Create(userCtx, badPeriod)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("fails without a user in context", func(t *testing.T) {
		service, _, _ := setupService()

		_, err := service.Create(context.Background(), groceriesLimit())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestLimitService_Update(t *testing.T) {
	t.Run("updates an existing limit keeping its active flag", func(t *testing.T) {
		service, _, _ := setupService()
		created, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)
		_, err = service.SetActive(userCtx, created.Uid, false)
		require.NoError(t, err)

		changed := created
		changed.CapAmount = money.FromFloat(250)

		// when
		updated, err := service.Update(userCtx, changed)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.FromFloat(250), updated.CapAmount)
		assert.False(t, updated.Active, "update must not reactivate a paused limit")
	})

	t.Run("returns not found for an unknown limit", func(t *testing.T) {
		service, _, _ := setupService()

		unknown := groceriesLimit()
		unknown.Uid = "no-such-limit"
		_, err := service.Update(userCtx, unknown)

		assert.ErrorIs(t, err, ErrLimitNotFound)
	})
}

func TestLimitService_GetStatuses(t *testing.T) {
	t.Run("evaluates active limits against the user's transactions", func(t *testing.T) {
		service, _, txRepo := setupService()
		created, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)

		_, err = txRepo.Store(userCtx, testUser.Id, expense(85, "Groceries", now))
		require.NoError(t, err)

		// when
		statuses, err := service.GetStatuses(userCtx)

		// then
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, created.Uid, statuses[0].Uid)
		assert.Equal(t, money.FromFloat(85), statuses[0].CurrentSpending)
		assert.Equal(t, StatusWarning, statuses[0].Status)
	})

	t.Run("leaves paused limits out", func(t *testing.T) {
		service, _, _ := setupService()
		created, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)
		_, err = service.SetActive(userCtx, created.Uid, false)
		require.NoError(t, err)

		// when
		statuses, err := service.GetStatuses(userCtx)

		// then
		require.NoError(t, err)
		assert.Empty(t, statuses)
	})

	t.Run("ignores other users' transactions", func(t *testing.T) {
		service, _, txRepo := setupService()
		_, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)

		_, err = txRepo.Store(userCtx, 99, expense(500, "Groceries", now))
		require.NoError(t, err)

		// when
		statuses, err := service.GetStatuses(userCtx)

		// then
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Zero(t, statuses[0].CurrentSpending.Cents)
		assert.Equal(t, StatusOk, statuses[0].Status)
	})
}

func TestLimitService_GetStatusByUid(t *testing.T) {
	t.Run("evaluates a single limit even when paused", func(t *testing.T) {
		service, _, txRepo := setupService()
		created, err := service.Create(userCtx, groceriesLimit())
		require.NoError(t, err)
		_, err = service.SetActive(userCtx, created.Uid, false)
		require.NoError(t, err)

		_, err = txRepo.Store(userCtx, testUser.Id, expense(120, "Groceries", now))
		require.NoError(t, err)

		// when
		status, err := service.GetStatusByUid(userCtx, created.Uid)

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusExceeded, status.Status)
	})

	t.Run("returns not found for an unknown limit", func(t *testing.T) {
		service, _, _ := setupService()

		_, err := service.GetStatusByUid(userCtx, "no-such-limit")

		assert.ErrorIs(t, err, ErrLimitNotFound)
	})
}
