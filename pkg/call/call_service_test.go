package call

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/user"
)

var (
	now     = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	userCtx = user.WithUser(context.Background(), user.User{Id: 1})
)

func setupService() (*ServiceImpl, *StubRepo) {
	repo := NewStubRepo()
	service := NewCallService(repo, &utils.MockClock{FixedNow: now})
	return service, repo
}

func sampleCall() Call {
	return Call{
		CallerName: "Mario Rossi",
		Company:    "Acme",
		Phone:      "+39 123 456 7890",
		Email:      "mario@example.com",
		Type:       TypeSupport,
		Priority:   PriorityHigh,
		Notes:      "Printer offline since Monday",
	}
}

func TestCreateCall(t *testing.T) {
	t.Run("assigns uid, pending status, and today's date", func(t *testing.T) {
		service, _ := setupService()

		created, err := service.Create(userCtx, sampleCall())
		require.NoError(t, err)

		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, StatusPending, created.Status)
		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), created.Date)
	})

	t.Run("drops follow-up date when follow-up is not requested", func(t *testing.T) {
		service, _ := setupService()
		c := sampleCall()
		c.FollowUp = false
		c.FollowUpDate = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

		created, err := service.Create(userCtx, c)
		require.NoError(t, err)

		assert.True(t, created.FollowUpDate.IsZero())
	})

	t.Run("keeps follow-up date when follow-up is requested", func(t *testing.T) {
		service, _ := setupService()
		c := sampleCall()
		c.FollowUp = true
		c.FollowUpDate = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

		created, err := service.Create(userCtx, c)
		require.NoError(t, err)

		assert.Equal(t, c.FollowUpDate, created.FollowUpDate)
	})

	t.Run("rejects invalid calls", func(t *testing.T) {
		service, _ := setupService()

		tests := []struct {
			name   string
			mutate func(*Call)
		}{
			{"missing caller name", func(c *Call) { c.CallerName = "" }},
			{"missing phone", func(c *Call) { c.Phone = "" }},
			{"missing notes", func(c *Call) { c.Notes = "" }},
			{"unknown type", func(c *Call) { c.Type = "fax" }},
			{"unknown priority", func(c *Call) { c.Priority = "asap" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := sampleCall()
				tt.mutate(&c)

				_, err := service.Create(userCtx, c)
				assert.ErrorIs(t, err, ErrInvalidCall)
			})
		}
	})

	t.Run("fails without a user in context", func(t *testing.T) {
		service, _ := setupService()

		_, err := service.Create(context.Background(), sampleCall())
		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestGetAllCalls_OnlyOwn(t *testing.T) {
	service, repo := setupService()

	mine := sampleCall()
	mine.Uid = "call-mine"
	_, err := repo.Store(userCtx, 1, mine)
	require.NoError(t, err)

	other := sampleCall()
	other.Uid = "call-other"
	_, err = repo.Store(userCtx, 2, other)
	require.NoError(t, err)

	calls, err := service.GetAll(userCtx)
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, "call-mine", calls[0].Uid)
}

func TestUpdateCallStatus(t *testing.T) {
	t.Run("moves a pending call to completed", func(t *testing.T) {
		service, repo := setupService()
		created, err := service.Create(userCtx, sampleCall())
		require.NoError(t, err)

		ok, err := service.UpdateStatus(userCtx, created.Uid, StatusCompleted)
		require.NoError(t, err)
		assert.True(t, ok)

		calls, err := repo.GetAll(userCtx, 1)
		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.Equal(t, StatusCompleted, calls[0].Status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		service, _ := setupService()

		_, err := service.UpdateStatus(userCtx, "call-1", "archived")
		assert.ErrorIs(t, err, ErrInvalidCall)
	})

	t.Run("reports false for unknown calls", func(t *testing.T) {
		service, _ := setupService()

		ok, err := service.UpdateStatus(userCtx, "missing", StatusCancelled)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteCall(t *testing.T) {
	service, repo := setupService()
	created, err := service.Create(userCtx, sampleCall())
	require.NoError(t, err)

	ok, err := service.Delete(userCtx, created.Uid)
	require.NoError(t, err)
	assert.True(t, ok)

	calls, err := repo.GetAll(userCtx, 1)
	require.NoError(t, err)
	assert.Empty(t, calls)
}
