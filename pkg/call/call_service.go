package call

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/period"
	"github.com/aksuite/aksuite/pkg/user"
)

var ErrInvalidCall = fmt.Errorf("invalid call")

type Service interface {
	Create(ctx context.Context, c Call) (Call, error)
	GetAll(ctx context.Context) ([]Call, error)
	UpdateStatus(ctx context.Context, uid string, status Status) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewCallService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func validate(c Call) error {
	if c.CallerName == "" {
		return fmt.Errorf("%w: caller name must not be empty", ErrInvalidCall)
	}
	if c.Phone == "" {
		return fmt.Errorf("%w: phone must not be empty", ErrInvalidCall)
	}
	if c.Notes == "" {
		return fmt.Errorf("%w: notes must not be empty", ErrInvalidCall)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCall, c.Type)
	}
	if !c.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidCall, c.Priority)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, c Call) (Call, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Call{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(c); err != nil {
		return Call{}, err
	}

	c.Uid = uuid.NewString()
	c.Status = StatusPending
	c.Date = period.DateOf(s.clock.Now())
	// A follow-up date without the flag is dropped.
	if !c.FollowUp {
		c.FollowUpDate = time.Time{}
	}

	id, err := s.repo.Store(ctx, userId, c)
	if err != nil {
		return Call{}, err
	}
	c.ID = id
	return c, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Call, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, uid string, status Status) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidCall, status)
	}
	return s.repo.UpdateStatus(ctx, userId, uid, status)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, uid)
}
