package limit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
)

type Service interface {
	Create(ctx context.Context, limit BudgetLimit) (BudgetLimit, error)
	GetAll(ctx context.Context) ([]BudgetLimit, error)
	Update(ctx context.Context, limit BudgetLimit) (BudgetLimit, error)
	SetActive(ctx context.Context, uid string, active bool) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
	GetStatuses(ctx context.Context) ([]LimitStatus, error)
	GetStatusByUid(ctx context.Context, uid string) (LimitStatus, error)
}

type ServiceImpl struct {
	repo   Repo
	txRepo transaction.Repo
	clock  utils.Clock
}

func NewLimitService(repo Repo, txRepo transaction.Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, txRepo: txRepo, clock: clock}
}

func validateLimit(limit BudgetLimit) error {
	if limit.Category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidLimit)
	}
	if !limit.CapAmount.IsPositive() {
		return fmt.Errorf("%w: cap amount must be positive", ErrInvalidLimit)
	}
	if limit.AlertThresholdPercent < 0 || limit.AlertThresholdPercent > 100 {
		return fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrInvalidLimit)
	}
	if !limit.Period.Valid() {
		return fmt.Errorf("%w: unknown period %q", ErrInvalidLimit, limit.Period)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, limit BudgetLimit) (BudgetLimit, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetLimit{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateLimit(limit); err != nil {
		return BudgetLimit{}, err
	}

	limit.Uid = uuid.NewString()
	limit.Active = true

	id, err := s.repo.Store(ctx, userId, limit)
	if err != nil {
		return BudgetLimit{}, err
	}
	limit.ID = id
	return limit, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]BudgetLimit, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, limit BudgetLimit) (BudgetLimit, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetLimit{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateLimit(limit); err != nil {
		return BudgetLimit{}, err
	}

	existing, err := s.repo.GetByUid(ctx, userId, limit.Uid)
	if err != nil {
		return BudgetLimit{}, err
	}

	updated, err := s.repo.Update(ctx, userId, limit)
	if err != nil {
		return BudgetLimit{}, err
	}
	if !updated {
		log.Warnf("budget limit not updated, probably because it does not exist (%s) or the user (%d) is not the owner", limit.Uid, userId)
		return BudgetLimit{}, ErrLimitNotFound
	}
	limit.ID = existing.ID
	limit.Active = existing.Active
	return limit, nil
}

func (s *ServiceImpl) SetActive(ctx context.Context, uid string, active bool) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SetActive(ctx, userId, uid, active)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, uid)
}

// GetStatuses evaluates every active limit of the current user against the
// user's transactions, using the user's configured first day of the week for
// weekly windows.
func (s *ServiceImpl) GetStatuses(ctx context.Context) ([]LimitStatus, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	limits, err := s.repo.GetAll(ctx, currentUser.Id)
	if err != nil {
		return nil, err
	}
	transactions, err := s.txRepo.GetAll(ctx, currentUser.Id)
	if err != nil {
		return nil, err
	}

	return EvaluateAll(limits, transactions, s.clock.Now(), currentUser.Settings.WeekFirstDay)
}

func (s *ServiceImpl) GetStatusByUid(ctx context.Context, uid string) (LimitStatus, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return LimitStatus{}, fmt.Errorf("failed to get current user: %w", err)
	}

	l, err := s.repo.GetByUid(ctx, currentUser.Id, uid)
	if err != nil {
		return LimitStatus{}, err
	}
	transactions, err := s.txRepo.GetAll(ctx, currentUser.Id)
	if err != nil {
		return LimitStatus{}, err
	}

	return Evaluate(l, transactions, s.clock.Now(), currentUser.Settings.WeekFirstDay)
}
