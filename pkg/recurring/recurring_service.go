package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/user"
)

var ErrInvalidRule = fmt.Errorf("invalid recurring rule")

type Service interface {
	Create(ctx context.Context, rule Rule) (Rule, error)
	GetAll(ctx context.Context) ([]Rule, error)
	Update(ctx context.Context, rule Rule) (Rule, error)
	SetActive(ctx context.Context, uid string, active bool) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewRecurringService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func validateRule(rule Rule) error {
	if !rule.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, rule.Kind)
	}
	if !rule.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRule)
	}
	if rule.Category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidRule)
	}
	if !rule.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, rule.Frequency)
	}
	return nil
}

// Create validates the rule and seeds its first next date from the current
// time before persisting.
func (s *ServiceImpl) Create(ctx context.Context, rule Rule) (Rule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Rule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateRule(rule); err != nil {
		return Rule{}, err
	}

	nextDate, err := NextOccurrence(rule.Frequency, rule.Anchor(), s.clock.Now())
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	rule.NextDate = nextDate
	rule.Uid = uuid.NewString()
	rule.Active = true
	rule.UserId = userId

	id, err := s.repo.Store(ctx, userId, rule)
	if err != nil {
		return Rule{}, err
	}
	rule.ID = id
	return rule, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Rule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

// Update edits a rule's template fields. When the frequency or anchor
// changed, the next date is recomputed from the current time; otherwise the
// stored schedule is kept as is.
func (s *ServiceImpl) Update(ctx context.Context, rule Rule) (Rule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Rule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateRule(rule); err != nil {
		return Rule{}, err
	}

	existing, err := s.repo.GetByUid(ctx, userId, rule.Uid)
	if err != nil {
		return Rule{}, err
	}

	rule.NextDate = existing.NextDate
	if rule.Frequency != existing.Frequency || rule.Anchor() != existing.Anchor() {
		nextDate, err := NextOccurrence(rule.Frequency, rule.Anchor(), s.clock.Now())
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		rule.NextDate = nextDate
	}

	updated, err := s.repo.Update(ctx, userId, rule)
	if err != nil {
		return Rule{}, err
	}
	if !updated {
		log.Warnf("recurring rule not updated, probably because it does not exist (%s) or the user (%d) is not the owner", rule.Uid, userId)
		return Rule{}, ErrRuleNotFound
	}
	rule.ID = existing.ID
	rule.Active = existing.Active
	return rule, nil
}

// SetActive toggles a rule without touching its next date. A rule reactivated
// after being paused keeps whatever next date it last held, which may be in
// the past; the next scheduler tick materializes a single occurrence for it
// and advances from there (no catch-up for occurrences missed while paused).
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
