package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/pkg/user"
)

var ErrInvalidTransaction = fmt.Errorf("invalid transaction")

type Service interface {
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error)
	Update(ctx context.Context, tx Transaction) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewTransactionService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func validate(tx Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransaction, tx.Kind)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if tx.Category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidTransaction)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date must be set", ErrInvalidTransaction)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}

	tx.Uid = uuid.NewString()
	id, err := s.repo.Store(ctx, userId, tx)
	if err != nil {
		return Transaction{}, err
	}
	tx.ID = id

	publishRecorded(ctx, s.bus, userId, tx)
	return tx, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindByDateRange(ctx, userId, from, to)
}

func (s *ServiceImpl) Update(ctx context.Context, tx Transaction) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(tx); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, tx)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("transaction not updated, probably because it does not exist (%s) or the user (%d) is not the owner", tx.Uid, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, uid)
}

// publishRecorded notifies subscribers (e.g. limit alerting) about a stored
// transaction. Failures are logged, never propagated: alerting must not fail
// the originating write.
func publishRecorded(ctx context.Context, bus *event_bus.EventBus, userId int, tx Transaction) {
	if bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.TransactionRecordedEvent, event_bus.TransactionRecorded{
		UserId:      userId,
		Uid:         tx.Uid,
		Kind:        string(tx.Kind),
		AmountCents: tx.Amount.Cents,
		Category:    tx.Category,
		Date:        tx.Date,
		FromRule:    tx.OriginRuleId != 0,
	})
	if err := bus.Publish(event); err != nil {
		log.Errorf("failed to publish transaction recorded event: %v", err)
	}
}
