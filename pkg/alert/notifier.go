package alert

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/limit"
	"github.com/aksuite/aksuite/pkg/period"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
)

// Notifier listens for recorded transactions and publishes an alert whenever
// the matching budget limit leaves the ok state. Both manually entered and
// rule-materialized transactions go through the same path.
type Notifier struct {
	limitRepo limit.Repo
	txRepo    transaction.Repo
	userRepo  user.Repo
	publisher Publisher
	clock     utils.Clock
}

func NewNotifier(limitRepo limit.Repo, txRepo transaction.Repo, userRepo user.Repo, publisher Publisher, clock utils.Clock) *Notifier {
	return &Notifier{
		limitRepo: limitRepo,
		txRepo:    txRepo,
		userRepo:  userRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Register subscribes the notifier on the event bus.
func (n *Notifier) Register(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.TransactionRecordedEvent, n.onTransactionRecorded)
}

func (n *Notifier) onTransactionRecorded(event event_bus.Event) error {
	recorded, ok := event.Data.(event_bus.TransactionRecorded)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", event.Data)
	}
	if recorded.Kind != string(transaction.KindExpense) {
		return nil
	}

	ctx := event.Context()

	limits, err := n.limitRepo.GetAll(ctx, recorded.UserId)
	if err != nil {
		return fmt.Errorf("failed to load budget limits: %w", err)
	}
	var matched *limit.BudgetLimit
	for i := range limits {
		if limits[i].Active && limits[i].Category == recorded.Category {
			matched = &limits[i]
			break
		}
	}
	if matched == nil {
		return nil
	}

	weekStart := period.DefaultWeekStart
	if owner, err := n.userRepo.GetUser(ctx, recorded.UserId); err == nil {
		weekStart = owner.Settings.WeekFirstDay
	} else {
		log.Warnf("could not load user %d for alert evaluation, using default week start: %v", recorded.UserId, err)
	}

	transactions, err := n.txRepo.GetAll(ctx, recorded.UserId)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	status, err := limit.Evaluate(*matched, transactions, n.clock.Now(), weekStart)
	if err != nil {
		return fmt.Errorf("failed to evaluate limit %s: %w", matched.Uid, err)
	}
	if status.Status == limit.StatusOk {
		return nil
	}

	return n.publisher.Publish(ctx, Alert{
		LimitUid:        status.Uid,
		Category:        status.Category,
		Status:          string(status.Status),
		CurrentSpending: status.CurrentSpending.Float64(),
		CapAmount:       status.CapAmount.Float64(),
		PercentageUsed:  status.PercentageUsed,
		Timestamp:       time.Now(),
	})
}
