package recurring

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/transaction"
)

// Processor materializes due recurring rules into concrete transactions.
// It is invoked periodically by the application's scheduler loop and can
// also be triggered through the API.
type Processor struct {
	repo   Repo
	txRepo transaction.Repo
	bus    *event_bus.EventBus
	clock  utils.Clock
}

func NewProcessor(repo Repo, txRepo transaction.Repo, bus *event_bus.EventBus, clock utils.Clock) *Processor {
	return &Processor{repo: repo, txRepo: txRepo, bus: bus, clock: clock}
}

// ProcessDue materializes every active rule whose next date is due and
// advances its schedule. Each rule is advanced with a conditional update
// first, so a concurrent tick processing the same rule materializes the
// occurrence at most once. Returns the number of transactions created.
func (p *Processor) ProcessDue(ctx context.Context) (int, error) {
	now := p.clock.Now()

	due, err := p.repo.FindDue(ctx, now)
	if err != nil {
		return 0, err
	}
	log.Debugf("scheduler tick: %d recurring rule(s) due", len(due))

	processed := 0
	for _, rule := range due {
		next, err := NextOccurrence(rule.Frequency, rule.Anchor(), now)
		if err != nil {
			log.Errorf("skipping recurring rule %s: %v", rule.Uid, err)
			continue
		}

		// Claim the occurrence before writing the transaction.
		advanced, err := p.repo.AdvanceNextDate(ctx, rule.ID, rule.NextDate, next)
		if err != nil {
			log.Errorf("failed to advance recurring rule %s: %v", rule.Uid, err)
			continue
		}
		if !advanced {
			log.Debugf("recurring rule %s already claimed by another tick", rule.Uid)
			continue
		}

		tx := transaction.Transaction{
			Uid:          uuid.NewString(),
			Kind:         rule.Kind,
			Amount:       rule.Amount,
			Category:     rule.Category,
			Description:  rule.Description,
			Emoji:        rule.Emoji,
			Date:         rule.NextDate,
			OriginRuleId: rule.ID,
		}
		if _, err := p.txRepo.Store(ctx, rule.UserId, tx); err != nil {
			log.Errorf("failed to materialize transaction for recurring rule %s: %v", rule.Uid, err)
			continue
		}

		p.publishRecorded(ctx, rule, tx)
		processed++
		log.Infof("materialized %s of %s for rule %s (next on %s)",
			tx.Kind, tx.Amount, rule.Uid, next.Format("2006-01-02"))
	}

	return processed, nil
}

func (p *Processor) publishRecorded(ctx context.Context, rule Rule, tx transaction.Transaction) {
	if p.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.TransactionRecordedEvent, event_bus.TransactionRecorded{
		UserId:      rule.UserId,
		Uid:         tx.Uid,
		Kind:        string(tx.Kind),
		AmountCents: tx.Amount.Cents,
		Category:    tx.Category,
		Date:        tx.Date,
		FromRule:    true,
	})
	if err := p.bus.Publish(event); err != nil {
		log.Errorf("failed to publish transaction recorded event: %v", err)
	}
}
