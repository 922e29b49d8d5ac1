package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/internal/config"
	"github.com/aksuite/aksuite/internal/event_bus"
	"github.com/aksuite/aksuite/internal/utils"
	"github.com/aksuite/aksuite/pkg/alert"
	"github.com/aksuite/aksuite/pkg/call"
	"github.com/aksuite/aksuite/pkg/limit"
	"github.com/aksuite/aksuite/pkg/recurring"
	"github.com/aksuite/aksuite/pkg/stats"
	"github.com/aksuite/aksuite/pkg/transaction"
	"github.com/aksuite/aksuite/pkg/user"
	"github.com/aksuite/aksuite/pkg/vault"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	RecurringRepo      recurring.Repo
	RecurringService   recurring.Service
	RecurringProcessor *recurring.Processor
	RecurringHandler   *recurring.Handler

	LimitRepo    limit.Repo
	LimitService limit.Service
	LimitHandler *limit.Handler

	VaultService vault.Service
	VaultHandler *vault.Handler

	CallService call.Service
	CallHandler *call.Handler

	StatsService     stats.StatsService
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	AlertPublisher alert.Publisher
	AlertNotifier  *alert.Notifier
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	userRepo := user.NewUserRepo(db)
	deps.UserService = user.NewUserService(userRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.RecurringRepo = recurring.NewRecurringRepo(db)
	deps.RecurringService = recurring.NewRecurringService(deps.RecurringRepo, deps.Clock)
	deps.RecurringProcessor = recurring.NewProcessor(deps.RecurringRepo, deps.TransactionRepo, deps.EventBus, deps.Clock)
	deps.RecurringHandler = recurring.NewHandler(deps.RecurringService, deps.RecurringProcessor)

	deps.LimitRepo = limit.NewLimitRepo(db)
	deps.LimitService = limit.NewLimitService(deps.LimitRepo, deps.TransactionRepo, deps.Clock)
	deps.LimitHandler = limit.NewHandler(deps.LimitService)

	cipher, err := vault.NewCipher(cfg.Vault.Secret)
	if err != nil {
		return nil, err
	}
	deps.VaultService = vault.NewVaultService(vault.NewVaultRepo(db), cipher)
	deps.VaultHandler = vault.NewHandler(deps.VaultService)

	deps.CallService = call.NewCallService(call.NewCallRepo(db), deps.Clock)
	deps.CallHandler = call.NewHandler(deps.CallService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.TransactionRepo)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	if cfg.Alerts.Enabled() {
		publisher, err := alert.NewAMQPPublisher(cfg.Alerts.AmqpUrl, cfg.Alerts.Exchange, cfg.Alerts.Queue)
		if err != nil {
			return nil, err
		}
		deps.AlertPublisher = publisher
		deps.AlertNotifier = alert.NewNotifier(deps.LimitRepo, deps.TransactionRepo, userRepo, publisher, deps.Clock)
		deps.AlertNotifier.Register(deps.EventBus)
		log.Infof("Budget alerts enabled, publishing to queue %s", cfg.Alerts.Queue)
	} else {
		log.Info("Budget alerts disabled, no AMQP broker configured")
	}

	return deps, nil
}
