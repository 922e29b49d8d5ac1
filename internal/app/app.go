package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aksuite/aksuite/internal/config"
	"github.com/aksuite/aksuite/internal/database"
)

// Application wires configuration, database, router, scheduler, and server
// lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	deps   *Dependencies
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	deps, err := BuildDependencies(db, cfg)
	if err != nil {
		return nil, err
	}

	SetupMiddleware(r, deps, cfg)
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, deps: deps}, nil
}

// Run starts the HTTP server and the recurring rule scheduler and blocks
// until a termination signal arrives or one of them fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return a.runScheduler(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if a.deps.AlertPublisher != nil {
			a.deps.AlertPublisher.Close()
		}
		return a.srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// runScheduler ticks the recurring rule processor at the configured interval.
// A tick at startup picks up anything that became due while the process was
// down.
func (a *Application) runScheduler(ctx context.Context) error {
	interval := a.cfg.Scheduler.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	log.Infof("Starting recurring rule scheduler (every %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		processed, err := a.deps.RecurringProcessor.ProcessDue(ctx)
		if err != nil {
			log.Errorf("scheduler tick failed: %v", err)
		} else if processed > 0 {
			log.Infof("scheduler materialized %d transaction(s)", processed)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
