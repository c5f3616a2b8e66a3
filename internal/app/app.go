// Package app assembles the database, clients and services shared by the
// HTTP server and the command line tool.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/api"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/database"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
	"github.com/ndewijer/Money-Manager-Backend/internal/scheduler"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

// App owns the long-lived resources of a process.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Publisher events.Publisher
	Services  api.Services
	Logger    *slog.Logger
}

// New opens the database, applies migrations, connects the event
// publisher and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("connected to database", "path", cfg.Database.Path)

	if err := database.Migrate(ctx, db, logging.Component(logger, "migrate")); err != nil {
		db.Close()
		return nil, err
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.Events.Enabled() {
		p, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, logging.Component(logger, "events"))
		if err != nil {
			db.Close()
			return nil, err
		}
		publisher = p
		logger.Info("publishing events", "exchange", cfg.Events.Exchange)
	}

	yahooClient := yahoo.NewFinanceClient(yahoo.WithTimeout(cfg.Market.Timeout))

	return &App{
		Config:    cfg,
		DB:        db,
		Publisher: publisher,
		Services:  NewServices(db, yahooClient, publisher, cfg, logger),
		Logger:    logger,
	}, nil
}

// NewServices builds every service on top of db.
func NewServices(db *sql.DB, yahooClient yahoo.Client, publisher events.Publisher, cfg *config.Config, logger *slog.Logger) api.Services {
	transactionRepo := repository.NewTransactionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	creditCardRepo := repository.NewCreditCardRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	svcLogger := logging.Component(logger, "service")

	return api.Services{
		System:      service.NewSystemService(db),
		Transaction: service.NewTransactionService(transactionRepo, publisher, svcLogger),
		Recurring:   service.NewRecurringService(transactionRepo, publisher, svcLogger, cfg.Scheduler.RecurringHorizon),
		ShortTerm: service.NewShortTermService(
			transactionRepo,
			subscriptionRepo,
			accountRepo,
			creditCardRepo,
			publisher,
			svcLogger,
		),
		Asset: service.NewAssetService(assetRepo, publisher, svcLogger),
		Price: service.NewPriceService(assetRepo, priceRepo, yahooClient, publisher, svcLogger, cfg.Scheduler.SnapshotConcurrency).
			WithBackfillYears(cfg.Scheduler.BackfillYears),
		Market:    service.NewMarketService(yahooClient, svcLogger),
		Analytics: service.NewAnalyticsService(nil),
	}
}

// Jobs returns the scheduled background jobs.
func (a *App) Jobs() []scheduler.Job {
	return []scheduler.Job{
		{
			Name: "price-snapshot",
			Spec: a.Config.Scheduler.SnapshotSchedule,
			Run: func(ctx context.Context) error {
				_, err := a.Services.Price.Snapshot(ctx)
				return err
			},
		},
		{
			Name: "recurring-transactions",
			Spec: a.Config.Scheduler.RecurringSchedule,
			Run: func(ctx context.Context) error {
				_, err := a.Services.Recurring.Generate(ctx, time.Time{}, time.Time{})
				return err
			},
		},
	}
}

// Close releases the publisher and the database.
func (a *App) Close() error {
	return errors.Join(a.Publisher.Close(), a.DB.Close())
}
