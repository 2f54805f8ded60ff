package main

import (
	"context"
	"database/sql"
	"fmt"

	"dummy-data/internal/adapters/journal"
	"dummy-data/internal/adapters/reaction"
	"dummy-data/internal/app/usecases"
	"dummy-data/internal/config"
	infrahttp "dummy-data/internal/infra/http"
	"dummy-data/internal/infra/mysql"
	"dummy-data/internal/infra/sqlite"
	"dummy-data/internal/logging"
	"dummy-data/internal/metrics"

	"go.uber.org/zap"
)

// app is everything one run of the command needs.
type app struct {
	cfg     *config.Config
	logger  logging.LoggerService
	client  *reaction.Client
	service usecases.DummyDataService
	journal *journal.SQLStore
	metrics *metrics.Metrics
}

func bootstrap(ctx context.Context, flags *rootFlags, interactive bool) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	httpClient := infrahttp.NewClient(cfg.API.Timeout)
	telegram := logging.NewTelegram(cfg.TelegramBot, httpClient)
	logger, err := logging.NewLogger(cfg.Log, telegram, interactive)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		logger.LogWarning(w)
	}

	client, err := reaction.NewClient(cfg.API, httpClient)
	if err != nil {
		return nil, err
	}
	logger.Log("dummy-data started", zap.String("endpoint", client.Endpoint()), zap.String("journal", cfg.Journal.Driver))

	a := &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: metrics.New(),
	}

	opts := []usecases.Option{usecases.WithMetrics(a.metrics)}
	if cfg.Screen.SingleFlight {
		opts = append(opts, usecases.WithSingleFlight())
	}
	store, err := openJournal(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store != nil {
		a.journal = store
		opts = append(opts, usecases.WithJournal(store))
	}
	a.service = usecases.NewDummyData(client, logger, opts...)
	return a, nil
}

func openJournal(ctx context.Context, cfg *config.Config) (*journal.SQLStore, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Journal.Driver {
	case config.JournalSqlite:
		db, err = sqlite.New(cfg.Journal.DSN)
	case config.JournalMysql:
		db, err = mysql.New(cfg.Mysql)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	store, err := journal.NewSQLStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// shopReference is the configured opaque shop id, or the API's primary shop
// when none is configured.
func (a *app) shopReference(ctx context.Context) (string, error) {
	if a.cfg.Shop.OpaqueID != "" {
		return a.cfg.Shop.OpaqueID, nil
	}
	opaque, err := a.client.PrimaryShopID(ctx)
	if err != nil {
		return "", fmt.Errorf("primary shop lookup: %w", err)
	}
	a.logger.Log("using primary shop", zap.String("opaque_id", opaque))
	return opaque, nil
}

func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.LogError("journal close", err)
		}
	}
	_ = a.logger.Sync()
}
