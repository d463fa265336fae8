// Command ledger_worker consumes monthly aggregate tasks from the broker and
// applies them to the shared postgres store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/pocket_ledger/internal/amqp"
	"github.com/SscSPs/pocket_ledger/internal/core/services"
	"github.com/SscSPs/pocket_ledger/internal/platform/config"
	"github.com/SscSPs/pocket_ledger/internal/platform/logging"
	"github.com/SscSPs/pocket_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pocket_ledger/pkg/database"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Worker exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.IsProduction)
	slog.SetDefault(logger)
	logger.Info("Starting ledger_worker")

	if !cfg.UseAMQP() {
		return errors.New("AMQP_URL is required for the worker")
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("the worker needs the postgres store, got %q", cfg.Storage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	aggregateService := services.NewAggregateService(repos.AggregateRepo, repos.AssetRepo)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to initialize AMQP client: %w", err)
	}
	defer func() {
		if err := amqpClient.Close(); err != nil {
			logger.Error("Error closing AMQP client", slog.String("error", err.Error()))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeTasks(gctx, aggregateService.Apply)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("message consumption failed: %w", err)
	}
	logger.Info("Worker shutdown complete")
	return nil
}
