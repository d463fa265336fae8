package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/pocket_ledger/internal/amqp"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/core/services"
	"github.com/SscSPs/pocket_ledger/internal/dispatch"
	"github.com/SscSPs/pocket_ledger/internal/handlers"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
	"github.com/SscSPs/pocket_ledger/internal/platform/config"
	"github.com/SscSPs/pocket_ledger/internal/platform/logging"
	"github.com/SscSPs/pocket_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pocket_ledger/internal/repositories/memory"
	"github.com/SscSPs/pocket_ledger/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Pocket Ledger API
// @version 1.0
// @description Personal finance ledger: assets, transfers, bills, budgets and monthly aggregates.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.IsProduction)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	newDispatcher, closeDispatcher, err := openDispatcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDispatcher()

	serviceContainer := services.NewServiceContainer(repos, newDispatcher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		return err
	}

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(),
		middleware.RateLimit(limiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.New().Provider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(dbPool)
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// openDispatcher picks the broker when AMQP_URL is set and the in-process
// queue otherwise. The returned factory receives the aggregate service.
func openDispatcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (func(portssvc.AggregateApplier) portssvc.AggregateDispatcher, func(), error) {
	if cfg.UseAMQP() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", slog.String("error", err.Error()))
			return nil, nil, err
		}
		logger.Info("Aggregate tasks are published to the broker", slog.String("queue", cfg.AMQPQueue))
		publisher := amqp.NewPublisher(client, logger)
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing AMQP client", slog.String("error", err.Error()))
			}
		}
		return func(portssvc.AggregateApplier) portssvc.AggregateDispatcher { return publisher }, closeFn, nil
	}

	var queue *dispatch.Queue
	newDispatcher := func(applier portssvc.AggregateApplier) portssvc.AggregateDispatcher {
		queue = dispatch.NewQueue(applier,
			dispatch.WithWorkers(cfg.AggregateWorkers),
			dispatch.WithCapacity(cfg.AggregateQueueSize),
			dispatch.WithLogger(logger),
		)
		if err := queue.Start(ctx); err != nil {
			logger.Error("Failed to start aggregate queue", slog.String("error", err.Error()))
		}
		return queue
	}
	closeFn := func() {
		if queue == nil {
			return
		}
		drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := queue.Close(drainCtx); err != nil {
			logger.Error("Aggregate queue did not drain", slog.String("error", err.Error()))
		}
	}
	return newDispatcher, closeFn, nil
}
