// Package app wires the application together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/adspro/autopilot/internal/automation/application"
	"github.com/adspro/autopilot/internal/automation/application/services"
	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/automation/infrastructure/persistence"
	queueinfra "github.com/adspro/autopilot/internal/automation/infrastructure/queue"
	"github.com/adspro/autopilot/internal/observability"
	"github.com/adspro/autopilot/internal/platform/ai"
	"github.com/adspro/autopilot/internal/platform/campaigns"
	"github.com/adspro/autopilot/internal/platform/notify"
	"github.com/adspro/autopilot/internal/shared/infrastructure/database"
	"github.com/adspro/autopilot/internal/shared/infrastructure/migrations"
	"github.com/adspro/autopilot/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database (one of the two is set, per DATABASE_DRIVER)
	SQLiteDB *sql.DB
	PGPool   *pgxpool.Pool

	RedisClient *redis.Client

	Registry *prometheus.Registry
	Metrics  *observability.EngineMetrics

	RuleRepo         domain.RuleRepository
	ExecutionRepo    domain.ExecutionRepository
	OptimizationRepo domain.OptimizationRepository

	Controller campaigns.Controller
	Dispatcher notify.Dispatcher
	Optimizer  ai.Service

	Executor *services.Executor
	Queue    services.Queue
	Worker   *services.QueueWorker
	Service  *application.Service
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	c.Metrics = observability.NewEngineMetrics(c.Registry)

	if err := c.initDatabase(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.initQueue(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}
	c.initCollaborators(cfg)

	c.Executor = services.NewExecutor(c.RuleRepo, c.ExecutionRepo, logger, c.Metrics)
	services.RegisterStandardHandlers(c.Executor, c.Controller, c.Dispatcher, c.Optimizer, c.OptimizationRepo, logger)

	c.Worker = services.NewQueueWorker(c.Queue, c.Executor, logger, c.Metrics)
	c.Service = application.NewService(c.RuleRepo, c.ExecutionRepo, c.OptimizationRepo, c.Executor, c.Queue, c.Metrics)

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context, cfg *config.Config) error {
	switch cfg.DatabaseDriver {
	case "sqlite", "":
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLite(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.RuleRepo = persistence.NewSQLiteRuleRepository(db)
		c.ExecutionRepo = persistence.NewSQLiteExecutionRepository(db)
		c.OptimizationRepo = persistence.NewSQLiteOptimizationRepository(db)

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.PGPool = pool
		c.RuleRepo = persistence.NewPostgresRuleRepository(pool)
		c.ExecutionRepo = persistence.NewPostgresExecutionRepository(pool)
		c.OptimizationRepo = persistence.NewPostgresOptimizationRepository(pool)

	default:
		return fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
	return nil
}

func (c *Container) initQueue(ctx context.Context, cfg *config.Config) error {
	switch cfg.QueueBackend {
	case "memory", "":
		c.Queue = queueinfra.NewMemoryQueue(cfg.QueueCapacity)

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = client
		c.Queue = queueinfra.NewRedisQueue(client, cfg.RedisQueueKey)

	default:
		return fmt.Errorf("unknown queue backend %q", cfg.QueueBackend)
	}
	return nil
}

func (c *Container) initCollaborators(cfg *config.Config) {
	if cfg.CampaignAPIBaseURL != "" {
		c.Controller = campaigns.NewHTTPController(campaigns.HTTPControllerConfig{
			BaseURL: cfg.CampaignAPIBaseURL,
			APIKey:  cfg.CampaignAPIKey,
			Timeout: cfg.CampaignAPITimeout,
		}, c.Logger)
	} else {
		c.Logger.Warn("campaign API not configured, using log-only controller")
		c.Controller = campaigns.NewLogController(c.Logger)
	}

	if cfg.RabbitMQURL != "" && !cfg.IsDevelopment() {
		dispatcher, err := notify.NewRabbitMQDispatcher(cfg.RabbitMQURL, c.Logger)
		if err != nil {
			c.Logger.Warn("rabbitmq unavailable, notifications will be logged only", slog.Any("error", err))
			c.Dispatcher = notify.NewNoopDispatcher(c.Logger)
		} else {
			c.Dispatcher = dispatcher
		}
	} else {
		c.Dispatcher = notify.NewNoopDispatcher(c.Logger)
	}

	if cfg.AIServiceURL != "" {
		c.Optimizer = ai.NewHTTPClient(cfg.AIServiceURL, cfg.AIServiceAPIKey, cfg.CampaignAPITimeout)
	} else {
		c.Optimizer = ai.NewLocalStub(c.Logger)
	}
}

// Close releases all resources held by the container.
func (c *Container) Close() error {
	var firstErr error

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Dispatcher != nil {
		if err := c.Dispatcher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
	return firstErr
}
