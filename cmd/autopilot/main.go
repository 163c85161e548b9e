package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adspro/autopilot/adapter/cli"
	"github.com/adspro/autopilot/adapter/cli/optimization"
	"github.com/adspro/autopilot/adapter/cli/rule"
	"github.com/adspro/autopilot/internal/app"
	"github.com/adspro/autopilot/pkg/config"
	"github.com/google/uuid"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			// In development, allow the CLI to run without a database
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		orgID, err := uuid.Parse(cfg.OrganizationID)
		if err != nil {
			logger.Error("invalid AUTOPILOT_ORG_ID", "error", err)
			os.Exit(1)
		}
		cliApp = cli.NewApp(container.Service, orgID)
	}

	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(rule.Cmd)
	cli.AddCommand(optimization.Cmd)

	cli.Execute()
}
