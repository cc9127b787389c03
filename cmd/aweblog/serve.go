// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aweblog/aweblog/internal/auth"
	authpg "github.com/aweblog/aweblog/internal/auth/postgres"
	"github.com/aweblog/aweblog/internal/blog"
	blogpg "github.com/aweblog/aweblog/internal/blog/postgres"
	"github.com/aweblog/aweblog/internal/logging"
	"github.com/aweblog/aweblog/internal/observability"
	"github.com/aweblog/aweblog/internal/store"
	"github.com/aweblog/aweblog/internal/web"
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	httpAddr    string
	metricsAddr string
	logFormat   string
}

// Default values for serve command flags.
const (
	defaultHTTPAddr    = ":8080"
	defaultMetricsAddr = "127.0.0.1:9100"
	defaultLogFormat   = "json"
)

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the aweblog HTTP server",
		Long: `Start the aweblog HTTP server, which serves the JSON API and
HTML pages, plus a separate metrics/health endpoint.

Required environment variables:
  DATABASE_URL    PostgreSQL connection string
  SESSION_SECRET  key for signing session tokens

Pending migrations are applied on startup unless AWEBLOG_AUTO_MIGRATE=false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg, cmd)
		},
	}

	cmd.Flags().StringVar(&cfg.httpAddr, "http-addr", defaultHTTPAddr, "HTTP listen address")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")

	return cmd
}

// runServe wires the services together and runs until a shutdown signal.
func runServe(ctx context.Context, cfg *serveConfig, cmd *cobra.Command) error {
	if err := setupLogging(cfg.logFormat); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	slog.Info("starting aweblog server",
		"http_addr", cfg.httpAddr,
		"log_format", cfg.logFormat,
	)

	if autoMigrateEnabled() {
		if err := runAutoMigrate(databaseURL); err != nil {
			return fmt.Errorf("failed to run startup migrations: %w", err)
		}
	} else {
		slog.Info("startup migrations disabled")
	}

	pool, err := store.Open(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	slog.Info("database connected")

	users := authpg.NewUserRepository(pool)
	entries := blogpg.NewEntryRepository(pool)

	codec, err := auth.NewSessionTokenCodec(sessionSecret, users, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create session token codec: %w", err)
	}

	authService, err := auth.NewAuthenticationService(users, codec, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create authentication service: %w", err)
	}

	blogService, err := blog.NewService(entries, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create blog service: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured
	var obsServer *observability.Server
	var metrics *observability.Metrics
	if cfg.metricsAddr != "" {
		obsServer = observability.NewServer(cfg.metricsAddr, store.ReadyCheck(pool))
		if _, err = obsServer.Start(); err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		metrics = obsServer.Metrics()
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	webServer, err := web.NewServer(cfg.httpAddr, web.Deps{
		Auth:    authService,
		Tokens:  codec,
		Users:   users,
		Blogs:   blogService,
		Metrics: metrics,
		Logger:  slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	webErrCh, err := webServer.Start()
	if err != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if obsServer != nil {
			_ = obsServer.Stop(shutdownCtx)
		}
		return fmt.Errorf("failed to start web server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cmd.Println("Aweblog server started")
	slog.Info("aweblog ready", "http_addr", webServer.Addr())

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr := <-webErrCh:
		if serveErr != nil {
			slog.Error("web server failed", "error", serveErr)
		}
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := webServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping web server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// AutoMigrator is the subset of store.Migrator the startup migration uses.
type AutoMigrator interface {
	Up() error
	Close() error
}

// Seams for tests.
var (
	newAutoMigrator = func(databaseURL string) (AutoMigrator, error) {
		return store.NewMigrator(databaseURL)
	}
	autoMigrateEnabled = func() bool {
		v := os.Getenv("AWEBLOG_AUTO_MIGRATE")
		return v != "false" && v != "0"
	}
)

// runAutoMigrate applies pending migrations at startup. Set
// AWEBLOG_AUTO_MIGRATE=false to manage the schema with `aweblog migrate`
// instead.
func runAutoMigrate(databaseURL string) error {
	m, err := newAutoMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			slog.Warn("error closing migrator", "error", closeErr)
		}
	}()

	slog.Info("applying startup migrations")
	return m.Up()
}

// setupLogging configures the default slog logger.
func setupLogging(format string) error {
	switch format {
	case "json", "text":
		logging.SetDefault("aweblog", version, format)
		return nil
	default:
		return fmt.Errorf("invalid log format %q (want json or text)", format)
	}
}
