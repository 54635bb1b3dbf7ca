/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the finiquito / liquidación calculator server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Load the legal table (embedded default or LEGAL_TABLE_PATH)
  3. Open the result store (memory, sqlite or redis)
  4. Create API handler and router
  5. Start the expiry sweeper
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port         HTTP server port (default: 8080)
  -store        Result store: memory, sqlite, redis (default: memory)
  -db           SQLite database path (default: results.db)
  -redis        Redis URL, e.g. redis://localhost:6379/0
  -legal-table  YAML legal table replacing the embedded one

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the sweeper
  4. Close the store
  5. Exit

EXAMPLES:
  ./server -store=sqlite -db="./data/results.db"
  STORE_DRIVER=redis REDIS_URL=redis://localhost:6379/0 ./server

SEE ALSO:
  - config/config.go: Every setting and its environment variable
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/severance-engine/api"
	"github.com/warp/severance-engine/config"
	"github.com/warp/severance-engine/lft"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
	"github.com/warp/severance-engine/store/redis"
	"github.com/warp/severance-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(2)
	}

	logger := api.NewLogger(os.Stdout, cfg.SlogLevel(),
		slog.String("app", "severance-engine"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	table := lft.Default()
	if cfg.LegalTablePath != "" {
		t, err := lft.LoadFile(cfg.LegalTablePath)
		if err != nil {
			return fmt.Errorf("load legal table: %w", err)
		}
		table = t
	}
	logger.Info("legal table loaded",
		"dataYear", table.DataYear(),
		"minimumDailyWage", table.MinimumDailyWage().String(),
	)

	results, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer results.Close()
	logger.Info("result store ready", "driver", cfg.Store.Driver, "ttl", cfg.Store.ResultTTL.String())

	calc := severance.NewCalculator(table, logger)
	handler := api.NewHandler(calc, results, cfg.Store.ResultTTL, api.WithLogger(logger))
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestLogger:  logger,
		LogLevel:       cfg.SlogLevel(),
	})

	sweeper := api.NewExpirySweeper(results, cfg.Store.SweepInterval, logger)
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config) (store.ResultStore, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := redis.Connect(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return redis.New(client, redis.DefaultPrefix), nil
	default:
		return store.NewMemory(), nil
	}
}
