// Package main - Entry point for the buildaide estimation server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"buildaide/adapters/ratefile"
	"buildaide/api"
	"buildaide/core/costengine"
	"buildaide/core/engine"
	"buildaide/db/cache"
	"buildaide/db/expense"
	"buildaide/internal/config"
	"buildaide/internal/logging"
	"buildaide/internal/metrics"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config.yaml")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "buildaide server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()
	logger := logging.Named("server")

	tables, err := ratefile.LoadTables(cfg.Pricing.RatesFile)
	if err != nil {
		return fmt.Errorf("failed to load rate tables: %w", err)
	}
	if cfg.Pricing.RatesFile != "" {
		logger.Info("rate overrides applied", zap.String("file", cfg.Pricing.RatesFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	opts := []engine.Option{
		engine.WithMetrics(m),
		engine.WithLogger(logging.Named("engine")),
	}

	if cfg.Cache.Enabled {
		rc := cache.NewRedisCache(cache.NewRedisClient(cfg.Cache))
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			// The cache is optional; estimates still work without it
			logger.Warn("estimate cache unavailable", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		}
		opts = append(opts, engine.WithCache(rc, cfg.Cache.TTL()))
	}

	expenses, closeStore, err := openExpenses(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	calc := costengine.NewCalculator(tables, costengine.WithLogger(logging.Named("costengine")))
	svc := engine.NewService(calc, opts...)
	apiServer := api.NewServer(version, svc, expenses, logging.Named("api"))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiServer,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("buildaide server starting",
			zap.String("version", version),
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("cache", cfg.Cache.Enabled),
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openExpenses builds the configured expense repository
func openExpenses(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (expense.Repository, func(), error) {
	switch cfg.Driver {
	case "postgres":
		db, err := expense.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
		}
		if err := expense.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("expense ledger using postgres", zap.String("host", cfg.Postgres.Host), zap.String("database", cfg.Postgres.Database))
		return expense.NewPostgresRepository(db), func() { db.Close() }, nil
	default:
		logger.Info("expense ledger using process memory")
		return expense.NewMemoryRepository(), func() {}, nil
	}
}
