// Package main is the entry point for the Life Energy monthly review API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lifeenergy/backend/config"
	"github.com/lifeenergy/backend/internal/infra/cache"
	"github.com/lifeenergy/backend/internal/infra/db"
	"github.com/lifeenergy/backend/internal/infra/dependency"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Life Energy API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	opts := dependency.Options{DBHealthChecker: database.HealthCheck}

	// Redis is optional: without it creation races fall through to the unique index.
	if cfg.Redis.Enabled {
		redisConn, err := cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without creation lock", "error", err)
		} else {
			defer func() {
				if err := redisConn.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
			opts.Redis = redisConn.Client()
			opts.RedisHealthChecker = redisConn.HealthCheck
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), opts)
	engine := injector.Router.Setup(cfg.Server.Environment)

	stopCleanup := make(chan struct{})
	injector.RebuildRateLimiter.StartCleanup(cfg.Review.RebuildRateWindow, stopCleanup)
	defer close(stopCleanup)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
