// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

// Command api is the entry point for the Reloop HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lekhoa/reloop/internal/api"
	"github.com/lekhoa/reloop/internal/market/blog"
	"github.com/lekhoa/reloop/internal/market/catalog"
	"github.com/lekhoa/reloop/internal/market/identity"
	"github.com/lekhoa/reloop/internal/market/order"
	"github.com/lekhoa/reloop/internal/market/report"
	"github.com/lekhoa/reloop/internal/market/subscription"
	"github.com/lekhoa/reloop/internal/market/wishlist"
	"github.com/lekhoa/reloop/internal/platform/config"
	"github.com/lekhoa/reloop/internal/platform/constants"
	"github.com/lekhoa/reloop/internal/platform/migration"
	pgstore "github.com/lekhoa/reloop/internal/platform/postgres"
	redisstore "github.com/lekhoa/reloop/internal/platform/redis"
	"github.com/lekhoa/reloop/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "reloop"))
	slog.SetDefault(log)

	log.Info("[Reloop] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "reloop"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Credential Codec ───────────────────────────────────────────────
	codec, err := sec.NewCodec(cfg.TokenSecret, constants.AuthIssuer, constants.CredentialTTL)
	must(log, err, "initialize credential codec")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	identityStore := identity.NewPostgresStore(pool)
	identityService := identity.NewService(identityStore, codec, log)
	identityHandler := identity.NewHandler(identityService, identityStore)

	categoryStore := catalog.NewPostgresCategoryStore(pool)
	productStore := catalog.NewPostgresProductStore(pool)
	catalogService := catalog.NewService(categoryStore, productStore, log)
	catalogHandler := catalog.NewHandler(catalogService, identityStore)

	orderHandler := order.NewHandler(order.NewPostgresStore(pool))
	blogHandler := blog.NewHandler(blog.NewPostgresStore(pool))

	wishlistStore := wishlist.NewPostgresStore(pool)
	wishlistService := wishlist.NewService(wishlistStore, productStore, log)
	wishlistHandler := wishlist.NewHandler(wishlistService)

	reportHandler := report.NewHandler(report.NewPostgresStore(pool), identityStore)
	subscriptionHandler := subscription.NewHandler(subscription.NewPostgresStore(pool), identityStore)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Identity:     identityHandler,
		Catalog:      catalogHandler,
		Order:        orderHandler,
		Blog:         blogHandler,
		Wishlist:     wishlistHandler,
		Report:       reportHandler,
		Subscription: subscriptionHandler,
	}

	server := api.NewServer(cfg, log, codec, rdb, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
