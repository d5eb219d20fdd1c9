// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/lekhoa/reloop/internal/market/blog"
	"github.com/lekhoa/reloop/internal/market/catalog"
	"github.com/lekhoa/reloop/internal/market/identity"
	"github.com/lekhoa/reloop/internal/market/order"
	"github.com/lekhoa/reloop/internal/market/report"
	"github.com/lekhoa/reloop/internal/market/subscription"
	"github.com/lekhoa/reloop/internal/market/wishlist"
	"github.com/lekhoa/reloop/internal/platform/config"
	"github.com/lekhoa/reloop/internal/platform/constants"
	"github.com/lekhoa/reloop/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Identity handles credential issuance, registration, and elevation.
	Identity *identity.Handler

	// Catalog handles categories and product listings.
	Catalog *catalog.Handler

	// Order handles purchase placement and lookups.
	Order *order.Handler

	// Blog handles editorial posts.
	Blog *blog.Handler

	// Wishlist handles the dedup-guarded product links.
	Wishlist *wishlist.Handler

	// Report handles product reports.
	Report *report.Handler

	// Subscription handles the mailing list.
	Subscription *subscription.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, limiter *redis.Client, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Identity.AuthRoutes())
		api.Mount("/users", h.Identity.Routes())
		api.Mount("/categories", h.Catalog.CategoryRoutes())
		api.Mount("/products", h.Catalog.ProductRoutes())
		api.Mount("/orders", h.Order.Routes())
		api.Mount("/blogs", h.Blog.Routes())
		api.Mount("/wishlist", h.Wishlist.Routes())
		api.Mount("/reports", h.Report.Routes())
		api.Mount("/subscriptions", h.Subscription.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
