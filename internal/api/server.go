// Copyright (c) 2026 Cinelog. All rights reserved.

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

	"github.com/cinelog/cinelog/internal/catalog/movie"
	"github.com/cinelog/cinelog/internal/platform/config"
	"github.com/cinelog/cinelog/internal/platform/constants"
	"github.com/cinelog/cinelog/internal/platform/middleware"
	"github.com/cinelog/cinelog/internal/users/account"
	"github.com/cinelog/cinelog/internal/users/admin"
	"github.com/cinelog/cinelog/internal/users/auth"
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
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (login, register, logout).
	Auth *auth.Handler

	// Admin handles the user moderation panel.
	Admin *admin.Handler

	// Account handles user profiles.
	Account *account.Handler

	// Movie handles the film catalog and likes.
	Movie *movie.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Route Layout
//
// The session routes (/auth) and the moderation panel (/admin) are mounted
// unprefixed; profiles and the catalog live under the versioned API prefix.
// The authorization gate guards everything except /auth and the probes.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, resolver middleware.UserResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Session Lifecycle
	// Login and register must be reachable anonymously; logout resolves
	// its own bearer token.
	r.Mount("/auth", h.Auth.Routes())

	// # Moderation Panel
	r.Group(func(guarded chi.Router) {
		guarded.Use(middleware.Authenticate(verifier, resolver))
		guarded.Use(middleware.RequireAdmin)
		guarded.Mount("/admin", h.Admin.Routes())
	})

	// # Application API
	r.Route(constants.APIPrefix, func(api chi.Router) {
		api.Use(middleware.Authenticate(verifier, resolver))
		api.Use(middleware.RequireAuth)
		api.Mount("/users", h.Account.Routes())
		api.Mount("/movies", h.Movie.Routes())
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
