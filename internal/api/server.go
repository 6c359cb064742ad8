// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the chi router, the global middleware chain and every
domain handler into one [http.Server].

Route map (all under /api):

  - /gettoken                         token issue (basic auth)
  - /users/...                        accounts, self service, roles, inbox
  - /camps, /heyats, /sports          events and their participants
  - /sessions/...                     meetings, members and tasks
  - /courses, /lectures, /exams       education
  - /expenses                         accounting
  - /category/...                     library categories and documents
  - /forms                            downloadable forms
  - /reports, /report/...             event reports and their media

Probes (/health/live, /health/ready) and /metrics sit outside /api and are
never guarded or wrapped in a transaction.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kanoon/kanoon/internal/core/camp"
	"github.com/kanoon/kanoon/internal/core/document"
	"github.com/kanoon/kanoon/internal/core/education"
	"github.com/kanoon/kanoon/internal/core/expense"
	"github.com/kanoon/kanoon/internal/core/form"
	"github.com/kanoon/kanoon/internal/core/heyat"
	"github.com/kanoon/kanoon/internal/core/report"
	"github.com/kanoon/kanoon/internal/core/session"
	"github.com/kanoon/kanoon/internal/core/sport"
	"github.com/kanoon/kanoon/internal/platform/config"
	"github.com/kanoon/kanoon/internal/platform/constants"
	"github.com/kanoon/kanoon/internal/platform/metrics"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/users/account"
	"github.com/kanoon/kanoon/internal/users/auth"
)

// Server wraps the router and the [http.Server]. It is built once in main.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the domain handler sets. Every field is required.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth      *auth.Handler
	Account   *account.Handler
	Camp      *camp.Handler
	Heyat     *heyat.Handler
	Sport     *sport.Handler
	Session   *session.Handler
	Education *education.Handler
	Expense   *expense.Handler
	Document  *document.Handler
	Form      *form.Handler
	Report    *report.Handler
}

// Dependencies are the shared infrastructure pieces the router needs.
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// DB runs one transaction per API request.
	DB postgres.TxRunner
}

// NewServer builds the router with the full middleware chain. ctx bounds the
// lifetime of background janitors such as the rate limiter sweep.
func NewServer(ctx context.Context, deps Dependencies, h Handlers) *Server {
	router := NewRouter(ctx, deps, h)

	return &Server{
		router: router,
		log:    deps.Logger,
		httpServer: &http.Server{
			Addr:              ":" + deps.Config.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter returns the bare routing tree. Tests drive it with httptest.
func NewRouter(ctx context.Context, deps Dependencies, h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(deps.Metrics.Instrument)
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config, deps.Config.AllowedOrigins()))
	router.Use(chimw.CleanPath)

	router.Get("/health/live", h.Liveness)
	router.Get("/health/ready", h.Readiness)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	router.Route("/api", func(api chi.Router) {
		api.Use(middleware.Transaction(deps.DB))

		h.Auth.RegisterRoutes(api)
		api.Route("/users", h.Account.RegisterRoutes)
		api.Route("/camps", h.Camp.RegisterRoutes)
		api.Route("/heyats", h.Heyat.RegisterRoutes)
		api.Route("/sports", h.Sport.RegisterRoutes)
		api.Route("/sessions", h.Session.RegisterRoutes)
		api.Route("/expenses", h.Expense.RegisterRoutes)
		api.Route("/category", h.Document.RegisterRoutes)
		api.Route("/forms", h.Form.RegisterRoutes)

		// Education and reports own several top-level prefixes each.
		api.Group(h.Education.RegisterRoutes)
		api.Group(h.Report.RegisterRoutes)
	})

	return router
}

// ListenAndServe blocks until the server is closed or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
