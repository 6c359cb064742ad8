// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Kanoon HTTP API.
//
// # Startup Sequence
//
//  1. Logger and configuration.
//  2. PostgreSQL pool, then migrations.
//  3. Redis (login throttle) and the event publisher.
//  4. Object storage presigner, token signer and the access gate.
//  5. Repositories, services and handlers.
//  6. HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/api"
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
	"github.com/kanoon/kanoon/internal/platform/events"
	"github.com/kanoon/kanoon/internal/platform/metrics"
	"github.com/kanoon/kanoon/internal/platform/migration"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	redisstore "github.com/kanoon/kanoon/internal/platform/redis"
	"github.com/kanoon/kanoon/internal/platform/sec"
	"github.com/kanoon/kanoon/internal/platform/storage"
	"github.com/kanoon/kanoon/internal/users/account"
	"github.com/kanoon/kanoon/internal/users/auth"
)

func main() {
	log := newLogger(slog.LevelInfo, false)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	cfg, err := config.Load()
	must(log, err, "load configuration")
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log = newLogger(level, cfg.IsDevelopment())
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Misconfiguration should fail fast instead of hanging on dial.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Storage
	pool, err := postgres.NewPool(startupCtx, cfg.DatabaseURL, cfg.DBMaxConns, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.Up(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	db := postgres.NewDB(pool)

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer closeQuietly(log, "redis", rdb)

	publisher := newPublisher(cfg, log)
	if closer, ok := publisher.(io.Closer); ok {
		defer closeQuietly(log, "rabbitmq", closer)
	}

	files, err := storage.New(storage.Config{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
		TTL:      cfg.DownloadURLTTL,
	})
	must(log, err, "configure object storage")
	if _, disabled := files.(storage.Unavailable); disabled {
		log.Warn("object_storage_disabled")
	}

	// Identity
	users := account.NewUserRepository(db)
	roles := account.NewRoleRepository(db)

	signer := sec.NewTokenSigner(cfg.SecretKey, constants.AuthIssuer, time.Now)
	authService := auth.NewService(users, roles, signer,
		auth.NewRedisThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginLockout),
		auth.Options{TokenTTL: cfg.TokenTTL, Lockout: cfg.LoginLockout},
		log,
	)

	telemetry := metrics.New()
	gate := access.NewGate(authService, telemetry, log)

	// Domains
	accountService := account.NewService(account.Repositories{
		Users:    users,
		Roles:    roles,
		Profiles: account.NewProfileRepository(db),
		Messages: account.NewMessageRepository(db),
		Friends:  account.NewFriendRepository(db),
	}, db, publisher, log)

	educationStore := education.NewPostgresRepository(db)
	documentStore := document.NewPostgresRepository(db)

	handlers := api.Handlers{
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService, gate),
		Camp:      camp.NewHandler(camp.NewService(camp.NewPostgresRepository(db), db, log), gate),
		Heyat:     heyat.NewHandler(heyat.NewService(heyat.NewPostgresRepository(db), db, log), gate),
		Sport:     sport.NewHandler(sport.NewService(sport.NewPostgresRepository(db), db, log), gate),
		Session:   session.NewHandler(session.NewService(session.NewPostgresRepository(db), db, log), gate),
		Education: education.NewHandler(education.NewService(educationStore, educationStore, educationStore, db, log), gate),
		Expense:   expense.NewHandler(expense.NewService(expense.NewPostgresRepository(db), log), gate),
		Document:  document.NewHandler(document.NewService(documentStore, documentStore, db, files, log), gate),
		Form:      form.NewHandler(form.NewService(form.NewPostgresRepository(db), files, log), gate),
		Report:    report.NewHandler(report.NewService(report.NewPostgresRepository(db), db, files, log), gate),
	}
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(api.HealthDependencies{
		Checks: map[string]api.Check{
			"postgres": func(ctx context.Context) error { return postgres.Ping(ctx, pool) },
			"redis":    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
	}, log)

	// Serve
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(appCtx, api.Dependencies{
		Config:  cfg,
		Logger:  log,
		Metrics: telemetry,
		DB:      db,
	}, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-appCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server_stopped")
}

// newLogger writes JSON, or plain text when readable output is wanted locally.
func newLogger(level slog.Level, text bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, options)
	if text {
		handler = slog.NewTextHandler(os.Stdout, options)
	}
	logger := slog.New(handler).With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// newPublisher falls back to logging events when no broker is configured
// or the broker cannot be reached at startup.
func newPublisher(cfg *config.Config, log *slog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NewLogPublisher(log)
	}
	publisher, err := events.NewRabbitMQPublisher(cfg.AMQPURL, cfg.EventsExchange, log)
	if err != nil {
		log.Warn("event_broker_unavailable", slog.Any("error", err))
		return events.NewLogPublisher(log)
	}
	return publisher
}

func closeQuietly(log *slog.Logger, name string, closer io.Closer) {
	if err := closer.Close(); err != nil {
		log.Error("close_failed", slog.String("resource", name), slog.Any("error", err))
	}
}

// must stops the process on a startup error. Only used during wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
