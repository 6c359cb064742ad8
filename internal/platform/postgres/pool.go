// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the pgx pool, the context-bound transaction handle
// every repository reads its querier from, and the generic row collectors.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanoon/kanoon/internal/platform/constants"
)

const (
	defaultMaxConns   = 25
	warmConns         = 5
	connLifetime      = time.Hour
	connIdleTime      = 10 * time.Minute
	healthCheckPeriod = time.Minute
	dialTimeout       = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// NewPool connects to dsn and pings once. maxConns of zero keeps the default.
// Every connection runs with statement_timeout equal to the request timeout,
// so a stuck query cannot outlive its request.
func NewPool(ctx context.Context, dsn string, maxConns int32, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	config.MaxConns = defaultMaxConns
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MinConns = min(warmConns, config.MaxConns)
	config.MaxConnLifetime = connLifetime
	config.MaxConnIdleTime = connIdleTime
	config.HealthCheckPeriod = healthCheckPeriod
	config.ConnConfig.ConnectTimeout = dialTimeout

	statementTimeout := fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, statementTimeout)
		return err
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// Ping is used at startup and by the readiness probe.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
