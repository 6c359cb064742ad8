// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate before the API starts serving.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up migrates the database at dsn to the newest version found in dir.
// A dirty schema is reported, never forced.
func Up(dsn, dir string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+dir, SchemeFor(dsn))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed",
				slog.Any("source_error", sourceErr),
				slog.Any("db_error", dbErr),
			)
		}
	}()
	migrator.Log = slogAdapter{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// SchemeFor rewrites a postgres:// or postgresql:// URL to the pgx5://
// scheme registered by the pgx/v5 driver. Other values pass through.
func SchemeFor(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter slogAdapter) Verbose() bool { return false }
