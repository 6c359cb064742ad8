// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kanoon/kanoon/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action names the failed operation (e.g. "insert camp") and is kept on the
// cause for server-side logs only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. SQLSTATE mapping
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgErr)).WithCause(cause)
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced resource").WithCause(cause)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
			pgerrcode.InvalidTextRepresentation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError(pgErr.Message).WithCause(cause)
		}
		return apperr.StorageFailure(pgErr.Message, cause)
	}

	// 3. Connection and transaction errors
	return apperr.StorageFailure("", cause)
}

// WrapNotFound is [Wrap] with a resource-specific not found message.
func WrapNotFound(err error, action, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}

// conflictMessage names the violated constraint when postgres reports it.
func conflictMessage(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "Duplicate value violates " + pgErr.ConstraintName
	}
	return "Resource already exists"
}

// WrapDelete is [WrapNotFound] for DELETE statements, where a foreign key
// violation means the row is still referenced rather than missing.
func WrapDelete(err error, action, resource string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return apperr.Conflict(resource + " is still referenced").WithCause(fmt.Errorf("%s: %w", action, err))
	}
	return WrapNotFound(err, action, resource)
}

// Execer is the write half of a pgx connection or transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ExecOne runs a statement that must touch at least one row. Zero affected
// rows is reported as resource not found.
func ExecOne(ctx context.Context, db Execer, action, resource, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

// DeleteOne is [ExecOne] for DELETE statements, see [WrapDelete].
func DeleteOne(ctx context.Context, db Execer, action, resource, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return WrapDelete(err, action, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
