// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kanoon/kanoon/internal/platform/ctxkey"
)

// Querier is the statement surface shared by the pool and a transaction.
// Repositories depend on it instead of on a concrete pool.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is a [Querier] that can open transactions. *pgxpool.Pool satisfies it.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner runs fn inside one transaction. Services use it for multi-statement
// mutations that must be all-or-nothing.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DB is the explicit storage handle threaded through every repository.
//
// A request-scoped transaction travels in the context; [DB.Querier] returns it
// when present so that every statement of a request shares one snapshot.
type DB struct {
	pool Pool
}

// NewDB wraps a pool.
func NewDB(pool Pool) *DB {
	return &DB{pool: pool}
}

// txState tracks one level of (possibly nested) transaction.
type txState struct {
	tx     pgx.Tx
	parent *txState
	hooks  []func(context.Context)
}

func txFrom(ctx context.Context) *txState {
	state, _ := ctx.Value(ctxkey.KeyTx).(*txState)
	return state
}

// Querier returns the transaction bound to ctx, or the pool outside one.
func (db *DB) Querier(ctx context.Context) Querier {
	if state := txFrom(ctx); state != nil {
		return state.tx
	}
	return db.pool
}

// InTx runs fn in a transaction. Inside an existing transaction it opens a
// savepoint, so a failing fn only undoes its own statements.
//
// The transaction commits when fn returns nil and rolls back otherwise.
// After-commit hooks registered through [AfterCommit] run once the outermost
// transaction has committed.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	parent := txFrom(ctx)

	var (
		tx  pgx.Tx
		err error
	)
	if parent != nil {
		tx, err = parent.tx.Begin(ctx)
	} else {
		tx, err = db.pool.Begin(ctx)
	}
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	state := &txState{tx: tx, parent: parent}
	defer func() {
		if recovered := recover(); recovered != nil {
			_ = tx.Rollback(ctx)
			panic(recovered)
		}
	}()

	if err := fn(context.WithValue(ctx, ctxkey.KeyTx, state)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}

	if parent != nil {
		// Savepoint released; hooks now depend on the outer commit.
		parent.hooks = append(parent.hooks, state.hooks...)
		return nil
	}

	hookCtx := context.WithoutCancel(ctx)
	for _, hook := range state.hooks {
		hook(hookCtx)
	}
	return nil
}

// AfterCommit defers hook until the transaction bound to ctx commits. Outside
// a transaction the hook runs immediately. Hooks of a rolled back transaction
// are discarded.
func AfterCommit(ctx context.Context, hook func(context.Context)) {
	state := txFrom(ctx)
	if state == nil {
		hook(ctx)
		return
	}
	state.hooks = append(state.hooks, hook)
}
