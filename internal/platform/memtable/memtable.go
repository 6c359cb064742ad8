// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memtable is an in-memory row store for repository fakes in tests.

A [Table] keeps rows in insertion order and hands out copies, so a fake
repository behaves like storage: callers never alias stored rows. [Tx]
snapshots a set of tables and restores them when the wrapped function fails,
which is enough to observe all-or-nothing behavior of service methods.
*/
package memtable

import (
	"context"
	"slices"

	"github.com/kanoon/kanoon/pkg/pagination"
)

// Table is an ordered collection of rows of one type.
type Table[V any] struct {
	rows   []V
	nextID int64
}

// New returns an empty table.
func New[V any]() *Table[V] {
	return &Table[V]{}
}

// NextID returns a fresh serial id.
func (table *Table[V]) NextID() int64 {
	table.nextID++
	return table.nextID
}

// Insert appends row.
func (table *Table[V]) Insert(row V) {
	table.rows = append(table.rows, row)
}

// Find returns the first row that matches.
func (table *Table[V]) Find(match func(V) bool) (V, bool) {
	for _, row := range table.rows {
		if match(row) {
			return row, true
		}
	}
	var zero V
	return zero, false
}

// Any reports whether some row matches.
func (table *Table[V]) Any(match func(V) bool) bool {
	_, ok := table.Find(match)
	return ok
}

// Replace overwrites the first matching row and reports whether one existed.
func (table *Table[V]) Replace(match func(V) bool, row V) bool {
	for i := range table.rows {
		if match(table.rows[i]) {
			table.rows[i] = row
			return true
		}
	}
	return false
}

// Remove deletes every matching row and returns how many went.
func (table *Table[V]) Remove(match func(V) bool) int {
	before := len(table.rows)
	table.rows = slices.DeleteFunc(table.rows, match)
	return before - len(table.rows)
}

// Select returns the matching rows in insertion order. A nil match selects all.
func (table *Table[V]) Select(match func(V) bool) []V {
	out := make([]V, 0, len(table.rows))
	for _, row := range table.rows {
		if match == nil || match(row) {
			out = append(out, row)
		}
	}
	return out
}

// Len is the row count.
func (table *Table[V]) Len() int {
	return len(table.rows)
}

func (table *Table[V]) snapshot() func() {
	rows, nextID := slices.Clone(table.rows), table.nextID
	return func() {
		table.rows, table.nextID = rows, nextID
	}
}

// Snapshotter is implemented by every [Table].
type Snapshotter interface {
	snapshot() func()
}

// Tx is a transaction runner over a fixed set of tables.
type Tx struct {
	tables []Snapshotter
}

// NewTx covers tables with one snapshot per InTx call.
func NewTx(tables ...Snapshotter) *Tx {
	return &Tx{tables: tables}
}

// InTx runs fn and restores every table if it fails.
func (tx *Tx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), len(tx.tables))
	for i, table := range tx.tables {
		restores[i] = table.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// Page cuts one page out of items and returns it with the total.
func Page[V any](items []V, params pagination.Params) ([]*V, int) {
	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	out := make([]*V, 0, end-start)
	for i := start; i < end; i++ {
		row := items[i]
		out = append(out, &row)
	}
	return out, len(items)
}
