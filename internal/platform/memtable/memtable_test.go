// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memtable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type row struct {
	ID   int64
	Name string
}

/*
TestTx_RestoresOnFailure rolls every covered table back together.
*/
func TestTx_RestoresOnFailure(t *testing.T) {
	left, right := memtable.New[row](), memtable.New[row]()
	left.Insert(row{ID: left.NextID(), Name: "kept"})
	tx := memtable.NewTx(left, right)

	err := tx.InTx(context.Background(), func(context.Context) error {
		left.Remove(func(row) bool { return true })
		right.Insert(row{ID: right.NextID(), Name: "dropped"})
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, left.Len())
	assert.Equal(t, 0, right.Len())
	assert.Equal(t, int64(1), right.NextID())

	require.NoError(t, tx.InTx(context.Background(), func(context.Context) error {
		right.Insert(row{ID: 9})
		return nil
	}))
	assert.Equal(t, 1, right.Len())
}

/*
TestPage returns copies of one page and the full count.
*/
func TestPage(t *testing.T) {
	table := memtable.New[row]()
	for range 7 {
		table.Insert(row{ID: table.NextID()})
	}

	items, total := memtable.Page(table.Select(nil), pagination.Params{Page: 2, Limit: 5})
	assert.Equal(t, 7, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(6), items[0].ID)

	items[0].Name = "changed"
	stored, _ := table.Find(func(r row) bool { return r.ID == 6 })
	assert.Empty(t, stored.Name)

	items, _ = memtable.Page(table.Select(nil), pagination.Params{Page: 3, Limit: 5})
	assert.Empty(t, items)
}
