// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	// List returns expenses newest first; an empty state lists all.
	List(ctx context.Context, state string, params pagination.Params) ([]*Expense, int, error)
	Get(ctx context.Context, id int64) (*Expense, error)
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id int64) error
}
