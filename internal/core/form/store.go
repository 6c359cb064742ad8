// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	List(ctx context.Context, params pagination.Params) ([]*Form, int, error)
	Get(ctx context.Context, id int64) (*Form, error)
	// Create and Update report a taken code as a conflict.
	Create(ctx context.Context, form *Form) error
	Update(ctx context.Context, form *Form) error
	Delete(ctx context.Context, id int64) error
}
