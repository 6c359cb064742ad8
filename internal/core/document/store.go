// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context, params pagination.Params) ([]*Category, int, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type Repository interface {
	// List returns documents of a category; an empty kind lists every kind.
	List(ctx context.Context, categoryID int64, kind string, params pagination.Params) ([]*Document, int, error)
	Get(ctx context.Context, id int64) (*Document, error)
	KindOf(ctx context.Context, id int64) (string, error)
	// Create inserts the common row and the detail row of doc.Kind. Callers
	// run it inside a transaction.
	Create(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id int64) error
}
