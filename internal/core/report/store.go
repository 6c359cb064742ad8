// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	// List returns reports newest first; an empty kind lists every kind.
	List(ctx context.Context, kind string, params pagination.Params) ([]*Report, int, error)
	Get(ctx context.Context, id int64) (*Report, error)
	FindByTarget(ctx context.Context, kind string, targetID int64) (*Report, error)
	KindOf(ctx context.Context, id int64) (string, error)
	// Create reports a second report of the same target as a conflict and a
	// missing target as not found.
	Create(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id int64) error

	ListMultimedia(ctx context.Context, reportID int64, params pagination.Params) ([]*Multimedia, int, error)
	GetMultimedia(ctx context.Context, id int64) (*Multimedia, error)
	CreateMultimedia(ctx context.Context, media *Multimedia) error
	UpdateMultimedia(ctx context.Context, media *Multimedia) error
	DeleteMultimedia(ctx context.Context, id int64) error
	DeleteReportMultimedia(ctx context.Context, reportID int64) error
}
