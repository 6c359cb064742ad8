// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package heyat

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	List(ctx context.Context, params pagination.Params) ([]*Heyat, int, error)
	Get(ctx context.Context, id int64) (*Heyat, error)
	Create(ctx context.Context, heyat *Heyat) error
	Update(ctx context.Context, heyat *Heyat) error
	Delete(ctx context.Context, id int64) error

	ListAttendees(ctx context.Context, heyatID int64, params pagination.Params) ([]*Attendee, int, error)
	GetAttendee(ctx context.Context, heyatID, userID int64) (*Attendee, error)
	AddAttendee(ctx context.Context, attendee *Attendee) error
	UpdateAttendee(ctx context.Context, attendee *Attendee) error
	RemoveAttendee(ctx context.Context, heyatID, userID int64) error
	RemoveAttendees(ctx context.Context, heyatID int64) error
}
