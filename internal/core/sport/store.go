// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sport

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	List(ctx context.Context, params pagination.Params) ([]*Sport, int, error)
	Get(ctx context.Context, id int64) (*Sport, error)
	Create(ctx context.Context, sport *Sport) error
	Update(ctx context.Context, sport *Sport) error
	Delete(ctx context.Context, id int64) error

	ListAttendees(ctx context.Context, sportID int64, params pagination.Params) ([]*Attendee, int, error)
	GetAttendee(ctx context.Context, sportID, userID int64) (*Attendee, error)
	AddAttendee(ctx context.Context, attendee *Attendee) error
	UpdateAttendee(ctx context.Context, attendee *Attendee) error
	RemoveAttendee(ctx context.Context, sportID, userID int64) error
	RemoveAttendees(ctx context.Context, sportID int64) error
}
