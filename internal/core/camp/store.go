// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	List(ctx context.Context, params pagination.Params) ([]*Camp, int, error)
	Get(ctx context.Context, id int64) (*Camp, error)
	Create(ctx context.Context, camp *Camp) error
	Update(ctx context.Context, camp *Camp) error
	Delete(ctx context.Context, id int64) error

	ListParticipants(ctx context.Context, campID int64, params pagination.Params) ([]*Participant, int, error)
	GetParticipant(ctx context.Context, campID, userID int64) (*Participant, error)
	AddParticipant(ctx context.Context, participant *Participant) error
	UpdateParticipant(ctx context.Context, participant *Participant) error
	RemoveParticipant(ctx context.Context, campID, userID int64) error
	RemoveParticipants(ctx context.Context, campID int64) error
}
