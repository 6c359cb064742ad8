// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// # Friends

// FriendInput is the payload of an add-friend request.
type FriendInput struct {
	FriendID *int64 `json:"friend_id"`
}

func (service *Service) ListFriends(ctx context.Context, userID int64, params pagination.Params) ([]*Friend, int, error) {
	return service.friends.List(ctx, userID, params)
}

/*
AddFriend links two members.

Returns:
  - *Friend: The pair as seen from userID
  - error: ValidationError for a missing or self friend_id, NotFound for an
    unknown member, Conflict when the pair exists in either direction
*/
func (service *Service) AddFriend(ctx context.Context, userID int64, input FriendInput) (*Friend, error) {
	if input.FriendID == nil || *input.FriendID <= 0 {
		return nil, validate.RequiredError("friend_id", "This field is required")
	}
	if *input.FriendID == userID {
		return nil, validate.RequiredError("friend_id", "A member cannot befriend themselves")
	}
	if _, err := service.users.FindByID(ctx, *input.FriendID); err != nil {
		return nil, err
	}

	friend := &Friend{UserID: userID, FriendID: *input.FriendID}
	if err := service.friends.Create(ctx, friend); err != nil {
		return nil, err
	}
	service.logger.InfoContext(ctx, "friend_added",
		slog.Int64("user_id", userID),
		slog.Int64("friend_id", friend.FriendID),
	)
	return friend, nil
}

// RemoveFriend unlinks a pair, whichever side added it.
func (service *Service) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return service.friends.Delete(ctx, userID, friendID)
}
