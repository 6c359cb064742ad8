// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// PostgresFriendRepository implements [FriendRepository].
type PostgresFriendRepository struct {
	db *postgres.DB
}

// NewFriendRepository creates a PostgreSQL [FriendRepository].
func NewFriendRepository(db *postgres.DB) *PostgresFriendRepository {
	return &PostgresFriendRepository{db: db}
}

// friendColumns turns a stored pair around so that $1 is always user_id.
const friendColumns = `
	$1::bigint,
	CASE WHEN user_id = $1 THEN friend_id ELSE user_id END,
	created_at`

const friendPair = `((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))`

func (repository *PostgresFriendRepository) List(ctx context.Context, userID int64, params pagination.Params) ([]*Friend, int, error) {
	querier := repository.db.Querier(ctx)

	const countQuery = `SELECT count(*) FROM users.friend WHERE user_id = $1 OR friend_id = $1`
	var total int
	if err := querier.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_friends")
	}

	query := `SELECT ` + friendColumns + `
		FROM users.friend
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY created_at ASC, 2 ASC
		LIMIT $2 OFFSET $3`
	rows, err := querier.Query(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_friends")
	}
	defer rows.Close()

	friends := make([]*Friend, 0, params.Limit)
	for rows.Next() {
		friend := &Friend{}
		if err := rows.Scan(&friend.UserID, &friend.FriendID, &friend.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_friend")
		}
		friends = append(friends, friend)
	}
	return friends, total, dberr.Wrap(rows.Err(), "list_friends")
}

func (repository *PostgresFriendRepository) Get(ctx context.Context, userID, friendID int64) (*Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM users.friend WHERE ` + friendPair

	friend := &Friend{}
	err := repository.db.Querier(ctx).QueryRow(ctx, query, userID, friendID).
		Scan(&friend.UserID, &friend.FriendID, &friend.CreatedAt)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_friend", "Friend")
	}
	return friend, nil
}

// Create relies on uq_friend_pair to reject the reversed pair.
func (repository *PostgresFriendRepository) Create(ctx context.Context, friend *Friend) error {
	const query = `
		INSERT INTO users.friend (user_id, friend_id)
		VALUES ($1, $2)
		RETURNING created_at`
	err := repository.db.Querier(ctx).QueryRow(ctx, query, friend.UserID, friend.FriendID).Scan(&friend.CreatedAt)
	return dberr.Wrap(err, "create_friend")
}

func (repository *PostgresFriendRepository) Delete(ctx context.Context, userID, friendID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_friend", "Friend",
		`DELETE FROM users.friend WHERE `+friendPair, userID, friendID)
}

func (repository *PostgresFriendRepository) DeleteAll(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.friend WHERE user_id = $1 OR friend_id = $1`, userID)
	return dberr.Wrap(err, "delete_friends")
}
