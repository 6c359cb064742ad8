// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// PostgresMessageRepository implements [MessageRepository].
type PostgresMessageRepository struct {
	db *postgres.DB
}

// NewMessageRepository creates a PostgreSQL [MessageRepository].
func NewMessageRepository(db *postgres.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// readCondition turns a filter into a nullable flag: NULL matches every row.
func readCondition(filter MessageFilter) *bool {
	var read bool
	switch filter {
	case FilterRead:
		read = true
	case FilterUnread:
		read = false
	default:
		return nil
	}
	return &read
}

func (repository *PostgresMessageRepository) List(ctx context.Context, userID int64, filter MessageFilter, params pagination.Params) ([]*Message, int, error) {
	querier := repository.db.Querier(ctx)
	read := readCondition(filter)

	const countQuery = `
		SELECT count(*) FROM users.message
		WHERE user_id = $1 AND ($2::boolean IS NULL OR read = $2)`
	var total int
	if err := querier.QueryRow(ctx, countQuery, userID, read).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_messages")
	}

	const query = `
		SELECT id, user_id, subject, text, read, created_at
		FROM users.message
		WHERE user_id = $1 AND ($2::boolean IS NULL OR read = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := querier.Query(ctx, query, userID, read, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_messages")
	}
	defer rows.Close()

	messages := make([]*Message, 0, params.Limit)
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(&message.ID, &message.UserID, &message.Subject, &message.Text, &message.Read, &message.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_message")
		}
		messages = append(messages, message)
	}
	return messages, total, dberr.Wrap(rows.Err(), "list_messages")
}

func (repository *PostgresMessageRepository) Get(ctx context.Context, id int64) (*Message, error) {
	const query = `SELECT id, user_id, subject, text, read, created_at FROM users.message WHERE id = $1`

	message := &Message{}
	err := repository.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&message.ID, &message.UserID, &message.Subject, &message.Text, &message.Read, &message.CreatedAt,
	)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_message", "Message")
	}
	return message, nil
}

func (repository *PostgresMessageRepository) Create(ctx context.Context, message *Message) error {
	const query = `
		INSERT INTO users.message (user_id, subject, text)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at`
	err := repository.db.Querier(ctx).QueryRow(ctx, query, message.UserID, message.Subject, message.Text).
		Scan(&message.ID, &message.Read, &message.CreatedAt)
	return dberr.Wrap(err, "create_message")
}

func (repository *PostgresMessageRepository) Update(ctx context.Context, message *Message) error {
	const query = `UPDATE users.message SET subject = $2, text = $3 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_message", "Message", query, message.ID, message.Subject, message.Text)
}

func (repository *PostgresMessageRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_message", "Message", `DELETE FROM users.message WHERE id = $1`, id)
}

func (repository *PostgresMessageRepository) DeleteAll(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.message WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "delete_messages")
}

func (repository *PostgresMessageRepository) MarkRead(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repository.db.Querier(ctx).Exec(ctx, `UPDATE users.message SET read = true WHERE id = ANY($1)`, ids)
	return dberr.Wrap(err, "mark_messages_read")
}
