// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sport

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type PostgresRepository struct {
	db *postgres.DB
}

func NewPostgresRepository(db *postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const sportColumns = `id, type, venue, datetime`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Sport, int, error) {
	sports, total, err := postgres.Page[Sport](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.sport`,
		`SELECT `+sportColumns+` FROM org.sport ORDER BY datetime DESC, id DESC`,
		params,
	)
	return sports, total, dberr.Wrap(err, "list_sports")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Sport, error) {
	sport, err := postgres.One[Sport](ctx, repository.db.Querier(ctx),
		`SELECT `+sportColumns+` FROM org.sport WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_sport", "Sport")
	}
	return sport, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, sport *Sport) error {
	const query = `
		INSERT INTO org.sport (type, venue, datetime)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		sport.Kind, sport.Venue, sport.Datetime,
	).Scan(&sport.ID)
	return dberr.Wrap(err, "create_sport")
}

func (repository *PostgresRepository) Update(ctx context.Context, sport *Sport) error {
	const query = `
		UPDATE org.sport SET type = $2, venue = $3, datetime = $4
		WHERE id = $1`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_sport", "Sport", query,
		sport.ID, sport.Kind, sport.Venue, sport.Datetime)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_sport", "Sport",
		`DELETE FROM org.sport WHERE id = $1`, id)
}

// # Attendance

const attendeeColumns = `sport_id, user_id, present, rate, description`

func (repository *PostgresRepository) ListAttendees(ctx context.Context, sportID int64, params pagination.Params) ([]*Attendee, int, error) {
	attendees, total, err := postgres.Page[Attendee](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.sport_user WHERE sport_id = $1`,
		`SELECT `+attendeeColumns+` FROM org.sport_user WHERE sport_id = $1 ORDER BY user_id`,
		params, sportID,
	)
	return attendees, total, dberr.Wrap(err, "list_sport_users")
}

func (repository *PostgresRepository) GetAttendee(ctx context.Context, sportID, userID int64) (*Attendee, error) {
	attendee, err := postgres.One[Attendee](ctx, repository.db.Querier(ctx),
		`SELECT `+attendeeColumns+` FROM org.sport_user WHERE sport_id = $1 AND user_id = $2`,
		sportID, userID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_sport_user", "Sport attendee")
	}
	return attendee, nil
}

func (repository *PostgresRepository) AddAttendee(ctx context.Context, attendee *Attendee) error {
	const query = `
		INSERT INTO org.sport_user (sport_id, user_id, present, rate, description)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		attendee.SportID, attendee.UserID, attendee.Present, attendee.Rate, attendee.Description)
	return dberr.Wrap(err, "add_sport_user")
}

func (repository *PostgresRepository) UpdateAttendee(ctx context.Context, attendee *Attendee) error {
	const query = `
		UPDATE org.sport_user SET present = $3, rate = $4, description = $5
		WHERE sport_id = $1 AND user_id = $2`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_sport_user", "Sport attendee", query,
		attendee.SportID, attendee.UserID, attendee.Present, attendee.Rate, attendee.Description)
}

func (repository *PostgresRepository) RemoveAttendee(ctx context.Context, sportID, userID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "remove_sport_user", "Sport attendee",
		`DELETE FROM org.sport_user WHERE sport_id = $1 AND user_id = $2`, sportID, userID)
}

func (repository *PostgresRepository) RemoveAttendees(ctx context.Context, sportID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM org.sport_user WHERE sport_id = $1`, sportID)
	return dberr.Wrap(err, "remove_sport_users")
}
