// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package heyat

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

const heyatColumns = `id, type, reason, datetime, compere, speaker, singer, meal`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Heyat, int, error) {
	heyats, total, err := postgres.Page[Heyat](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.heyat`,
		`SELECT `+heyatColumns+` FROM org.heyat ORDER BY datetime DESC, id DESC`,
		params,
	)
	return heyats, total, dberr.Wrap(err, "list_heyats")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Heyat, error) {
	heyat, err := postgres.One[Heyat](ctx, repository.db.Querier(ctx),
		`SELECT `+heyatColumns+` FROM org.heyat WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_heyat", "Heyat")
	}
	return heyat, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, heyat *Heyat) error {
	const query = `
		INSERT INTO org.heyat (type, reason, datetime, compere, speaker, singer, meal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		heyat.Kind, heyat.Reason, heyat.Datetime, heyat.Compere, heyat.Speaker, heyat.Singer, heyat.Meal,
	).Scan(&heyat.ID)
	return dberr.Wrap(err, "create_heyat")
}

func (repository *PostgresRepository) Update(ctx context.Context, heyat *Heyat) error {
	const query = `
		UPDATE org.heyat
		SET type = $2, reason = $3, datetime = $4, compere = $5, speaker = $6, singer = $7, meal = $8
		WHERE id = $1`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_heyat", "Heyat", query,
		heyat.ID, heyat.Kind, heyat.Reason, heyat.Datetime, heyat.Compere, heyat.Speaker, heyat.Singer, heyat.Meal)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_heyat", "Heyat",
		`DELETE FROM org.heyat WHERE id = $1`, id)
}

// # Attendance

const attendeeColumns = `heyat_id, user_id, present, rate, description`

func (repository *PostgresRepository) ListAttendees(ctx context.Context, heyatID int64, params pagination.Params) ([]*Attendee, int, error) {
	attendees, total, err := postgres.Page[Attendee](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.heyat_user WHERE heyat_id = $1`,
		`SELECT `+attendeeColumns+` FROM org.heyat_user WHERE heyat_id = $1 ORDER BY user_id`,
		params, heyatID,
	)
	return attendees, total, dberr.Wrap(err, "list_heyat_users")
}

func (repository *PostgresRepository) GetAttendee(ctx context.Context, heyatID, userID int64) (*Attendee, error) {
	attendee, err := postgres.One[Attendee](ctx, repository.db.Querier(ctx),
		`SELECT `+attendeeColumns+` FROM org.heyat_user WHERE heyat_id = $1 AND user_id = $2`,
		heyatID, userID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_heyat_user", "Heyat attendee")
	}
	return attendee, nil
}

func (repository *PostgresRepository) AddAttendee(ctx context.Context, attendee *Attendee) error {
	const query = `
		INSERT INTO org.heyat_user (heyat_id, user_id, present, rate, description)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		attendee.HeyatID, attendee.UserID, attendee.Present, attendee.Rate, attendee.Description)
	return dberr.Wrap(err, "add_heyat_user")
}

func (repository *PostgresRepository) UpdateAttendee(ctx context.Context, attendee *Attendee) error {
	const query = `
		UPDATE org.heyat_user SET present = $3, rate = $4, description = $5
		WHERE heyat_id = $1 AND user_id = $2`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_heyat_user", "Heyat attendee", query,
		attendee.HeyatID, attendee.UserID, attendee.Present, attendee.Rate, attendee.Description)
}

func (repository *PostgresRepository) RemoveAttendee(ctx context.Context, heyatID, userID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "remove_heyat_user", "Heyat attendee",
		`DELETE FROM org.heyat_user WHERE heyat_id = $1 AND user_id = $2`, heyatID, userID)
}

func (repository *PostgresRepository) RemoveAttendees(ctx context.Context, heyatID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM org.heyat_user WHERE heyat_id = $1`, heyatID)
	return dberr.Wrap(err, "remove_heyat_users")
}
