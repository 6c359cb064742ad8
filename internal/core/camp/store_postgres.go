// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp

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

const campColumns = `id, subject, location, go_time, back_time, cost_per_person`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Camp, int, error) {
	camps, total, err := postgres.Page[Camp](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.camp`,
		`SELECT `+campColumns+` FROM org.camp ORDER BY go_time DESC, id DESC`,
		params,
	)
	return camps, total, dberr.Wrap(err, "list_camps")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Camp, error) {
	camp, err := postgres.One[Camp](ctx, repository.db.Querier(ctx),
		`SELECT `+campColumns+` FROM org.camp WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_camp", "Camp")
	}
	return camp, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, camp *Camp) error {
	const query = `
		INSERT INTO org.camp (subject, location, go_time, back_time, cost_per_person)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		camp.Subject, camp.Location, camp.GoTime, camp.BackTime, camp.CostPerPerson,
	).Scan(&camp.ID)
	return dberr.Wrap(err, "create_camp")
}

func (repository *PostgresRepository) Update(ctx context.Context, camp *Camp) error {
	const query = `
		UPDATE org.camp
		SET subject = $2, location = $3, go_time = $4, back_time = $5, cost_per_person = $6
		WHERE id = $1`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_camp", "Camp", query,
		camp.ID, camp.Subject, camp.Location, camp.GoTime, camp.BackTime, camp.CostPerPerson)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_camp", "Camp",
		`DELETE FROM org.camp WHERE id = $1`, id)
}

// # Participants

const participantColumns = `camp_id, user_id, paid_value, rate, description`

func (repository *PostgresRepository) ListParticipants(ctx context.Context, campID int64, params pagination.Params) ([]*Participant, int, error) {
	participants, total, err := postgres.Page[Participant](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.camp_user WHERE camp_id = $1`,
		`SELECT `+participantColumns+` FROM org.camp_user WHERE camp_id = $1 ORDER BY user_id`,
		params, campID,
	)
	return participants, total, dberr.Wrap(err, "list_camp_users")
}

func (repository *PostgresRepository) GetParticipant(ctx context.Context, campID, userID int64) (*Participant, error) {
	participant, err := postgres.One[Participant](ctx, repository.db.Querier(ctx),
		`SELECT `+participantColumns+` FROM org.camp_user WHERE camp_id = $1 AND user_id = $2`,
		campID, userID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_camp_user", "Camp participant")
	}
	return participant, nil
}

func (repository *PostgresRepository) AddParticipant(ctx context.Context, participant *Participant) error {
	const query = `
		INSERT INTO org.camp_user (camp_id, user_id, paid_value, rate, description)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		participant.CampID, participant.UserID, participant.PaidValue, participant.Rate, participant.Description)
	return dberr.Wrap(err, "add_camp_user")
}

func (repository *PostgresRepository) UpdateParticipant(ctx context.Context, participant *Participant) error {
	const query = `
		UPDATE org.camp_user SET paid_value = $3, rate = $4, description = $5
		WHERE camp_id = $1 AND user_id = $2`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_camp_user", "Camp participant", query,
		participant.CampID, participant.UserID, participant.PaidValue, participant.Rate, participant.Description)
}

func (repository *PostgresRepository) RemoveParticipant(ctx context.Context, campID, userID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "remove_camp_user", "Camp participant",
		`DELETE FROM org.camp_user WHERE camp_id = $1 AND user_id = $2`, campID, userID)
}

func (repository *PostgresRepository) RemoveParticipants(ctx context.Context, campID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM org.camp_user WHERE camp_id = $1`, campID)
	return dberr.Wrap(err, "remove_camp_users")
}
