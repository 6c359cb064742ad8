// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// PostgresProfileRepository implements [ProfileRepository].
type PostgresProfileRepository struct {
	db *postgres.DB
}

// NewProfileRepository creates a PostgreSQL [ProfileRepository].
func NewProfileRepository(db *postgres.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// # Details

func (repository *PostgresProfileRepository) GetDetails(ctx context.Context, userID int64) (*Details, error) {
	const query = `
		SELECT user_id, firstname, lastname, instagram, birth_date::text, nat_id,
		       fathername, user_pic, nat_pic, birth_certificate_pic
		FROM users.details
		WHERE user_id = $1`

	details := &Details{}
	err := repository.db.Querier(ctx).QueryRow(ctx, query, userID).Scan(
		&details.UserID, &details.Firstname, &details.Lastname, &details.Instagram,
		&details.BirthDate, &details.NatID, &details.Fathername,
		&details.UserPic, &details.NatPic, &details.BirthCertificatePic,
	)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_details", "Details")
	}
	return details, nil
}

// UpsertDetails writes the single details row of a member.
func (repository *PostgresProfileRepository) UpsertDetails(ctx context.Context, details *Details) error {
	const query = `
		INSERT INTO users.details (
			user_id, firstname, lastname, instagram, birth_date, nat_id,
			fathername, user_pic, nat_pic, birth_certificate_pic
		) VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname,
			instagram = EXCLUDED.instagram,
			birth_date = EXCLUDED.birth_date,
			nat_id = EXCLUDED.nat_id,
			fathername = EXCLUDED.fathername,
			user_pic = EXCLUDED.user_pic,
			nat_pic = EXCLUDED.nat_pic,
			birth_certificate_pic = EXCLUDED.birth_certificate_pic`

	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		details.UserID, details.Firstname, details.Lastname, details.Instagram,
		details.BirthDate, details.NatID, details.Fathername,
		details.UserPic, details.NatPic, details.BirthCertificatePic,
	)
	return dberr.Wrap(err, "upsert_details")
}

func (repository *PostgresProfileRepository) DeleteDetails(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.details WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "delete_details")
}

// # Dials

func (repository *PostgresProfileRepository) ListDials(ctx context.Context, userID int64, params pagination.Params) ([]*Dial, int, error) {
	querier := repository.db.Querier(ctx)

	var total int
	if err := querier.QueryRow(ctx, `SELECT count(*) FROM users.dial WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_dials")
	}

	const query = `
		SELECT id, user_id, number, type FROM users.dial
		WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := querier.Query(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_dials")
	}
	defer rows.Close()

	dials := make([]*Dial, 0, params.Limit)
	for rows.Next() {
		dial := &Dial{}
		if err := rows.Scan(&dial.ID, &dial.UserID, &dial.Number, &dial.Type); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_dial")
		}
		dials = append(dials, dial)
	}
	return dials, total, dberr.Wrap(rows.Err(), "list_dials")
}

func (repository *PostgresProfileRepository) GetDial(ctx context.Context, id int64) (*Dial, error) {
	const query = `SELECT id, user_id, number, type FROM users.dial WHERE id = $1`

	dial := &Dial{}
	err := repository.db.Querier(ctx).QueryRow(ctx, query, id).Scan(&dial.ID, &dial.UserID, &dial.Number, &dial.Type)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_dial", "Dial")
	}
	return dial, nil
}

func (repository *PostgresProfileRepository) CreateDial(ctx context.Context, dial *Dial) error {
	const query = `INSERT INTO users.dial (user_id, number, type) VALUES ($1, $2, $3) RETURNING id`
	err := repository.db.Querier(ctx).QueryRow(ctx, query, dial.UserID, dial.Number, dial.Type).Scan(&dial.ID)
	return dberr.Wrap(err, "create_dial")
}

func (repository *PostgresProfileRepository) UpdateDial(ctx context.Context, dial *Dial) error {
	const query = `UPDATE users.dial SET number = $2, type = $3 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_dial", "Dial", query, dial.ID, dial.Number, dial.Type)
}

func (repository *PostgresProfileRepository) DeleteDial(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_dial", "Dial", `DELETE FROM users.dial WHERE id = $1`, id)
}

func (repository *PostgresProfileRepository) DeleteDials(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.dial WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "delete_dials")
}

// # Grades

const gradeColumns = `id, user_id, major, college, degree, pic`

func (repository *PostgresProfileRepository) ListGrades(ctx context.Context, userID int64, params pagination.Params) ([]*Grade, int, error) {
	querier := repository.db.Querier(ctx)

	var total int
	if err := querier.QueryRow(ctx, `SELECT count(*) FROM users.grade WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_grades")
	}

	query := `SELECT ` + gradeColumns + ` FROM users.grade WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := querier.Query(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_grades")
	}
	defer rows.Close()

	grades := make([]*Grade, 0, params.Limit)
	for rows.Next() {
		grade := &Grade{}
		if err := rows.Scan(&grade.ID, &grade.UserID, &grade.Major, &grade.College, &grade.Degree, &grade.Pic); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_grade")
		}
		grades = append(grades, grade)
	}
	return grades, total, dberr.Wrap(rows.Err(), "list_grades")
}

func (repository *PostgresProfileRepository) GetGrade(ctx context.Context, id int64) (*Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM users.grade WHERE id = $1`

	grade := &Grade{}
	err := repository.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&grade.ID, &grade.UserID, &grade.Major, &grade.College, &grade.Degree, &grade.Pic,
	)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_grade", "Grade")
	}
	return grade, nil
}

func (repository *PostgresProfileRepository) CreateGrade(ctx context.Context, grade *Grade) error {
	const query = `
		INSERT INTO users.grade (user_id, major, college, degree, pic)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		grade.UserID, grade.Major, grade.College, grade.Degree, grade.Pic,
	).Scan(&grade.ID)
	return dberr.Wrap(err, "create_grade")
}

func (repository *PostgresProfileRepository) UpdateGrade(ctx context.Context, grade *Grade) error {
	const query = `UPDATE users.grade SET major = $2, college = $3, degree = $4, pic = $5 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_grade", "Grade", query,
		grade.ID, grade.Major, grade.College, grade.Degree, grade.Pic)
}

func (repository *PostgresProfileRepository) DeleteGrade(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_grade", "Grade", `DELETE FROM users.grade WHERE id = $1`, id)
}

func (repository *PostgresProfileRepository) DeleteGrades(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.grade WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "delete_grades")
}
