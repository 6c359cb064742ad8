// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// end_time is a TIME column; it travels as "HH:MM" text.
const lectureSessionColumns = `id, lecture_id, number, datetime, to_char(end_time, 'HH24:MI') AS end_time, subject, location`

func (repository *PostgresRepository) ListLectureSessions(ctx context.Context, lectureID int64, params pagination.Params) ([]*LectureSession, int, error) {
	sessions, total, err := postgres.Page[LectureSession](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.lecture_session WHERE lecture_id = $1`,
		`SELECT `+lectureSessionColumns+` FROM edu.lecture_session WHERE lecture_id = $1 ORDER BY number`,
		params, lectureID,
	)
	return sessions, total, dberr.Wrap(err, "list_lecture_sessions")
}

func (repository *PostgresRepository) GetLectureSession(ctx context.Context, id int64) (*LectureSession, error) {
	session, err := postgres.One[LectureSession](ctx, repository.db.Querier(ctx),
		`SELECT `+lectureSessionColumns+` FROM edu.lecture_session WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_lecture_session", "Lecture session")
	}
	return session, nil
}

// CreateLectureSession numbers the row after the highest existing number, so
// numbers are not reused after a delete. Two concurrent inserts collide on
// (lecture_id, number) and the loser gets a conflict.
func (repository *PostgresRepository) CreateLectureSession(ctx context.Context, session *LectureSession) error {
	const query = `
		INSERT INTO edu.lecture_session (lecture_id, number, datetime, end_time, subject, location)
		SELECT $1, COALESCE(MAX(number), 0) + 1, $2, $3::text::time, $4, $5
		FROM edu.lecture_session WHERE lecture_id = $1
		RETURNING id, number`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		session.LectureID, session.Datetime, session.EndTime, session.Subject, session.Location,
	).Scan(&session.ID, &session.Number)
	return dberr.Wrap(err, "create_lecture_session")
}

func (repository *PostgresRepository) UpdateLectureSession(ctx context.Context, session *LectureSession) error {
	const query = `
		UPDATE edu.lecture_session
		SET datetime = $2, end_time = $3::text::time, subject = $4, location = $5
		WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_lecture_session", "Lecture session", query,
		session.ID, session.Datetime, session.EndTime, session.Subject, session.Location)
}

func (repository *PostgresRepository) DeleteLectureSession(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_lecture_session", "Lecture session",
		`DELETE FROM edu.lecture_session WHERE id = $1`, id)
}

func (repository *PostgresRepository) DeleteLectureSessions(ctx context.Context, lectureID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM edu.lecture_session WHERE lecture_id = $1`, lectureID)
	return dberr.Wrap(err, "delete_lecture_sessions")
}

// # Attendance

const attendanceColumns = `session_id, student_id, present, homework_mark, description`

func (repository *PostgresRepository) ListAttendance(ctx context.Context, sessionID int64, params pagination.Params) ([]*Attendance, int, error) {
	rows, total, err := postgres.Page[Attendance](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.lecture_user_session WHERE session_id = $1`,
		`SELECT `+attendanceColumns+` FROM edu.lecture_user_session WHERE session_id = $1 ORDER BY student_id`,
		params, sessionID,
	)
	return rows, total, dberr.Wrap(err, "list_attendance")
}

func (repository *PostgresRepository) GetAttendance(ctx context.Context, sessionID, studentID int64) (*Attendance, error) {
	row, err := postgres.One[Attendance](ctx, repository.db.Querier(ctx),
		`SELECT `+attendanceColumns+` FROM edu.lecture_user_session WHERE session_id = $1 AND student_id = $2`,
		sessionID, studentID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_attendance", "Attendance")
	}
	return row, nil
}

func (repository *PostgresRepository) CreateAttendance(ctx context.Context, attendance *Attendance) error {
	const query = `
		INSERT INTO edu.lecture_user_session (session_id, student_id, present, homework_mark, description)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		attendance.SessionID, attendance.StudentID, attendance.Present, attendance.HomeworkMark, attendance.Description)
	return dberr.Wrap(err, "create_attendance")
}

func (repository *PostgresRepository) UpdateAttendance(ctx context.Context, attendance *Attendance) error {
	const query = `
		UPDATE edu.lecture_user_session
		SET present = $3, homework_mark = $4, description = $5
		WHERE session_id = $1 AND student_id = $2`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_attendance", "Attendance", query,
		attendance.SessionID, attendance.StudentID, attendance.Present, attendance.HomeworkMark, attendance.Description)
}

func (repository *PostgresRepository) DeleteAttendance(ctx context.Context, sessionID, studentID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_attendance", "Attendance",
		`DELETE FROM edu.lecture_user_session WHERE session_id = $1 AND student_id = $2`, sessionID, studentID)
}

func (repository *PostgresRepository) DeleteAttendances(ctx context.Context, lectureID, sessionID, studentID int64) error {
	const query = `
		DELETE FROM edu.lecture_user_session a
		USING edu.lecture_session s
		WHERE a.session_id = s.id
		  AND s.lecture_id = $1
		  AND ($2::bigint = 0 OR a.session_id = $2)
		  AND ($3::bigint = 0 OR a.student_id = $3)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, lectureID, sessionID, studentID)
	return dberr.Wrap(err, "delete_attendances")
}
