// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

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

const sessionColumns = `id, subject, datetime, done, created_at`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Session, int, error) {
	sessions, total, err := postgres.Page[Session](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.session`,
		`SELECT `+sessionColumns+` FROM org.session ORDER BY datetime DESC, id DESC`,
		params,
	)
	return sessions, total, dberr.Wrap(err, "list_sessions")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Session, error) {
	session, err := postgres.One[Session](ctx, repository.db.Querier(ctx),
		`SELECT `+sessionColumns+` FROM org.session WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_session", "Session")
	}
	return session, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, session *Session) error {
	const query = `
		INSERT INTO org.session (subject, datetime, done)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		session.Subject, session.Datetime, session.Done,
	).Scan(&session.ID, &session.CreatedAt)
	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresRepository) Update(ctx context.Context, session *Session) error {
	const query = `UPDATE org.session SET subject = $2, datetime = $3, done = $4 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_session", "Session", query,
		session.ID, session.Subject, session.Datetime, session.Done)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_session", "Session",
		`DELETE FROM org.session WHERE id = $1`, id)
}

// # Details

func (repository *PostgresRepository) GetDetails(ctx context.Context, sessionID int64) (*Details, error) {
	details, err := postgres.One[Details](ctx, repository.db.Querier(ctx),
		`SELECT session_id, number, kind, location, approvals FROM org.session_details WHERE session_id = $1`,
		sessionID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_session_details", "Session details")
	}
	return details, nil
}

func (repository *PostgresRepository) PutDetails(ctx context.Context, details *Details) error {
	const query = `
		INSERT INTO org.session_details (session_id, number, kind, location, approvals)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO UPDATE SET
			number = EXCLUDED.number,
			kind = EXCLUDED.kind,
			location = EXCLUDED.location,
			approvals = EXCLUDED.approvals`

	_, err := repository.db.Querier(ctx).Exec(ctx, query,
		details.SessionID, details.Number, details.Kind, details.Location, details.Approvals)
	return dberr.Wrap(err, "put_session_details")
}

func (repository *PostgresRepository) DeleteDetails(ctx context.Context, sessionID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM org.session_details WHERE session_id = $1`, sessionID)
	return dberr.Wrap(err, "delete_session_details")
}

// # Members

const memberColumns = `session_id, user_id, present`

func (repository *PostgresRepository) ListMembers(ctx context.Context, sessionID int64, params pagination.Params) ([]*Member, int, error) {
	members, total, err := postgres.Page[Member](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.session_user WHERE session_id = $1`,
		`SELECT `+memberColumns+` FROM org.session_user WHERE session_id = $1 ORDER BY user_id`,
		params, sessionID,
	)
	return members, total, dberr.Wrap(err, "list_session_users")
}

func (repository *PostgresRepository) GetMember(ctx context.Context, sessionID, userID int64) (*Member, error) {
	member, err := postgres.One[Member](ctx, repository.db.Querier(ctx),
		`SELECT `+memberColumns+` FROM org.session_user WHERE session_id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_session_user", "Session member")
	}
	return member, nil
}

func (repository *PostgresRepository) AddMember(ctx context.Context, member *Member) error {
	_, err := repository.db.Querier(ctx).Exec(ctx,
		`INSERT INTO org.session_user (session_id, user_id, present) VALUES ($1, $2, $3)`,
		member.SessionID, member.UserID, member.Present)
	return dberr.Wrap(err, "add_session_user")
}

func (repository *PostgresRepository) UpdateMember(ctx context.Context, member *Member) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_session_user", "Session member",
		`UPDATE org.session_user SET present = $3 WHERE session_id = $1 AND user_id = $2`,
		member.SessionID, member.UserID, member.Present)
}

func (repository *PostgresRepository) RemoveMember(ctx context.Context, sessionID, userID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "remove_session_user", "Session member",
		`DELETE FROM org.session_user WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
}

func (repository *PostgresRepository) RemoveMembers(ctx context.Context, sessionID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM org.session_user WHERE session_id = $1`, sessionID)
	return dberr.Wrap(err, "remove_session_users")
}

// # Tasks

const taskColumns = `id, session_id, user_id, subject, priority, done, done_time, description`

func (repository *PostgresRepository) ListTasks(ctx context.Context, sessionID, userID int64, params pagination.Params) ([]*Task, int, error) {
	tasks, total, err := postgres.Page[Task](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.task WHERE session_id = $1 AND user_id = $2`,
		`SELECT `+taskColumns+` FROM org.task WHERE session_id = $1 AND user_id = $2 ORDER BY id`,
		params, sessionID, userID,
	)
	return tasks, total, dberr.Wrap(err, "list_tasks")
}

func (repository *PostgresRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	task, err := postgres.One[Task](ctx, repository.db.Querier(ctx),
		`SELECT `+taskColumns+` FROM org.task WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_task", "Task")
	}
	return task, nil
}

func (repository *PostgresRepository) CreateTask(ctx context.Context, task *Task) error {
	const query = `
		INSERT INTO org.task (session_id, user_id, subject, priority, done, done_time, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		task.SessionID, task.UserID, task.Subject, task.Priority,
		task.Done, task.DoneTime, task.Description,
	).Scan(&task.ID)
	return dberr.Wrap(err, "create_task")
}

func (repository *PostgresRepository) UpdateTask(ctx context.Context, task *Task) error {
	const query = `
		UPDATE org.task
		SET subject = $2, priority = $3, done = $4, done_time = $5, description = $6
		WHERE id = $1`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_task", "Task", query,
		task.ID, task.Subject, task.Priority, task.Done, task.DoneTime, task.Description)
}

func (repository *PostgresRepository) DeleteTask(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_task", "Task",
		`DELETE FROM org.task WHERE id = $1`, id)
}

func (repository *PostgresRepository) DeleteTasks(ctx context.Context, sessionID, userID int64) error {
	const query = `DELETE FROM org.task WHERE session_id = $1 AND ($2::bigint = 0 OR user_id = $2)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, sessionID, userID)
	return dberr.Wrap(err, "delete_tasks")
}

// # Deadlines

const deadlineColumns = `id, task_id, expiration_datetime`

func (repository *PostgresRepository) ListDeadlines(ctx context.Context, taskID int64, params pagination.Params) ([]*Deadline, int, error) {
	deadlines, total, err := postgres.Page[Deadline](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM org.deadline WHERE task_id = $1`,
		`SELECT `+deadlineColumns+` FROM org.deadline WHERE task_id = $1 ORDER BY expiration_datetime, id`,
		params, taskID,
	)
	return deadlines, total, dberr.Wrap(err, "list_deadlines")
}

func (repository *PostgresRepository) GetDeadline(ctx context.Context, id int64) (*Deadline, error) {
	deadline, err := postgres.One[Deadline](ctx, repository.db.Querier(ctx),
		`SELECT `+deadlineColumns+` FROM org.deadline WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_deadline", "Deadline")
	}
	return deadline, nil
}

func (repository *PostgresRepository) CreateDeadline(ctx context.Context, deadline *Deadline) error {
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`INSERT INTO org.deadline (task_id, expiration_datetime) VALUES ($1, $2) RETURNING id`,
		deadline.TaskID, deadline.ExpirationDatetime,
	).Scan(&deadline.ID)
	return dberr.Wrap(err, "create_deadline")
}

func (repository *PostgresRepository) UpdateDeadline(ctx context.Context, deadline *Deadline) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_deadline", "Deadline",
		`UPDATE org.deadline SET expiration_datetime = $2 WHERE id = $1`,
		deadline.ID, deadline.ExpirationDatetime)
}

func (repository *PostgresRepository) DeleteDeadline(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_deadline", "Deadline",
		`DELETE FROM org.deadline WHERE id = $1`, id)
}

func (repository *PostgresRepository) DeleteDeadlines(ctx context.Context, sessionID, userID, taskID int64) error {
	const query = `
		DELETE FROM org.deadline d
		USING org.task t
		WHERE d.task_id = t.id
		  AND t.session_id = $1
		  AND ($2::bigint = 0 OR t.user_id = $2)
		  AND ($3::bigint = 0 OR t.id = $3)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, sessionID, userID, taskID)
	return dberr.Wrap(err, "delete_deadlines")
}
