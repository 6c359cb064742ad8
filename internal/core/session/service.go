// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	repo   Repository
	tx     postgres.TxRunner
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, tx postgres.TxRunner, logger *slog.Logger) *Service {
	return &Service{repo: repo, tx: tx, logger: logger, now: time.Now}
}

// # Sessions

type Input struct {
	Subject  *string    `json:"subject"`
	Datetime *time.Time `json:"datetime"`
	Done     *bool      `json:"done"`
}

func validateSession(session *Session) error {
	return (&validate.Validator{}).
		Required("subject", session.Subject).
		MaxLen("subject", session.Subject, 100).
		Custom("datetime", session.Datetime.IsZero(), "This field is required").
		Err()
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Session, int, error) {
	return service.repo.List(ctx, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Session, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Session, error) {
	session := &Session{
		Subject:  pointer.Val(input.Subject),
		Datetime: pointer.Val(input.Datetime),
		Done:     pointer.Val(input.Done),
	}
	if err := validateSession(session); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Session, error) {
	session, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Subject = pointer.Fallback(input.Subject, session.Subject)
	session.Datetime = pointer.Fallback(input.Datetime, session.Datetime)
	session.Done = pointer.Fallback(input.Done, session.Done)
	if err := validateSession(session); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session with its deadlines, tasks, members and details.
func (service *Service) Delete(ctx context.Context, id int64) error {
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.DeleteDeadlines(ctx, id, 0, 0); err != nil {
			return err
		}
		if err := service.repo.DeleteTasks(ctx, id, 0); err != nil {
			return err
		}
		if err := service.repo.RemoveMembers(ctx, id); err != nil {
			return err
		}
		if err := service.repo.DeleteDetails(ctx, id); err != nil {
			return err
		}
		return service.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "session_deleted", slog.Int64("session_id", id))
	return nil
}

// # Details

type DetailsInput struct {
	Number    *int    `json:"number"`
	Kind      *string `json:"kind"`
	Location  *string `json:"location"`
	Approvals *string `json:"approvals"`
}

// GetDetails returns the details of an existing session, empty if none were
// written yet.
func (service *Service) GetDetails(ctx context.Context, sessionID int64) (*Details, error) {
	if _, err := service.repo.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	details, err := service.repo.GetDetails(ctx, sessionID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return &Details{SessionID: sessionID}, nil
	}
	return details, err
}

// PutDetails replaces the details record.
func (service *Service) PutDetails(ctx context.Context, sessionID int64, input DetailsInput) (*Details, error) {
	if _, err := service.repo.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	details := &Details{
		SessionID: sessionID,
		Number:    input.Number,
		Kind:      input.Kind,
		Location:  input.Location,
		Approvals: input.Approvals,
	}

	v := &validate.Validator{}
	if details.Kind != nil {
		v.MaxLen("kind", *details.Kind, 50)
	}
	if details.Location != nil {
		v.MaxLen("location", *details.Location, 100)
	}
	if details.Number != nil {
		v.Custom("number", *details.Number < 0, "Must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.PutDetails(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// # Members

type MemberInput struct {
	UserID  *int64 `json:"user_id"`
	Present *bool  `json:"present"`
}

func (service *Service) ListMembers(ctx context.Context, sessionID int64, params pagination.Params) ([]*Member, int, error) {
	if _, err := service.repo.Get(ctx, sessionID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListMembers(ctx, sessionID, params)
}

func (service *Service) GetMember(ctx context.Context, sessionID, userID int64) (*Member, error) {
	return service.repo.GetMember(ctx, sessionID, userID)
}

func (service *Service) AddMember(ctx context.Context, sessionID int64, input MemberInput) (*Member, error) {
	if input.UserID == nil || *input.UserID <= 0 {
		return nil, validate.RequiredError("user_id", "This field is required")
	}
	if _, err := service.repo.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	member := &Member{SessionID: sessionID, UserID: *input.UserID, Present: pointer.Val(input.Present)}
	if err := service.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (service *Service) UpdateMember(ctx context.Context, sessionID, userID int64, input MemberInput) (*Member, error) {
	member, err := service.repo.GetMember(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	member.Present = pointer.Fallback(input.Present, member.Present)
	if err := service.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember drops a member and the tasks assigned to them.
func (service *Service) RemoveMember(ctx context.Context, sessionID, userID int64) error {
	return service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.DeleteDeadlines(ctx, sessionID, userID, 0); err != nil {
			return err
		}
		if err := service.repo.DeleteTasks(ctx, sessionID, userID); err != nil {
			return err
		}
		return service.repo.RemoveMember(ctx, sessionID, userID)
	})
}

// # Tasks

type TaskInput struct {
	Subject     *string    `json:"subject"`
	Priority    *string    `json:"priority"`
	Done        *bool      `json:"done"`
	DoneTime    *time.Time `json:"done_time"`
	Description *string    `json:"description"`
}

/*
apply merges input into task.

Marking a task done stamps done_time unless the payload carries one;
reopening it clears the stamp.
*/
func (input TaskInput) apply(task *Task, now time.Time) {
	wasDone := task.Done
	task.Subject = pointer.Fallback(input.Subject, task.Subject)
	task.Priority = pointer.Fallback(input.Priority, task.Priority)
	task.Done = pointer.Fallback(input.Done, task.Done)
	if input.Description != nil {
		task.Description = input.Description
	}

	switch {
	case input.DoneTime != nil:
		task.DoneTime = input.DoneTime
	case task.Done && !wasDone:
		task.DoneTime = &now
	case !task.Done:
		task.DoneTime = nil
	}
}

func validateTask(task *Task) error {
	return (&validate.Validator{}).
		Required("subject", task.Subject).
		MaxLen("subject", task.Subject, 50).
		OneOf("priority", task.Priority, PriorityHigh, PriorityNormal, PriorityLow).
		Err()
}

func (service *Service) ListTasks(ctx context.Context, sessionID, userID int64, params pagination.Params) ([]*Task, int, error) {
	if _, err := service.repo.GetMember(ctx, sessionID, userID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListTasks(ctx, sessionID, userID, params)
}

// GetTask loads a task addressed through its member path. A task of another
// member or session is not found.
func (service *Service) GetTask(ctx context.Context, sessionID, userID, taskID int64) (*Task, error) {
	task, err := service.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.SessionID != sessionID || task.UserID != userID {
		return nil, apperr.NotFound("Task")
	}
	return task, nil
}

func (service *Service) CreateTask(ctx context.Context, sessionID, userID int64, input TaskInput) (*Task, error) {
	if _, err := service.repo.GetMember(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	task := &Task{SessionID: sessionID, UserID: userID, Priority: PriorityNormal}
	input.apply(task, service.now())
	if err := validateTask(task); err != nil {
		return nil, err
	}
	if err := service.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (service *Service) UpdateTask(ctx context.Context, sessionID, userID, taskID int64, input TaskInput) (*Task, error) {
	task, err := service.GetTask(ctx, sessionID, userID, taskID)
	if err != nil {
		return nil, err
	}
	input.apply(task, service.now())
	if err := validateTask(task); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (service *Service) DeleteTask(ctx context.Context, sessionID, userID, taskID int64) error {
	if _, err := service.GetTask(ctx, sessionID, userID, taskID); err != nil {
		return err
	}
	return service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.DeleteDeadlines(ctx, sessionID, userID, taskID); err != nil {
			return err
		}
		return service.repo.DeleteTask(ctx, taskID)
	})
}

// # Deadlines

type DeadlineInput struct {
	ExpirationDatetime *time.Time `json:"expiration_datetime"`
}

func (service *Service) ListDeadlines(ctx context.Context, sessionID, userID, taskID int64, params pagination.Params) ([]*Deadline, int, error) {
	if _, err := service.GetTask(ctx, sessionID, userID, taskID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListDeadlines(ctx, taskID, params)
}

// GetDeadline resolves the task path first; a deadline of another task is
// not found.
func (service *Service) GetDeadline(ctx context.Context, sessionID, userID, taskID, deadlineID int64) (*Deadline, error) {
	if _, err := service.GetTask(ctx, sessionID, userID, taskID); err != nil {
		return nil, err
	}
	deadline, err := service.repo.GetDeadline(ctx, deadlineID)
	if err != nil {
		return nil, err
	}
	if deadline.TaskID != taskID {
		return nil, apperr.NotFound("Deadline")
	}
	return deadline, nil
}

func (service *Service) CreateDeadline(ctx context.Context, sessionID, userID, taskID int64, input DeadlineInput) (*Deadline, error) {
	if _, err := service.GetTask(ctx, sessionID, userID, taskID); err != nil {
		return nil, err
	}
	if input.ExpirationDatetime == nil || input.ExpirationDatetime.IsZero() {
		return nil, validate.RequiredError("expiration_datetime", "This field is required")
	}

	deadline := &Deadline{TaskID: taskID, ExpirationDatetime: *input.ExpirationDatetime}
	if err := service.repo.CreateDeadline(ctx, deadline); err != nil {
		return nil, err
	}
	return deadline, nil
}

func (service *Service) UpdateDeadline(ctx context.Context, sessionID, userID, taskID, deadlineID int64, input DeadlineInput) (*Deadline, error) {
	deadline, err := service.GetDeadline(ctx, sessionID, userID, taskID, deadlineID)
	if err != nil {
		return nil, err
	}
	if input.ExpirationDatetime != nil {
		if input.ExpirationDatetime.IsZero() {
			return nil, validate.RequiredError("expiration_datetime", "This field is required")
		}
		deadline.ExpirationDatetime = *input.ExpirationDatetime
	}
	if err := service.repo.UpdateDeadline(ctx, deadline); err != nil {
		return nil, err
	}
	return deadline, nil
}

func (service *Service) DeleteDeadline(ctx context.Context, sessionID, userID, taskID, deadlineID int64) error {
	if _, err := service.GetDeadline(ctx, sessionID, userID, taskID, deadlineID); err != nil {
		return err
	}
	return service.repo.DeleteDeadline(ctx, deadlineID)
}
