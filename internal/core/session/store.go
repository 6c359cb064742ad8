// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type Repository interface {
	List(ctx context.Context, params pagination.Params) ([]*Session, int, error)
	Get(ctx context.Context, id int64) (*Session, error)
	Create(ctx context.Context, session *Session) error
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id int64) error

	GetDetails(ctx context.Context, sessionID int64) (*Details, error)
	PutDetails(ctx context.Context, details *Details) error
	DeleteDetails(ctx context.Context, sessionID int64) error

	ListMembers(ctx context.Context, sessionID int64, params pagination.Params) ([]*Member, int, error)
	GetMember(ctx context.Context, sessionID, userID int64) (*Member, error)
	AddMember(ctx context.Context, member *Member) error
	UpdateMember(ctx context.Context, member *Member) error
	RemoveMember(ctx context.Context, sessionID, userID int64) error
	RemoveMembers(ctx context.Context, sessionID int64) error

	ListTasks(ctx context.Context, sessionID, userID int64, params pagination.Params) ([]*Task, int, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
	// DeleteTasks removes the tasks of one member, or of the whole session
	// when userID is zero.
	DeleteTasks(ctx context.Context, sessionID, userID int64) error

	ListDeadlines(ctx context.Context, taskID int64, params pagination.Params) ([]*Deadline, int, error)
	GetDeadline(ctx context.Context, id int64) (*Deadline, error)
	CreateDeadline(ctx context.Context, deadline *Deadline) error
	UpdateDeadline(ctx context.Context, deadline *Deadline) error
	DeleteDeadline(ctx context.Context, id int64) error
	// DeleteDeadlines removes the deadlines of every task matched the same
	// way as DeleteTasks. A non-zero taskID narrows it to one task.
	DeleteDeadlines(ctx context.Context, sessionID, userID, taskID int64) error
}
