// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/kanoon/kanoon/internal/core/session"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type memoryRepository struct {
	sessions  *memtable.Table[session.Session]
	details   *memtable.Table[session.Details]
	members   *memtable.Table[session.Member]
	tasks     *memtable.Table[session.Task]
	deadlines *memtable.Table[session.Deadline]
	// failDelete makes the final session delete fail.
	failDelete bool
}

func newTestService() (*session.Service, *memoryRepository) {
	repo := &memoryRepository{
		sessions:  memtable.New[session.Session](),
		details:   memtable.New[session.Details](),
		members:   memtable.New[session.Member](),
		tasks:     memtable.New[session.Task](),
		deadlines: memtable.New[session.Deadline](),
	}
	tx := memtable.NewTx(repo.sessions, repo.details, repo.members, repo.tasks, repo.deadlines)
	return session.NewService(repo, tx, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func sessionByID(id int64) func(session.Session) bool {
	return func(s session.Session) bool { return s.ID == id }
}

func memberByKey(sessionID, userID int64) func(session.Member) bool {
	return func(m session.Member) bool { return m.SessionID == sessionID && m.UserID == userID }
}

func taskByID(id int64) func(session.Task) bool {
	return func(t session.Task) bool { return t.ID == id }
}

func (repo *memoryRepository) List(_ context.Context, params pagination.Params) ([]*session.Session, int, error) {
	items, total := memtable.Page(repo.sessions.Select(nil), params)
	return items, total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*session.Session, error) {
	found, ok := repo.sessions.Find(sessionByID(id))
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &found, nil
}

func (repo *memoryRepository) Create(_ context.Context, s *session.Session) error {
	s.ID = repo.sessions.NextID()
	repo.sessions.Insert(*s)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, s *session.Session) error {
	if !repo.sessions.Replace(sessionByID(s.ID), *s) {
		return apperr.NotFound("Session")
	}
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if repo.failDelete {
		return apperr.StorageFailure("", context.DeadlineExceeded)
	}
	if repo.sessions.Remove(sessionByID(id)) == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

func (repo *memoryRepository) GetDetails(_ context.Context, sessionID int64) (*session.Details, error) {
	found, ok := repo.details.Find(func(d session.Details) bool { return d.SessionID == sessionID })
	if !ok {
		return nil, apperr.NotFound("Session details")
	}
	return &found, nil
}

func (repo *memoryRepository) PutDetails(_ context.Context, d *session.Details) error {
	if !repo.details.Replace(func(existing session.Details) bool { return existing.SessionID == d.SessionID }, *d) {
		repo.details.Insert(*d)
	}
	return nil
}

func (repo *memoryRepository) DeleteDetails(_ context.Context, sessionID int64) error {
	repo.details.Remove(func(d session.Details) bool { return d.SessionID == sessionID })
	return nil
}

func (repo *memoryRepository) ListMembers(_ context.Context, sessionID int64, params pagination.Params) ([]*session.Member, int, error) {
	items, total := memtable.Page(repo.members.Select(func(m session.Member) bool { return m.SessionID == sessionID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetMember(_ context.Context, sessionID, userID int64) (*session.Member, error) {
	found, ok := repo.members.Find(memberByKey(sessionID, userID))
	if !ok {
		return nil, apperr.NotFound("Session member")
	}
	return &found, nil
}

func (repo *memoryRepository) AddMember(_ context.Context, m *session.Member) error {
	if repo.members.Any(memberByKey(m.SessionID, m.UserID)) {
		return apperr.Conflict("Duplicate value violates session_user_pkey")
	}
	repo.members.Insert(*m)
	return nil
}

func (repo *memoryRepository) UpdateMember(_ context.Context, m *session.Member) error {
	if !repo.members.Replace(memberByKey(m.SessionID, m.UserID), *m) {
		return apperr.NotFound("Session member")
	}
	return nil
}

func (repo *memoryRepository) RemoveMember(_ context.Context, sessionID, userID int64) error {
	if repo.members.Remove(memberByKey(sessionID, userID)) == 0 {
		return apperr.NotFound("Session member")
	}
	return nil
}

func (repo *memoryRepository) RemoveMembers(_ context.Context, sessionID int64) error {
	repo.members.Remove(func(m session.Member) bool { return m.SessionID == sessionID })
	return nil
}

func (repo *memoryRepository) ListTasks(_ context.Context, sessionID, userID int64, params pagination.Params) ([]*session.Task, int, error) {
	items, total := memtable.Page(repo.tasks.Select(func(t session.Task) bool {
		return t.SessionID == sessionID && t.UserID == userID
	}), params)
	return items, total, nil
}

func (repo *memoryRepository) GetTask(_ context.Context, id int64) (*session.Task, error) {
	found, ok := repo.tasks.Find(taskByID(id))
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateTask(_ context.Context, t *session.Task) error {
	t.ID = repo.tasks.NextID()
	repo.tasks.Insert(*t)
	return nil
}

func (repo *memoryRepository) UpdateTask(_ context.Context, t *session.Task) error {
	if !repo.tasks.Replace(taskByID(t.ID), *t) {
		return apperr.NotFound("Task")
	}
	return nil
}

func (repo *memoryRepository) DeleteTask(_ context.Context, id int64) error {
	if repo.tasks.Remove(taskByID(id)) == 0 {
		return apperr.NotFound("Task")
	}
	return nil
}

func (repo *memoryRepository) DeleteTasks(_ context.Context, sessionID, userID int64) error {
	repo.tasks.Remove(func(t session.Task) bool {
		return t.SessionID == sessionID && (userID == 0 || t.UserID == userID)
	})
	return nil
}

func deadlineByID(id int64) func(session.Deadline) bool {
	return func(d session.Deadline) bool { return d.ID == id }
}

func (repo *memoryRepository) ListDeadlines(_ context.Context, taskID int64, params pagination.Params) ([]*session.Deadline, int, error) {
	items, total := memtable.Page(repo.deadlines.Select(func(d session.Deadline) bool { return d.TaskID == taskID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetDeadline(_ context.Context, id int64) (*session.Deadline, error) {
	found, ok := repo.deadlines.Find(deadlineByID(id))
	if !ok {
		return nil, apperr.NotFound("Deadline")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateDeadline(_ context.Context, d *session.Deadline) error {
	if !repo.tasks.Any(taskByID(d.TaskID)) {
		return apperr.NotFound("Task")
	}
	d.ID = repo.deadlines.NextID()
	repo.deadlines.Insert(*d)
	return nil
}

func (repo *memoryRepository) UpdateDeadline(_ context.Context, d *session.Deadline) error {
	if !repo.deadlines.Replace(deadlineByID(d.ID), *d) {
		return apperr.NotFound("Deadline")
	}
	return nil
}

func (repo *memoryRepository) DeleteDeadline(_ context.Context, id int64) error {
	if repo.deadlines.Remove(deadlineByID(id)) == 0 {
		return apperr.NotFound("Deadline")
	}
	return nil
}

func (repo *memoryRepository) DeleteDeadlines(_ context.Context, sessionID, userID, taskID int64) error {
	repo.deadlines.Remove(func(d session.Deadline) bool {
		task, ok := repo.tasks.Find(taskByID(d.TaskID))
		return ok && task.SessionID == sessionID &&
			(userID == 0 || task.UserID == userID) &&
			(taskID == 0 || task.ID == taskID)
	})
	return nil
}
