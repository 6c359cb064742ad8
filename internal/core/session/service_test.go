// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/core/session"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

func seed(t *testing.T, service *session.Service, userIDs ...int64) *session.Session {
	t.Helper()
	ctx := context.Background()

	created, err := service.Create(ctx, session.Input{
		Subject:  pointer.To("Weekly board"),
		Datetime: pointer.To(time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	for _, userID := range userIDs {
		_, err := service.AddMember(ctx, created.ID, session.MemberInput{UserID: pointer.To(userID), Present: pointer.To(true)})
		require.NoError(t, err)
	}
	return created
}

/*
TestTasks_DoneTime stamps completion and clears it on reopen.
*/
func TestTasks_DoneTime(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	s := seed(t, service, 4)

	task, err := service.CreateTask(ctx, s.ID, 4, session.TaskInput{Subject: pointer.To("Book the hall")})
	require.NoError(t, err)
	assert.Equal(t, session.PriorityNormal, task.Priority)
	assert.Nil(t, task.DoneTime)

	task, err = service.UpdateTask(ctx, s.ID, 4, task.ID, session.TaskInput{Done: pointer.To(true)})
	require.NoError(t, err)
	require.NotNil(t, task.DoneTime)

	task, err = service.UpdateTask(ctx, s.ID, 4, task.ID, session.TaskInput{Done: pointer.To(false)})
	require.NoError(t, err)
	assert.Nil(t, task.DoneTime)

	_, err = service.UpdateTask(ctx, s.ID, 4, task.ID, session.TaskInput{Priority: pointer.To("urgent")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestTasks_ScopedToMember hides tasks addressed through another member.
*/
func TestTasks_ScopedToMember(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	s := seed(t, service, 4, 5)

	task, err := service.CreateTask(ctx, s.ID, 4, session.TaskInput{Subject: pointer.To("Minutes")})
	require.NoError(t, err)

	_, err = service.GetTask(ctx, s.ID, 5, task.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(service.DeleteTask(ctx, s.ID, 5, task.ID), apperr.CodeNotFound))

	_, err = service.CreateTask(ctx, s.ID, 9, session.TaskInput{Subject: pointer.To("Stranger")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestRemoveMember drops the member's tasks only.
*/
func TestRemoveMember(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()
	s := seed(t, service, 4, 5)

	for _, userID := range []int64{4, 5} {
		_, err := service.CreateTask(ctx, s.ID, userID, session.TaskInput{Subject: pointer.To("Report")})
		require.NoError(t, err)
	}

	require.NoError(t, service.RemoveMember(ctx, s.ID, 4))
	assert.Equal(t, 1, repo.tasks.Len())
	assert.Equal(t, 1, repo.members.Len())
}

/*
TestDelete_AllOrNothing keeps every child row when the final delete fails.
*/
func TestDelete_AllOrNothing(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()
	s := seed(t, service, 4)

	_, err := service.PutDetails(ctx, s.ID, session.DetailsInput{Number: pointer.To(12), Location: pointer.To("Office")})
	require.NoError(t, err)
	task, err := service.CreateTask(ctx, s.ID, 4, session.TaskInput{Subject: pointer.To("Agenda")})
	require.NoError(t, err)
	_, err = service.CreateDeadline(ctx, s.ID, 4, task.ID, session.DeadlineInput{
		ExpirationDatetime: pointer.To(time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	repo.failDelete = true
	assert.True(t, apperr.HasCode(service.Delete(ctx, s.ID), apperr.CodeStorage))
	assert.Equal(t, 1, repo.details.Len())
	assert.Equal(t, 1, repo.members.Len())
	assert.Equal(t, 1, repo.tasks.Len())
	assert.Equal(t, 1, repo.deadlines.Len())

	repo.failDelete = false
	require.NoError(t, service.Delete(ctx, s.ID))
	assert.Zero(t, repo.details.Len()+repo.members.Len()+repo.tasks.Len()+repo.deadlines.Len()+repo.sessions.Len())
}

/*
TestDetails returns an empty record before the first write.
*/
func TestDetails(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	s := seed(t, service)

	details, err := service.GetDetails(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, &session.Details{SessionID: s.ID}, details)

	_, err = service.PutDetails(ctx, s.ID, session.DetailsInput{Number: pointer.To(-1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.GetDetails(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestDeadlines covers the deadline list of one task.

A task can hold several deadlines. They are only reachable through their
own task path, and they go away with the task or with the member.
*/
func TestDeadlines(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()
	s := seed(t, service, 4, 5)
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	task, err := service.CreateTask(ctx, s.ID, 4, session.TaskInput{Subject: pointer.To("Budget draft")})
	require.NoError(t, err)
	other, err := service.CreateTask(ctx, s.ID, 5, session.TaskInput{Subject: pointer.To("Venue")})
	require.NoError(t, err)

	first, err := service.CreateDeadline(ctx, s.ID, 4, task.ID, session.DeadlineInput{ExpirationDatetime: pointer.To(due)})
	require.NoError(t, err)
	_, err = service.CreateDeadline(ctx, s.ID, 4, task.ID, session.DeadlineInput{ExpirationDatetime: pointer.To(due.AddDate(0, 0, 7))})
	require.NoError(t, err)
	_, err = service.CreateDeadline(ctx, s.ID, 5, other.ID, session.DeadlineInput{ExpirationDatetime: pointer.To(due)})
	require.NoError(t, err)

	deadlines, total, err := service.ListDeadlines(ctx, s.ID, 4, task.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, deadlines, 2)

	tests := []struct {
		name   string
		userID int64
		taskID int64
	}{
		{name: "other member's path", userID: 5, taskID: task.ID},
		{name: "other task", userID: 5, taskID: other.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GetDeadline(ctx, s.ID, tt.userID, tt.taskID, first.ID)
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
		})
	}

	_, err = service.CreateDeadline(ctx, s.ID, 4, task.ID, session.DeadlineInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	moved, err := service.UpdateDeadline(ctx, s.ID, 4, task.ID, first.ID, session.DeadlineInput{ExpirationDatetime: pointer.To(due.AddDate(0, 1, 0))})
	require.NoError(t, err)
	assert.Equal(t, due.AddDate(0, 1, 0), moved.ExpirationDatetime)

	require.NoError(t, service.DeleteTask(ctx, s.ID, 4, task.ID))
	assert.Equal(t, 1, repo.deadlines.Len())

	require.NoError(t, service.RemoveMember(ctx, s.ID, 5))
	assert.Zero(t, repo.deadlines.Len())
}
