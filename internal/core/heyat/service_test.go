// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package heyat_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/core/heyat"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type memoryRepository struct {
	heyats    *memtable.Table[heyat.Heyat]
	attendees *memtable.Table[heyat.Attendee]
}

func byID(id int64) func(heyat.Heyat) bool {
	return func(h heyat.Heyat) bool { return h.ID == id }
}

func byKey(heyatID, userID int64) func(heyat.Attendee) bool {
	return func(a heyat.Attendee) bool { return a.HeyatID == heyatID && a.UserID == userID }
}

func (repo *memoryRepository) List(_ context.Context, params pagination.Params) ([]*heyat.Heyat, int, error) {
	items, total := memtable.Page(repo.heyats.Select(nil), params)
	return items, total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*heyat.Heyat, error) {
	found, ok := repo.heyats.Find(byID(id))
	if !ok {
		return nil, apperr.NotFound("Heyat")
	}
	return &found, nil
}

func (repo *memoryRepository) Create(_ context.Context, h *heyat.Heyat) error {
	h.ID = repo.heyats.NextID()
	repo.heyats.Insert(*h)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, h *heyat.Heyat) error {
	if !repo.heyats.Replace(byID(h.ID), *h) {
		return apperr.NotFound("Heyat")
	}
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if repo.heyats.Remove(byID(id)) == 0 {
		return apperr.NotFound("Heyat")
	}
	return nil
}

func (repo *memoryRepository) ListAttendees(_ context.Context, heyatID int64, params pagination.Params) ([]*heyat.Attendee, int, error) {
	items, total := memtable.Page(repo.attendees.Select(func(a heyat.Attendee) bool { return a.HeyatID == heyatID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetAttendee(_ context.Context, heyatID, userID int64) (*heyat.Attendee, error) {
	found, ok := repo.attendees.Find(byKey(heyatID, userID))
	if !ok {
		return nil, apperr.NotFound("Heyat attendee")
	}
	return &found, nil
}

func (repo *memoryRepository) AddAttendee(_ context.Context, a *heyat.Attendee) error {
	if repo.attendees.Any(byKey(a.HeyatID, a.UserID)) {
		return apperr.Conflict("Duplicate value violates heyat_user_pkey")
	}
	repo.attendees.Insert(*a)
	return nil
}

func (repo *memoryRepository) UpdateAttendee(_ context.Context, a *heyat.Attendee) error {
	if !repo.attendees.Replace(byKey(a.HeyatID, a.UserID), *a) {
		return apperr.NotFound("Heyat attendee")
	}
	return nil
}

func (repo *memoryRepository) RemoveAttendee(_ context.Context, heyatID, userID int64) error {
	if repo.attendees.Remove(byKey(heyatID, userID)) == 0 {
		return apperr.NotFound("Heyat attendee")
	}
	return nil
}

func (repo *memoryRepository) RemoveAttendees(_ context.Context, heyatID int64) error {
	repo.attendees.Remove(func(a heyat.Attendee) bool { return a.HeyatID == heyatID })
	return nil
}

func newTestService() (*heyat.Service, *memoryRepository) {
	repo := &memoryRepository{heyats: memtable.New[heyat.Heyat](), attendees: memtable.New[heyat.Attendee]()}
	tx := memtable.NewTx(repo.heyats, repo.attendees)
	return heyat.NewService(repo, tx, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreate_KindIsClosed accepts only the two gathering kinds.
*/
func TestCreate_KindIsClosed(t *testing.T) {
	service, _ := newTestService()
	at := pointer.To(time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC))

	tests := []struct {
		kind  string
		valid bool
	}{
		{heyat.KindCelebration, true},
		{heyat.KindMourning, true},
		{"party", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			_, err := service.Create(context.Background(), heyat.Input{
				Kind: pointer.To(tc.kind), Reason: pointer.To("Nowruz"), Datetime: at,
			})
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, apperr.As(err).FieldMap(), "type")
		})
	}
}

/*
TestAttendance records presence and drops it with the gathering.
*/
func TestAttendance(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, heyat.Input{
		Kind: pointer.To(heyat.KindMourning), Reason: pointer.To("Arbaeen"),
		Datetime: pointer.To(time.Date(2026, 8, 4, 19, 0, 0, 0, time.UTC)),
		Speaker:  pointer.To("Haj Agha"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Haj Agha", *created.Speaker)

	attendee, err := service.AddAttendee(ctx, created.ID, heyat.AttendeeInput{UserID: pointer.To(int64(2)), Present: pointer.To(true)})
	require.NoError(t, err)
	assert.True(t, attendee.Present)

	_, err = service.UpdateAttendee(ctx, created.ID, 2, heyat.AttendeeInput{Rate: pointer.To(-1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, _, err = service.ListAttendees(ctx, 77, pagination.Params{Page: 1, Limit: 5})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.Zero(t, repo.attendees.Len())
	assert.Zero(t, repo.heyats.Len())
}
