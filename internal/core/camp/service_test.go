// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/core/camp"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

var goTime = time.Date(2026, 7, 1, 6, 0, 0, 0, time.UTC)

func validInput() camp.Input {
	return camp.Input{
		Subject:  pointer.To("Summer camp"),
		Location: pointer.To("Mashhad"),
		GoTime:   pointer.To(goTime),
		BackTime: pointer.To(goTime.Add(72 * time.Hour)),
	}
}

/*
TestCreate_Validation reports missing fields and an inverted date range.
*/
func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*camp.Input)
		fields []string
	}{
		{"valid", func(*camp.Input) {}, nil},
		{"missing subject", func(in *camp.Input) { in.Subject = nil }, []string{"subject"}},
		{"missing times", func(in *camp.Input) { in.GoTime, in.BackTime = nil, nil }, []string{"go_time", "back_time"}},
		{"back before go", func(in *camp.Input) { in.BackTime = pointer.To(goTime.Add(-time.Hour)) }, []string{"back_time"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := service.Create(context.Background(), input)
			if tc.fields == nil {
				require.NoError(t, err)
				return
			}
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			for _, field := range tc.fields {
				assert.Contains(t, appErr.FieldMap(), field)
			}
		})
	}
}

/*
TestUpdate_KeepsUnsetFields patches only what the payload names.
*/
func TestUpdate_KeepsUnsetFields(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, camp.Input{Location: pointer.To("Qom")})
	require.NoError(t, err)
	assert.Equal(t, "Qom", updated.Location)
	assert.Equal(t, "Summer camp", updated.Subject)

	_, err = service.Update(ctx, 404, camp.Input{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestDelete_RemovesParticipants and keeps everything when the camp row is
still referenced.
*/
func TestDelete_RemovesParticipants(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	kept, err := service.Create(ctx, validInput())
	require.NoError(t, err)
	dropped, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	for _, id := range []int64{kept.ID, dropped.ID} {
		_, err := service.AddParticipant(ctx, id, camp.ParticipantInput{UserID: pointer.To(int64(7))})
		require.NoError(t, err)
	}

	repo.reported[kept.ID] = true
	err = service.Delete(ctx, kept.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, 2, repo.participants.Len())

	require.NoError(t, service.Delete(ctx, dropped.ID))
	assert.Equal(t, 1, repo.participants.Len())
	assert.Equal(t, 1, repo.camps.Len())
}

/*
TestParticipants covers defaults, rate bounds and duplicate joins.
*/
func TestParticipants(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	participant, err := service.AddParticipant(ctx, created.ID, camp.ParticipantInput{UserID: pointer.To(int64(3))})
	require.NoError(t, err)
	assert.Equal(t, "0", participant.PaidValue)

	_, err = service.AddParticipant(ctx, created.ID, camp.ParticipantInput{UserID: pointer.To(int64(3))})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.AddParticipant(ctx, created.ID, camp.ParticipantInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.AddParticipant(ctx, 99, camp.ParticipantInput{UserID: pointer.To(int64(4))})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.UpdateParticipant(ctx, created.ID, 3, camp.ParticipantInput{Rate: pointer.To(11)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	updated, err := service.UpdateParticipant(ctx, created.ID, 3, camp.ParticipantInput{Rate: pointer.To(9), PaidValue: pointer.To("1500000")})
	require.NoError(t, err)
	assert.Equal(t, 9, *updated.Rate)

	list, total, err := service.ListParticipants(ctx, created.ID, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "1500000", list[0].PaidValue)

	require.NoError(t, service.RemoveParticipant(ctx, created.ID, 3))
	_, err = service.GetParticipant(ctx, created.ID, 3)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
