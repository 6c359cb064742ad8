// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sport

import (
	"context"
	"log/slog"
	"time"

	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	repo   Repository
	tx     postgres.TxRunner
	logger *slog.Logger
}

func NewService(repo Repository, tx postgres.TxRunner, logger *slog.Logger) *Service {
	return &Service{repo: repo, tx: tx, logger: logger}
}

type Input struct {
	Kind     *string    `json:"type"`
	Venue    *string    `json:"venue"`
	Datetime *time.Time `json:"datetime"`
}

func (input Input) apply(sport *Sport) {
	sport.Kind = pointer.Fallback(input.Kind, sport.Kind)
	sport.Venue = pointer.Fallback(input.Venue, sport.Venue)
	sport.Datetime = pointer.Fallback(input.Datetime, sport.Datetime)
}

func validateSport(sport *Sport) error {
	return (&validate.Validator{}).
		OneOf("type", sport.Kind, KindFootball, KindJudo).
		Required("venue", sport.Venue).
		MaxLen("venue", sport.Venue, 50).
		Custom("datetime", sport.Datetime.IsZero(), "This field is required").
		Err()
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Sport, int, error) {
	return service.repo.List(ctx, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Sport, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Sport, error) {
	sport := &Sport{}
	input.apply(sport)
	if err := validateSport(sport); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Sport, error) {
	sport, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(sport)
	if err := validateSport(sport); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

// Delete removes a sport session together with its attendance.
func (service *Service) Delete(ctx context.Context, id int64) error {
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.RemoveAttendees(ctx, id); err != nil {
			return err
		}
		return service.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "sport_deleted", slog.Int64("sport_id", id))
	return nil
}

// # Attendance

type AttendeeInput struct {
	UserID      *int64  `json:"user_id"`
	Present     *bool   `json:"present"`
	Rate        *int    `json:"rate"`
	Description *string `json:"description"`
}

func (input AttendeeInput) apply(attendee *Attendee) {
	attendee.Present = pointer.Fallback(input.Present, attendee.Present)
	if input.Rate != nil {
		attendee.Rate = input.Rate
	}
	if input.Description != nil {
		attendee.Description = input.Description
	}
}

func validateAttendee(attendee *Attendee) error {
	v := &validate.Validator{}
	if attendee.Rate != nil {
		v.Range("rate", *attendee.Rate, 0, 10)
	}
	return v.Err()
}

func (service *Service) ListAttendees(ctx context.Context, sportID int64, params pagination.Params) ([]*Attendee, int, error) {
	if _, err := service.repo.Get(ctx, sportID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListAttendees(ctx, sportID, params)
}

func (service *Service) GetAttendee(ctx context.Context, sportID, userID int64) (*Attendee, error) {
	return service.repo.GetAttendee(ctx, sportID, userID)
}

func (service *Service) AddAttendee(ctx context.Context, sportID int64, input AttendeeInput) (*Attendee, error) {
	if input.UserID == nil || *input.UserID <= 0 {
		return nil, validate.RequiredError("user_id", "This field is required")
	}
	if _, err := service.repo.Get(ctx, sportID); err != nil {
		return nil, err
	}

	attendee := &Attendee{SportID: sportID, UserID: *input.UserID}
	input.apply(attendee)
	if err := validateAttendee(attendee); err != nil {
		return nil, err
	}
	if err := service.repo.AddAttendee(ctx, attendee); err != nil {
		return nil, err
	}
	return attendee, nil
}

func (service *Service) UpdateAttendee(ctx context.Context, sportID, userID int64, input AttendeeInput) (*Attendee, error) {
	attendee, err := service.repo.GetAttendee(ctx, sportID, userID)
	if err != nil {
		return nil, err
	}
	input.apply(attendee)
	if err := validateAttendee(attendee); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateAttendee(ctx, attendee); err != nil {
		return nil, err
	}
	return attendee, nil
}

func (service *Service) RemoveAttendee(ctx context.Context, sportID, userID int64) error {
	return service.repo.RemoveAttendee(ctx, sportID, userID)
}
