// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package heyat

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
	Reason   *string    `json:"reason"`
	Datetime *time.Time `json:"datetime"`
	Compere  *string    `json:"compere"`
	Speaker  *string    `json:"speaker"`
	Singer   *string    `json:"singer"`
	Meal     *string    `json:"meal"`
}

func (input Input) apply(heyat *Heyat) {
	heyat.Kind = pointer.Fallback(input.Kind, heyat.Kind)
	heyat.Reason = pointer.Fallback(input.Reason, heyat.Reason)
	heyat.Datetime = pointer.Fallback(input.Datetime, heyat.Datetime)
	if input.Compere != nil {
		heyat.Compere = input.Compere
	}
	if input.Speaker != nil {
		heyat.Speaker = input.Speaker
	}
	if input.Singer != nil {
		heyat.Singer = input.Singer
	}
	if input.Meal != nil {
		heyat.Meal = input.Meal
	}
}

func validateHeyat(heyat *Heyat) error {
	return (&validate.Validator{}).
		OneOf("type", heyat.Kind, KindCelebration, KindMourning).
		Required("reason", heyat.Reason).
		MaxLen("reason", heyat.Reason, 50).
		Custom("datetime", heyat.Datetime.IsZero(), "This field is required").
		Err()
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Heyat, int, error) {
	return service.repo.List(ctx, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Heyat, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Heyat, error) {
	heyat := &Heyat{}
	input.apply(heyat)
	if err := validateHeyat(heyat); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, heyat); err != nil {
		return nil, err
	}
	return heyat, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Heyat, error) {
	heyat, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(heyat)
	if err := validateHeyat(heyat); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, heyat); err != nil {
		return nil, err
	}
	return heyat, nil
}

// Delete removes a gathering together with its attendance.
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
	service.logger.InfoContext(ctx, "heyat_deleted", slog.Int64("heyat_id", id))
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

func (service *Service) ListAttendees(ctx context.Context, heyatID int64, params pagination.Params) ([]*Attendee, int, error) {
	if _, err := service.repo.Get(ctx, heyatID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListAttendees(ctx, heyatID, params)
}

func (service *Service) GetAttendee(ctx context.Context, heyatID, userID int64) (*Attendee, error) {
	return service.repo.GetAttendee(ctx, heyatID, userID)
}

func (service *Service) AddAttendee(ctx context.Context, heyatID int64, input AttendeeInput) (*Attendee, error) {
	if input.UserID == nil || *input.UserID <= 0 {
		return nil, validate.RequiredError("user_id", "This field is required")
	}
	if _, err := service.repo.Get(ctx, heyatID); err != nil {
		return nil, err
	}

	attendee := &Attendee{HeyatID: heyatID, UserID: *input.UserID}
	input.apply(attendee)
	if err := validateAttendee(attendee); err != nil {
		return nil, err
	}
	if err := service.repo.AddAttendee(ctx, attendee); err != nil {
		return nil, err
	}
	return attendee, nil
}

func (service *Service) UpdateAttendee(ctx context.Context, heyatID, userID int64, input AttendeeInput) (*Attendee, error) {
	attendee, err := service.repo.GetAttendee(ctx, heyatID, userID)
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

func (service *Service) RemoveAttendee(ctx context.Context, heyatID, userID int64) error {
	return service.repo.RemoveAttendee(ctx, heyatID, userID)
}
