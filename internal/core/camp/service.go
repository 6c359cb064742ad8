// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp

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

// Input is the create and patch payload of a camp. Nil fields keep their
// current value on patch.
type Input struct {
	Subject       *string    `json:"subject"`
	Location      *string    `json:"location"`
	GoTime        *time.Time `json:"go_time"`
	BackTime      *time.Time `json:"back_time"`
	CostPerPerson *string    `json:"cost_per_person"`
}

func (input Input) apply(camp *Camp) {
	camp.Subject = pointer.Fallback(input.Subject, camp.Subject)
	camp.Location = pointer.Fallback(input.Location, camp.Location)
	camp.GoTime = pointer.Fallback(input.GoTime, camp.GoTime)
	camp.BackTime = pointer.Fallback(input.BackTime, camp.BackTime)
	if input.CostPerPerson != nil {
		camp.CostPerPerson = input.CostPerPerson
	}
}

func validateCamp(camp *Camp) error {
	return (&validate.Validator{}).
		Required("subject", camp.Subject).
		MaxLen("subject", camp.Subject, 50).
		Required("location", camp.Location).
		MaxLen("location", camp.Location, 50).
		Custom("go_time", camp.GoTime.IsZero(), "This field is required").
		Custom("back_time", camp.BackTime.IsZero(), "This field is required").
		Custom("back_time", camp.BackTime.Before(camp.GoTime), "Must not be before go_time").
		Err()
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Camp, int, error) {
	return service.repo.List(ctx, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Camp, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Camp, error) {
	camp := &Camp{}
	input.apply(camp)
	if err := validateCamp(camp); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Camp, error) {
	camp, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(camp)
	if err := validateCamp(camp); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

// Delete removes a camp with its participant rows. A camp that still has a
// report is kept and reported as a conflict.
func (service *Service) Delete(ctx context.Context, id int64) error {
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.RemoveParticipants(ctx, id); err != nil {
			return err
		}
		return service.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "camp_deleted", slog.Int64("camp_id", id))
	return nil
}

// # Participants

// ParticipantInput is the payload for joining a camp or editing the entry.
// UserID is read on create only.
type ParticipantInput struct {
	UserID      *int64  `json:"user_id"`
	PaidValue   *string `json:"paid_value"`
	Rate        *int    `json:"rate"`
	Description *string `json:"description"`
}

func (input ParticipantInput) apply(participant *Participant) {
	participant.PaidValue = pointer.Fallback(input.PaidValue, participant.PaidValue)
	if input.Rate != nil {
		participant.Rate = input.Rate
	}
	if input.Description != nil {
		participant.Description = input.Description
	}
}

func validateParticipant(participant *Participant) error {
	v := &validate.Validator{}
	if participant.Rate != nil {
		v.Range("rate", *participant.Rate, 0, 10)
	}
	return v.MaxLen("paid_value", participant.PaidValue, 50).Err()
}

func (service *Service) ListParticipants(ctx context.Context, campID int64, params pagination.Params) ([]*Participant, int, error) {
	if _, err := service.repo.Get(ctx, campID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListParticipants(ctx, campID, params)
}

func (service *Service) GetParticipant(ctx context.Context, campID, userID int64) (*Participant, error) {
	return service.repo.GetParticipant(ctx, campID, userID)
}

// AddParticipant joins a member to a camp. Joining twice is a conflict.
func (service *Service) AddParticipant(ctx context.Context, campID int64, input ParticipantInput) (*Participant, error) {
	if input.UserID == nil || *input.UserID <= 0 {
		return nil, validate.RequiredError("user_id", "This field is required")
	}
	if _, err := service.repo.Get(ctx, campID); err != nil {
		return nil, err
	}

	participant := &Participant{CampID: campID, UserID: *input.UserID, PaidValue: "0"}
	input.apply(participant)
	if err := validateParticipant(participant); err != nil {
		return nil, err
	}
	if err := service.repo.AddParticipant(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (service *Service) UpdateParticipant(ctx context.Context, campID, userID int64, input ParticipantInput) (*Participant, error) {
	participant, err := service.repo.GetParticipant(ctx, campID, userID)
	if err != nil {
		return nil, err
	}
	input.apply(participant)
	if err := validateParticipant(participant); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateParticipant(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (service *Service) RemoveParticipant(ctx context.Context, campID, userID int64) error {
	return service.repo.RemoveParticipant(ctx, campID, userID)
}
