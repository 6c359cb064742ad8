// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import (
	"context"
	"log/slog"

	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type Input struct {
	Topic       *string  `json:"topic"`
	Invoice     *string  `json:"invoice"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	Date        *string  `json:"date"`
	State       *string  `json:"state"`
	Owner       *string  `json:"owner"`
}

func (input Input) apply(expense *Expense) {
	expense.Topic = pointer.Fallback(input.Topic, expense.Topic)
	expense.Invoice = pointer.Fallback(input.Invoice, expense.Invoice)
	expense.Cost = pointer.Fallback(input.Cost, expense.Cost)
	expense.Date = pointer.Fallback(input.Date, expense.Date)
	expense.State = pointer.Fallback(input.State, expense.State)
	expense.Owner = pointer.Fallback(input.Owner, expense.Owner)
	if input.Description != nil {
		expense.Description = input.Description
	}
}

func validateExpense(expense *Expense) error {
	return (&validate.Validator{}).
		Required("topic", expense.Topic).
		MaxLen("topic", expense.Topic, 50).
		Required("invoice", expense.Invoice).
		MaxLen("invoice", expense.Invoice, 100).
		Custom("cost", expense.Cost < 0, "Must not be negative").
		Date("date", expense.Date).
		OneOf("state", expense.State, StatePending, StatePaid, StateRejected).
		Required("owner", expense.Owner).
		MaxLen("owner", expense.Owner, 200).
		Err()
}

// List pages through the ledger, optionally narrowed to one state.
func (service *Service) List(ctx context.Context, state string, params pagination.Params) ([]*Expense, int, error) {
	if state != "" {
		err := (&validate.Validator{}).OneOf("state", state, StatePending, StatePaid, StateRejected).Err()
		if err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(ctx, state, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return service.repo.Get(ctx, id)
}

// Create records an expense on behalf of recorderID. New expenses are pending
// unless the payload says otherwise.
func (service *Service) Create(ctx context.Context, recorderID int64, input Input) (*Expense, error) {
	expense := &Expense{State: StatePending, UserID: recorderID}
	input.apply(expense)
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Expense, error) {
	expense, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := expense.State
	input.apply(expense)
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	if expense.State != previous {
		service.logger.InfoContext(ctx, "expense_state_changed",
			slog.Int64("expense_id", id),
			slog.String("from", previous),
			slog.String("to", expense.State),
		)
	}
	return expense, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "expense_deleted", slog.Int64("expense_id", id))
	return nil
}
