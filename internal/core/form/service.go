// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"
	"log/slog"

	"github.com/kanoon/kanoon/internal/platform/storage"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	repo   Repository
	files  storage.Presigner
	logger *slog.Logger
}

func NewService(repo Repository, files storage.Presigner, logger *slog.Logger) *Service {
	return &Service{repo: repo, files: files, logger: logger}
}

type Input struct {
	Code     *int    `json:"code"`
	Topic    *string `json:"topic"`
	FilePath *string `json:"file_path"`
}

func (input Input) apply(form *Form) {
	form.Code = pointer.Fallback(input.Code, form.Code)
	form.Topic = pointer.Fallback(input.Topic, form.Topic)
	form.FilePath = pointer.Fallback(input.FilePath, form.FilePath)
}

func validateForm(form *Form) error {
	return (&validate.Validator{}).
		Custom("code", form.Code <= 0, "Must be a positive number").
		Required("topic", form.Topic).
		MaxLen("topic", form.Topic, 50).
		Required("file_path", form.FilePath).
		MaxLen("file_path", form.FilePath, 100).
		Err()
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Form, int, error) {
	return service.repo.List(ctx, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Form, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Form, error) {
	form := &Form{}
	input.apply(form)
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if err := service.repo.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Form, error) {
	form, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(form)
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "form_deleted", slog.Int64("form_id", id))
	return nil
}

// Download returns a presigned link to the form's file.
func (service *Service) Download(ctx context.Context, id int64) (*storage.Link, error) {
	form, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return storage.LinkFor(ctx, service.files, form.FilePath)
}
