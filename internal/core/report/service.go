// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"
	"log/slog"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/storage"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	repo   Repository
	tx     postgres.TxRunner
	files  storage.Presigner
	logger *slog.Logger
}

func NewService(repo Repository, tx postgres.TxRunner, files storage.Presigner, logger *slog.Logger) *Service {
	return &Service{repo: repo, tx: tx, files: files, logger: logger}
}

// ValidateKind rejects a kind outside the report family as a bad request.
func ValidateKind(kind string) error {
	if access.ReportFamily.Validate(kind) != nil {
		return (&validate.Validator{}).OneOf("field", kind, access.ReportFamily.Kinds()...).Err()
	}
	return nil
}

type Input struct {
	Description *string `json:"description"`
}

// KindOf reports the stored kind of a report for the access gate.
func (service *Service) KindOf(ctx context.Context, id int64) (string, error) {
	return service.repo.KindOf(ctx, id)
}

// List is the cross-kind index; kind narrows it when set.
func (service *Service) List(ctx context.Context, kind string, params pagination.Params) ([]*Report, int, error) {
	if kind != "" {
		if err := ValidateKind(kind); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(ctx, kind, params)
}

func (service *Service) Get(ctx context.Context, id int64) (*Report, error) {
	return service.repo.Get(ctx, id)
}

// GetByTarget returns the report of one camp, heyat or lecture.
func (service *Service) GetByTarget(ctx context.Context, kind string, targetID int64) (*Report, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	return service.repo.FindByTarget(ctx, kind, targetID)
}

// Create files the report of a target on behalf of reporterID. A target has
// at most one report.
func (service *Service) Create(ctx context.Context, kind string, targetID, reporterID int64, input Input) (*Report, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	report := &Report{Kind: kind, TargetID: targetID, ReporterID: reporterID, Description: input.Description}
	if err := service.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	service.logger.InfoContext(ctx, "report_created",
		slog.Int64("report_id", report.ID),
		slog.String("type", kind),
		slog.Int64("target_id", targetID),
	)
	return report, nil
}

func (service *Service) Update(ctx context.Context, id int64, input Input) (*Report, error) {
	report, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		report.Description = input.Description
	}
	if err := service.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report with its attached media.
func (service *Service) Delete(ctx context.Context, id int64) error {
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.repo.DeleteReportMultimedia(ctx, id); err != nil {
			return err
		}
		return service.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "report_deleted", slog.Int64("report_id", id))
	return nil
}

// # Multimedia

type MultimediaInput struct {
	Path   *string `json:"path"`
	Format *string `json:"format"`
}

func (input MultimediaInput) apply(media *Multimedia) {
	media.Path = pointer.Fallback(input.Path, media.Path)
	media.Format = pointer.Fallback(input.Format, media.Format)
}

func validateMultimedia(media *Multimedia) error {
	return (&validate.Validator{}).
		Required("path", media.Path).
		MaxLen("path", media.Path, 50).
		OneOf("format", media.Format, Formats...).
		Err()
}

func (service *Service) ListMultimedia(ctx context.Context, reportID int64, params pagination.Params) ([]*Multimedia, int, error) {
	if _, err := service.repo.Get(ctx, reportID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListMultimedia(ctx, reportID, params)
}

// GetMultimedia loads a media item through its report. An item attached to
// another report is not found.
func (service *Service) GetMultimedia(ctx context.Context, reportID, id int64) (*Multimedia, error) {
	media, err := service.repo.GetMultimedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if media.ReportID != reportID {
		return nil, apperr.NotFound("Multimedia")
	}
	return media, nil
}

func (service *Service) CreateMultimedia(ctx context.Context, reportID int64, input MultimediaInput) (*Multimedia, error) {
	if _, err := service.repo.Get(ctx, reportID); err != nil {
		return nil, err
	}
	media := &Multimedia{ReportID: reportID}
	input.apply(media)
	if err := validateMultimedia(media); err != nil {
		return nil, err
	}
	if err := service.repo.CreateMultimedia(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

func (service *Service) UpdateMultimedia(ctx context.Context, reportID, id int64, input MultimediaInput) (*Multimedia, error) {
	media, err := service.GetMultimedia(ctx, reportID, id)
	if err != nil {
		return nil, err
	}
	input.apply(media)
	if err := validateMultimedia(media); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateMultimedia(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

func (service *Service) DeleteMultimedia(ctx context.Context, reportID, id int64) error {
	if _, err := service.GetMultimedia(ctx, reportID, id); err != nil {
		return err
	}
	return service.repo.DeleteMultimedia(ctx, id)
}

// Download returns a presigned link to a media file.
func (service *Service) Download(ctx context.Context, reportID, id int64) (*storage.Link, error) {
	media, err := service.GetMultimedia(ctx, reportID, id)
	if err != nil {
		return nil, err
	}
	return storage.LinkFor(ctx, service.files, media.Path)
}
