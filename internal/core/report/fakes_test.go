// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/kanoon/kanoon/internal/core/report"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type memoryRepository struct {
	reports *memtable.Table[report.Report]
	media   *memtable.Table[report.Multimedia]
	// targets lists the activity ids that exist, per kind.
	targets map[string][]int64
}

type presignerStub struct{}

func (presignerStub) PresignGet(_ context.Context, key string) (string, error) {
	return "https://files.example.test/" + key, nil
}

func newTestService() (*report.Service, *memoryRepository) {
	repo := &memoryRepository{
		reports: memtable.New[report.Report](),
		media:   memtable.New[report.Multimedia](),
		targets: map[string][]int64{
			report.KindCamp:    {1, 2},
			report.KindHeyat:   {1},
			report.KindLecture: {7},
		},
	}
	tx := memtable.NewTx(repo.reports, repo.media)
	return report.NewService(repo, tx, presignerStub{}, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func reportByID(id int64) func(report.Report) bool {
	return func(r report.Report) bool { return r.ID == id }
}

func mediaByID(id int64) func(report.Multimedia) bool {
	return func(m report.Multimedia) bool { return m.ID == id }
}

func (repo *memoryRepository) List(_ context.Context, kind string, params pagination.Params) ([]*report.Report, int, error) {
	items, total := memtable.Page(repo.reports.Select(func(r report.Report) bool {
		return kind == "" || r.Kind == kind
	}), params)
	return items, total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*report.Report, error) {
	found, ok := repo.reports.Find(reportByID(id))
	if !ok {
		return nil, apperr.NotFound("Report")
	}
	return &found, nil
}

func (repo *memoryRepository) FindByTarget(_ context.Context, kind string, targetID int64) (*report.Report, error) {
	found, ok := repo.reports.Find(func(r report.Report) bool { return r.Kind == kind && r.TargetID == targetID })
	if !ok {
		return nil, apperr.NotFound("Report")
	}
	return &found, nil
}

func (repo *memoryRepository) KindOf(ctx context.Context, id int64) (string, error) {
	found, err := repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return found.Kind, nil
}

func (repo *memoryRepository) Create(ctx context.Context, r *report.Report) error {
	exists := false
	for _, id := range repo.targets[r.Kind] {
		exists = exists || id == r.TargetID
	}
	if !exists {
		return apperr.NotFound("Referenced resource")
	}
	if _, err := repo.FindByTarget(ctx, r.Kind, r.TargetID); err == nil {
		return apperr.Conflict("Duplicate value violates report_" + r.Kind + "_id_key")
	}
	r.ID = repo.reports.NextID()
	r.Datetime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.reports.Insert(*r)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, r *report.Report) error {
	if !repo.reports.Replace(reportByID(r.ID), *r) {
		return apperr.NotFound("Report")
	}
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if repo.media.Any(func(m report.Multimedia) bool { return m.ReportID == id }) {
		return apperr.Conflict("Report is still referenced")
	}
	if repo.reports.Remove(reportByID(id)) == 0 {
		return apperr.NotFound("Report")
	}
	return nil
}

func (repo *memoryRepository) ListMultimedia(_ context.Context, reportID int64, params pagination.Params) ([]*report.Multimedia, int, error) {
	items, total := memtable.Page(repo.media.Select(func(m report.Multimedia) bool { return m.ReportID == reportID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetMultimedia(_ context.Context, id int64) (*report.Multimedia, error) {
	found, ok := repo.media.Find(mediaByID(id))
	if !ok {
		return nil, apperr.NotFound("Multimedia")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateMultimedia(_ context.Context, m *report.Multimedia) error {
	m.ID = repo.media.NextID()
	repo.media.Insert(*m)
	return nil
}

func (repo *memoryRepository) UpdateMultimedia(_ context.Context, m *report.Multimedia) error {
	if !repo.media.Replace(mediaByID(m.ID), *m) {
		return apperr.NotFound("Multimedia")
	}
	return nil
}

func (repo *memoryRepository) DeleteMultimedia(_ context.Context, id int64) error {
	if repo.media.Remove(mediaByID(id)) == 0 {
		return apperr.NotFound("Multimedia")
	}
	return nil
}

func (repo *memoryRepository) DeleteReportMultimedia(_ context.Context, reportID int64) error {
	repo.media.Remove(func(m report.Multimedia) bool { return m.ReportID == reportID })
	return nil
}
