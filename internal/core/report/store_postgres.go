// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"
	"fmt"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type PostgresRepository struct {
	db *postgres.DB
}

func NewPostgresRepository(db *postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// targetColumns maps each kind to its foreign key column. A report row sets
// only the column of its own kind.
var targetColumns = map[string]string{
	KindCamp:    "camp_id",
	KindHeyat:   "heyat_id",
	KindLecture: "lecture_id",
}

func targetColumn(kind string) (string, error) {
	column, ok := targetColumns[kind]
	if !ok {
		return "", fmt.Errorf("report: no target column for kind %q", kind)
	}
	return column, nil
}

const reportColumns = `id, type, coalesce(camp_id, heyat_id, lecture_id) AS target_id, reporter_id, datetime, description`

func (repository *PostgresRepository) List(ctx context.Context, kind string, params pagination.Params) ([]*Report, int, error) {
	reports, total, err := postgres.Page[Report](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM reports.report WHERE $1 = '' OR type = $1`,
		`SELECT `+reportColumns+` FROM reports.report
		 WHERE $1 = '' OR type = $1
		 ORDER BY datetime DESC, id DESC`,
		params, kind,
	)
	return reports, total, dberr.Wrap(err, "list_reports")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Report, error) {
	report, err := postgres.One[Report](ctx, repository.db.Querier(ctx),
		`SELECT `+reportColumns+` FROM reports.report WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_report", "Report")
	}
	return report, nil
}

func (repository *PostgresRepository) FindByTarget(ctx context.Context, kind string, targetID int64) (*Report, error) {
	column, err := targetColumn(kind)
	if err != nil {
		return nil, dberr.Wrap(err, "find_report")
	}
	report, err := postgres.One[Report](ctx, repository.db.Querier(ctx),
		`SELECT `+reportColumns+` FROM reports.report WHERE type = $1 AND `+column+` = $2`, kind, targetID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_report", "Report")
	}
	return report, nil
}

func (repository *PostgresRepository) KindOf(ctx context.Context, id int64) (string, error) {
	var kind string
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`SELECT type FROM reports.report WHERE id = $1`, id).Scan(&kind)
	if err != nil {
		return "", dberr.WrapNotFound(err, "get_report_kind", "Report")
	}
	return kind, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, report *Report) error {
	column, err := targetColumn(report.Kind)
	if err != nil {
		return dberr.Wrap(err, "create_report")
	}
	query := `
		INSERT INTO reports.report (type, ` + column + `, reporter_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, datetime`

	err = repository.db.Querier(ctx).QueryRow(ctx, query,
		report.Kind, report.TargetID, report.ReporterID, report.Description,
	).Scan(&report.ID, &report.Datetime)
	return dberr.Wrap(err, "create_report")
}

func (repository *PostgresRepository) Update(ctx context.Context, report *Report) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_report", "Report",
		`UPDATE reports.report SET description = $2 WHERE id = $1`,
		report.ID, report.Description)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_report", "Report",
		`DELETE FROM reports.report WHERE id = $1`, id)
}

// # Multimedia

const multimediaColumns = `id, report_id, path, format`

func (repository *PostgresRepository) ListMultimedia(ctx context.Context, reportID int64, params pagination.Params) ([]*Multimedia, int, error) {
	media, total, err := postgres.Page[Multimedia](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM reports.multimedia WHERE report_id = $1`,
		`SELECT `+multimediaColumns+` FROM reports.multimedia WHERE report_id = $1 ORDER BY id`,
		params, reportID,
	)
	return media, total, dberr.Wrap(err, "list_multimedia")
}

func (repository *PostgresRepository) GetMultimedia(ctx context.Context, id int64) (*Multimedia, error) {
	media, err := postgres.One[Multimedia](ctx, repository.db.Querier(ctx),
		`SELECT `+multimediaColumns+` FROM reports.multimedia WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_multimedia", "Multimedia")
	}
	return media, nil
}

func (repository *PostgresRepository) CreateMultimedia(ctx context.Context, media *Multimedia) error {
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`INSERT INTO reports.multimedia (report_id, path, format) VALUES ($1, $2, $3) RETURNING id`,
		media.ReportID, media.Path, media.Format,
	).Scan(&media.ID)
	return dberr.Wrap(err, "create_multimedia")
}

func (repository *PostgresRepository) UpdateMultimedia(ctx context.Context, media *Multimedia) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_multimedia", "Multimedia",
		`UPDATE reports.multimedia SET path = $2, format = $3 WHERE id = $1`,
		media.ID, media.Path, media.Format)
}

func (repository *PostgresRepository) DeleteMultimedia(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_multimedia", "Multimedia",
		`DELETE FROM reports.multimedia WHERE id = $1`, id)
}

func (repository *PostgresRepository) DeleteReportMultimedia(ctx context.Context, reportID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx,
		`DELETE FROM reports.multimedia WHERE report_id = $1`, reportID)
	return dberr.Wrap(err, "delete_report_multimedia")
}
