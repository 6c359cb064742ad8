// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"

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

const formColumns = `id, code, topic, file_path`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Form, int, error) {
	forms, total, err := postgres.Page[Form](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM library.form`,
		`SELECT `+formColumns+` FROM library.form ORDER BY code`,
		params,
	)
	return forms, total, dberr.Wrap(err, "list_forms")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Form, error) {
	form, err := postgres.One[Form](ctx, repository.db.Querier(ctx),
		`SELECT `+formColumns+` FROM library.form WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_form", "Form")
	}
	return form, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, form *Form) error {
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`INSERT INTO library.form (code, topic, file_path) VALUES ($1, $2, $3) RETURNING id`,
		form.Code, form.Topic, form.FilePath,
	).Scan(&form.ID)
	return dberr.Wrap(err, "create_form")
}

func (repository *PostgresRepository) Update(ctx context.Context, form *Form) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_form", "Form",
		`UPDATE library.form SET code = $2, topic = $3, file_path = $4 WHERE id = $1`,
		form.ID, form.Code, form.Topic, form.FilePath)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_form", "Form",
		`DELETE FROM library.form WHERE id = $1`, id)
}
