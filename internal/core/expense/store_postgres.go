// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

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

const expenseColumns = `id, topic, invoice, description, cost, date::text AS date, state, owner, user_id`

func (repository *PostgresRepository) List(ctx context.Context, state string, params pagination.Params) ([]*Expense, int, error) {
	expenses, total, err := postgres.Page[Expense](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM finance.expense WHERE $1 = '' OR state = $1`,
		`SELECT `+expenseColumns+` FROM finance.expense
		 WHERE $1 = '' OR state = $1
		 ORDER BY date DESC, id DESC`,
		params, state,
	)
	return expenses, total, dberr.Wrap(err, "list_expenses")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Expense, error) {
	expense, err := postgres.One[Expense](ctx, repository.db.Querier(ctx),
		`SELECT `+expenseColumns+` FROM finance.expense WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_expense", "Expense")
	}
	return expense, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, expense *Expense) error {
	const query = `
		INSERT INTO finance.expense (topic, invoice, description, cost, date, state, owner, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		expense.Topic, expense.Invoice, expense.Description, expense.Cost,
		expense.Date, expense.State, expense.Owner, expense.UserID,
	).Scan(&expense.ID)
	return dberr.Wrap(err, "create_expense")
}

func (repository *PostgresRepository) Update(ctx context.Context, expense *Expense) error {
	const query = `
		UPDATE finance.expense
		SET topic = $2, invoice = $3, description = $4, cost = $5, date = $6, state = $7, owner = $8
		WHERE id = $1`

	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_expense", "Expense", query,
		expense.ID, expense.Topic, expense.Invoice, expense.Description, expense.Cost,
		expense.Date, expense.State, expense.Owner)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_expense", "Expense",
		`DELETE FROM finance.expense WHERE id = $1`, id)
}
