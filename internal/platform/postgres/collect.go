// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kanoon/kanoon/pkg/pagination"
)

// One runs query and scans its single row into T by `db` tag.
// No row yields [pgx.ErrNoRows].
func One[T any](ctx context.Context, querier Querier, query string, args ...any) (*T, error) {
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

// All runs query and scans every row into T by `db` tag.
func All[T any](ctx context.Context, querier Querier, query string, args ...any) ([]*T, error) {
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

/*
Page runs a count query and a list query that share the same filter args.

The list query must leave its LIMIT and OFFSET to Page: they are appended as
the next two placeholders after args.
*/
func Page[T any](ctx context.Context, querier Querier, countQuery, listQuery string, params pagination.Params, args ...any) ([]*T, int, error) {
	var total int
	if err := querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", listQuery, n+1, n+2)
	items, err := All[T](ctx, querier, query, append(args[:n:n], params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
