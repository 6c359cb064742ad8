// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

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

// # Categories

const categoryColumns = `id, name, slug`

func (repository *PostgresRepository) ListCategories(ctx context.Context, params pagination.Params) ([]*Category, int, error) {
	categories, total, err := postgres.Page[Category](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM library.category`,
		`SELECT `+categoryColumns+` FROM library.category ORDER BY name, id`,
		params,
	)
	return categories, total, dberr.Wrap(err, "list_categories")
}

func (repository *PostgresRepository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	category, err := postgres.One[Category](ctx, repository.db.Querier(ctx),
		`SELECT `+categoryColumns+` FROM library.category WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_category", "Category")
	}
	return category, nil
}

func (repository *PostgresRepository) CreateCategory(ctx context.Context, category *Category) error {
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`INSERT INTO library.category (name, slug) VALUES ($1, $2) RETURNING id`,
		category.Name, category.Slug,
	).Scan(&category.ID)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) UpdateCategory(ctx context.Context, category *Category) error {
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_category", "Category",
		`UPDATE library.category SET name = $2, slug = $3 WHERE id = $1`,
		category.ID, category.Name, category.Slug)
}

func (repository *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_category", "Category",
		`DELETE FROM library.category WHERE id = $1`, id)
}

// # Documents

// documentSelect joins every detail table; a document matches at most one.
const documentSelect = `
	SELECT d.id, d.category_id, d.type, d.topic, d.subject, d.file_path, d.level, d.creation_date,
		coalesce(b.author, bl.author) AS author,
		b.publish_date::text AS publish_date,
		b.translator,
		v.speaker,
		coalesce(v.production_date, bl.production_date)::text AS production_date
	FROM library.document d
	LEFT JOIN library.book b ON b.id = d.id
	LEFT JOIN library.voice v ON v.id = d.id
	LEFT JOIN library.booklet bl ON bl.id = d.id`

func (repository *PostgresRepository) List(ctx context.Context, categoryID int64, kind string, params pagination.Params) ([]*Document, int, error) {
	docs, total, err := postgres.Page[Document](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM library.document WHERE category_id = $1 AND ($2 = '' OR type = $2)`,
		documentSelect+`
		WHERE d.category_id = $1 AND ($2 = '' OR d.type = $2)
		ORDER BY d.creation_date DESC, d.id DESC`,
		params, categoryID, kind,
	)
	return docs, total, dberr.Wrap(err, "list_documents")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Document, error) {
	doc, err := postgres.One[Document](ctx, repository.db.Querier(ctx), documentSelect+` WHERE d.id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_document", "Document")
	}
	return doc, nil
}

func (repository *PostgresRepository) KindOf(ctx context.Context, id int64) (string, error) {
	var kind string
	err := repository.db.Querier(ctx).QueryRow(ctx,
		`SELECT type FROM library.document WHERE id = $1`, id).Scan(&kind)
	if err != nil {
		return "", dberr.WrapNotFound(err, "get_document_kind", "Document")
	}
	return kind, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, doc *Document) error {
	querier := repository.db.Querier(ctx)
	err := querier.QueryRow(ctx, `
		INSERT INTO library.document (category_id, type, topic, subject, file_path, level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, creation_date`,
		doc.CategoryID, doc.Kind, doc.Topic, doc.Subject, doc.FilePath, doc.Level,
	).Scan(&doc.ID, &doc.CreationDate)
	if err != nil {
		return dberr.Wrap(err, "create_document")
	}

	query, args := detailInsert(doc)
	_, err = querier.Exec(ctx, query, args...)
	return dberr.Wrap(err, "create_document_"+doc.Kind)
}

func (repository *PostgresRepository) Update(ctx context.Context, doc *Document) error {
	querier := repository.db.Querier(ctx)
	err := dberr.ExecOne(ctx, querier, "update_document", "Document", `
		UPDATE library.document
		SET category_id = $2, topic = $3, subject = $4, file_path = $5, level = $6
		WHERE id = $1`,
		doc.ID, doc.CategoryID, doc.Topic, doc.Subject, doc.FilePath, doc.Level)
	if err != nil {
		return err
	}

	query, args := detailUpdate(doc)
	return dberr.ExecOne(ctx, querier, "update_document_"+doc.Kind, "Document", query, args...)
}

// Delete removes the detail row first; library.document is referenced by it.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	querier := repository.db.Querier(ctx)
	for _, table := range []string{"library.book", "library.voice", "library.booklet"} {
		if _, err := querier.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
			return dberr.Wrap(err, "delete_document_details")
		}
	}
	return dberr.DeleteOne(ctx, querier, "delete_document", "Document",
		`DELETE FROM library.document WHERE id = $1`, id)
}

func detailInsert(doc *Document) (string, []any) {
	switch doc.Kind {
	case KindBook:
		return `INSERT INTO library.book (id, author, publish_date, translator) VALUES ($1, $2, $3, $4)`,
			[]any{doc.ID, doc.Author, doc.PublishDate, doc.Translator}
	case KindVoice:
		return `INSERT INTO library.voice (id, speaker, production_date) VALUES ($1, $2, $3)`,
			[]any{doc.ID, doc.Speaker, doc.ProductionDate}
	default:
		return `INSERT INTO library.booklet (id, author, production_date) VALUES ($1, $2, $3)`,
			[]any{doc.ID, doc.Author, doc.ProductionDate}
	}
}

func detailUpdate(doc *Document) (string, []any) {
	switch doc.Kind {
	case KindBook:
		return `UPDATE library.book SET author = $2, publish_date = $3, translator = $4 WHERE id = $1`,
			[]any{doc.ID, doc.Author, doc.PublishDate, doc.Translator}
	case KindVoice:
		return `UPDATE library.voice SET speaker = $2, production_date = $3 WHERE id = $1`,
			[]any{doc.ID, doc.Speaker, doc.ProductionDate}
	default:
		return `UPDATE library.booklet SET author = $2, production_date = $3 WHERE id = $1`,
			[]any{doc.ID, doc.Author, doc.ProductionDate}
	}
}
