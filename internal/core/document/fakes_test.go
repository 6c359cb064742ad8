// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/core/document"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type memoryRepository struct {
	categories *memtable.Table[document.Category]
	documents  *memtable.Table[document.Document]
}

// presignerStub returns a fake link for any key.
type presignerStub struct{}

func (presignerStub) PresignGet(_ context.Context, key string) (string, error) {
	return "https://files.example.test/" + key + "?sig=1", nil
}

func newTestService() (*document.Service, *memoryRepository) {
	repo := &memoryRepository{
		categories: memtable.New[document.Category](),
		documents:  memtable.New[document.Document](),
	}
	tx := memtable.NewTx(repo.categories, repo.documents)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return document.NewService(repo, repo, tx, presignerStub{}, logger), repo
}

func categoryByID(id int64) func(document.Category) bool {
	return func(c document.Category) bool { return c.ID == id }
}

func documentByID(id int64) func(document.Document) bool {
	return func(d document.Document) bool { return d.ID == id }
}

func (repo *memoryRepository) ListCategories(_ context.Context, params pagination.Params) ([]*document.Category, int, error) {
	items, total := memtable.Page(repo.categories.Select(nil), params)
	return items, total, nil
}

func (repo *memoryRepository) GetCategory(_ context.Context, id int64) (*document.Category, error) {
	found, ok := repo.categories.Find(categoryByID(id))
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return &found, nil
}

func (repo *memoryRepository) slugTaken(c *document.Category) bool {
	return repo.categories.Any(func(existing document.Category) bool {
		return existing.Slug == c.Slug && existing.ID != c.ID
	})
}

func (repo *memoryRepository) CreateCategory(_ context.Context, c *document.Category) error {
	if repo.slugTaken(c) {
		return apperr.Conflict("Duplicate value violates category_slug_key")
	}
	c.ID = repo.categories.NextID()
	repo.categories.Insert(*c)
	return nil
}

func (repo *memoryRepository) UpdateCategory(_ context.Context, c *document.Category) error {
	if repo.slugTaken(c) {
		return apperr.Conflict("Duplicate value violates category_slug_key")
	}
	if !repo.categories.Replace(categoryByID(c.ID), *c) {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repo *memoryRepository) DeleteCategory(_ context.Context, id int64) error {
	if repo.documents.Any(func(d document.Document) bool { return d.CategoryID == id }) {
		return apperr.Conflict("Category is still referenced")
	}
	if repo.categories.Remove(categoryByID(id)) == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repo *memoryRepository) List(_ context.Context, categoryID int64, kind string, params pagination.Params) ([]*document.Document, int, error) {
	items, total := memtable.Page(repo.documents.Select(func(d document.Document) bool {
		return d.CategoryID == categoryID && (kind == "" || d.Kind == kind)
	}), params)
	return items, total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*document.Document, error) {
	found, ok := repo.documents.Find(documentByID(id))
	if !ok {
		return nil, apperr.NotFound("Document")
	}
	return &found, nil
}

func (repo *memoryRepository) KindOf(ctx context.Context, id int64) (string, error) {
	doc, err := repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Kind, nil
}

func (repo *memoryRepository) Create(_ context.Context, doc *document.Document) error {
	if access.DocumentFamily.Validate(doc.Kind) != nil {
		return errors.New("no detail table for kind " + doc.Kind)
	}
	doc.ID = repo.documents.NextID()
	repo.documents.Insert(*doc)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, doc *document.Document) error {
	if !repo.documents.Replace(documentByID(doc.ID), *doc) {
		return apperr.NotFound("Document")
	}
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if repo.documents.Remove(documentByID(id)) == 0 {
		return apperr.NotFound("Document")
	}
	return nil
}
