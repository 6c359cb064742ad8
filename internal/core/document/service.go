// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

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
	"github.com/kanoon/kanoon/pkg/slug"
)

type Service struct {
	categories CategoryRepository
	documents  Repository
	tx         postgres.TxRunner
	files      storage.Presigner
	logger     *slog.Logger
}

func NewService(categories CategoryRepository, documents Repository, tx postgres.TxRunner, files storage.Presigner, logger *slog.Logger) *Service {
	return &Service{categories: categories, documents: documents, tx: tx, files: files, logger: logger}
}

// # Categories

type CategoryInput struct {
	Name *string `json:"name"`
}

// apply derives the slug from the name. Two names with the same slug
// collide on the unique slug index.
func (input CategoryInput) apply(category *Category) error {
	category.Name = pointer.Fallback(input.Name, category.Name)
	category.Slug = slug.From(category.Name)
	return (&validate.Validator{}).
		Required("name", category.Name).
		MaxLen("name", category.Name, 50).
		Custom("name", category.Name != "" && category.Slug == "", "Must contain a letter or digit").
		Err()
}

func (service *Service) ListCategories(ctx context.Context, params pagination.Params) ([]*Category, int, error) {
	return service.categories.ListCategories(ctx, params)
}

func (service *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return service.categories.GetCategory(ctx, id)
}

func (service *Service) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	category := &Category{}
	if err := input.apply(category); err != nil {
		return nil, err
	}
	if err := service.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (service *Service) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	category, err := service.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(category); err != nil {
		return nil, err
	}
	if err := service.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes an empty category; one that still files documents
// is a conflict.
func (service *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := service.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "category_deleted", slog.Int64("category_id", id))
	return nil
}

// # Documents

// Input is the create and patch payload. Kind is required on create and may
// only repeat the stored kind on patch.
type Input struct {
	Kind     *string `json:"type"`
	Topic    *string `json:"topic"`
	Subject  *string `json:"subject"`
	FilePath *string `json:"file_path"`
	Level    *int    `json:"level"`

	Author         *string `json:"author"`
	PublishDate    *string `json:"publish_date"`
	Translator     *string `json:"translator"`
	Speaker        *string `json:"speaker"`
	ProductionDate *string `json:"production_date"`
}

func (input Input) apply(doc *Document) {
	doc.Topic = pointer.Fallback(input.Topic, doc.Topic)
	doc.FilePath = pointer.Fallback(input.FilePath, doc.FilePath)
	if input.Subject != nil {
		doc.Subject = input.Subject
	}
	if input.Level != nil {
		doc.Level = input.Level
	}
	if input.Author != nil {
		doc.Author = input.Author
	}
	if input.PublishDate != nil {
		doc.PublishDate = input.PublishDate
	}
	if input.Translator != nil {
		doc.Translator = input.Translator
	}
	if input.Speaker != nil {
		doc.Speaker = input.Speaker
	}
	if input.ProductionDate != nil {
		doc.ProductionDate = input.ProductionDate
	}
}

// foreignFields lists the detail fields of input that doc's kind does not have.
func (input Input) foreignFields(kind string) []string {
	var out []string
	if input.Author != nil && kind == KindVoice {
		out = append(out, "author")
	}
	if input.PublishDate != nil && kind != KindBook {
		out = append(out, "publish_date")
	}
	if input.Translator != nil && kind != KindBook {
		out = append(out, "translator")
	}
	if input.Speaker != nil && kind != KindVoice {
		out = append(out, "speaker")
	}
	if input.ProductionDate != nil && kind == KindBook {
		out = append(out, "production_date")
	}
	return out
}

func validateDocument(doc *Document, input Input) error {
	v := (&validate.Validator{}).
		Required("topic", doc.Topic).
		MaxLen("topic", doc.Topic, 50).
		Required("file_path", doc.FilePath).
		MaxLen("file_path", doc.FilePath, 50)
	if doc.Subject != nil {
		v.MaxLen("subject", *doc.Subject, 50)
	}
	for _, field := range input.foreignFields(doc.Kind) {
		v.Custom(field, true, "Not a field of a "+doc.Kind)
	}

	switch doc.Kind {
	case KindBook:
		v.Required("author", pointer.Val(doc.Author)).
			Date("publish_date", pointer.Val(doc.PublishDate))
	case KindVoice:
		v.Required("speaker", pointer.Val(doc.Speaker)).
			Date("production_date", pointer.Val(doc.ProductionDate))
	case KindBooklet:
		v.Required("author", pointer.Val(doc.Author)).
			Date("production_date", pointer.Val(doc.ProductionDate))
	}
	return v.Err()
}

func validateKind(kind string) error {
	if access.DocumentFamily.Validate(kind) != nil {
		return (&validate.Validator{}).OneOf("type", kind, access.DocumentFamily.Kinds()...).Err()
	}
	return nil
}

// KindOf reports the stored kind of a document for the access gate.
func (service *Service) KindOf(ctx context.Context, id int64) (string, error) {
	return service.documents.KindOf(ctx, id)
}

// List pages through one category, optionally narrowed to one kind.
func (service *Service) List(ctx context.Context, categoryID int64, kind string, params pagination.Params) ([]*Document, int, error) {
	if _, err := service.categories.GetCategory(ctx, categoryID); err != nil {
		return nil, 0, err
	}
	if kind != "" {
		if err := validateKind(kind); err != nil {
			return nil, 0, err
		}
	}
	return service.documents.List(ctx, categoryID, kind, params)
}

// Get loads a document through its category path. A document filed under
// another category is not found.
func (service *Service) Get(ctx context.Context, categoryID, id int64) (*Document, error) {
	doc, err := service.documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.CategoryID != categoryID {
		return nil, apperr.NotFound("Document")
	}
	return doc, nil
}

func (service *Service) Create(ctx context.Context, categoryID int64, input Input) (*Document, error) {
	kind := pointer.Val(input.Kind)
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	if _, err := service.categories.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	doc := &Document{CategoryID: categoryID, Kind: kind}
	input.apply(doc)
	if err := validateDocument(doc, input); err != nil {
		return nil, err
	}

	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		return service.documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (service *Service) Update(ctx context.Context, categoryID, id int64, input Input) (*Document, error) {
	doc, err := service.Get(ctx, categoryID, id)
	if err != nil {
		return nil, err
	}
	if input.Kind != nil && *input.Kind != doc.Kind {
		return nil, validate.RequiredError("type", "The document type cannot be changed")
	}

	input.apply(doc)
	if err := validateDocument(doc, input); err != nil {
		return nil, err
	}

	err = service.tx.InTx(ctx, func(ctx context.Context) error {
		return service.documents.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (service *Service) Delete(ctx context.Context, categoryID, id int64) error {
	if _, err := service.Get(ctx, categoryID, id); err != nil {
		return err
	}
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		return service.documents.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "document_deleted", slog.Int64("document_id", id))
	return nil
}

// Download returns a presigned link to the document's file.
func (service *Service) Download(ctx context.Context, categoryID, id int64) (*storage.Link, error) {
	doc, err := service.Get(ctx, categoryID, id)
	if err != nil {
		return nil, err
	}
	return storage.LinkFor(ctx, service.files, doc.FilePath)
}
