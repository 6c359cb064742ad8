// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	requestutil "github.com/kanoon/kanoon/internal/platform/request"
	"github.com/kanoon/kanoon/internal/platform/respond"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type Handler struct {
	service *Service
	gate    *access.Gate
}

func NewHandler(service *Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

/*
RegisterRoutes mounts the library under /category.

Collection routes use the document policy. Routes that address a single
document resolve their roles from the stored kind through the document
family, so a row with an unknown kind fails closed.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryDocument})
	}
	guardDocument := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Resolve: handler.resolveDocument})
	}

	router.With(guard("categories.list")).Get("/", handler.listCategories)
	router.With(guard("categories.create")).Post("/", handler.createCategory)

	router.Route("/{category_id}", func(r chi.Router) {
		r.With(guard("categories.get")).Get("/", handler.getCategory)
		r.With(guard("categories.update")).Patch("/", handler.updateCategory)
		r.With(guard("categories.delete")).Delete("/", handler.deleteCategory)

		r.With(guard("documents.list")).Get("/documents", handler.list)
		r.With(guard("documents.create")).Post("/documents", handler.create)
		r.With(guardDocument("documents.get")).Get("/documents/{document_id}", handler.get)
		r.With(guardDocument("documents.update")).Patch("/documents/{document_id}", handler.update)
		r.With(guardDocument("documents.delete")).Delete("/documents/{document_id}", handler.delete)
		r.With(guardDocument("documents.download")).Get("/documents/{document_id}/download", handler.download)
	})
}

func (handler *Handler) resolveDocument(ctx context.Context, target access.Target) (access.RoleSet, error) {
	id, err := strconv.ParseInt(target.Param("document_id"), 10, 64)
	if err != nil {
		return nil, apperr.NotFound("Document")
	}
	return access.DocumentFamily.ResolveRequiredRoles(ctx, access.KindLoaderFunc(handler.service.KindOf), id)
}

// # Categories

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	categories, total, err := handler.service.ListCategories(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.Int64Param(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.Int64Param(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), categoryID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.Int64Param(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Documents

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.Int64Param(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	docs, total, err := handler.service.List(request.Context(), categoryID, requestutil.Query(request, "type"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, docs, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.Int64Param(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.Create(request.Context(), categoryID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, doc)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "category_id", "document_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.Get(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "category_id", "document_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.Update(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "category_id", "document_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "category_id", "document_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Download(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}
