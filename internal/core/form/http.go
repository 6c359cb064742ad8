// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
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

// RegisterRoutes mounts the /forms endpoints behind the form role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryForm})
	}

	router.With(guard("forms.list")).Get("/", handler.list)
	router.With(guard("forms.create")).Post("/", handler.create)
	router.With(guard("forms.get")).Get("/{form_id}", handler.get)
	router.With(guard("forms.update")).Patch("/{form_id}", handler.update)
	router.With(guard("forms.delete")).Delete("/{form_id}", handler.delete)
	router.With(guard("forms.download")).Get("/{form_id}/download", handler.download)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	forms, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, forms, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, form)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	formID, err := requestutil.Int64Param(request, "form_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.service.Get(request.Context(), formID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	formID, err := requestutil.Int64Param(request, "form_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.service.Update(request.Context(), formID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	formID, err := requestutil.Int64Param(request, "form_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), formID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	formID, err := requestutil.Int64Param(request, "form_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Download(request.Context(), formID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}
