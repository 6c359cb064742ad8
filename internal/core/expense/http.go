// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

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

// RegisterRoutes mounts the /expenses endpoints behind the accounting role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryAccounting})
	}

	router.With(guard("expenses.list")).Get("/", handler.list)
	router.With(guard("expenses.create")).Post("/", handler.create)
	router.With(guard("expenses.get")).Get("/{expense_id}", handler.get)
	router.With(guard("expenses.update")).Patch("/{expense_id}", handler.update)
	router.With(guard("expenses.delete")).Delete("/{expense_id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	expenses, total, err := handler.service.List(request.Context(), requestutil.Query(request, "state"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, expenses, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	expense, err := handler.service.Create(request.Context(), principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, expense)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	expenseID, err := requestutil.Int64Param(request, "expense_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expense, err := handler.service.Get(request.Context(), expenseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, expense)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	expenseID, err := requestutil.Int64Param(request, "expense_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	expense, err := handler.service.Update(request.Context(), expenseID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, expense)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	expenseID, err := requestutil.Int64Param(request, "expense_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), expenseID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
