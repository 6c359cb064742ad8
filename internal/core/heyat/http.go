// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package heyat

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

// RegisterRoutes mounts the /heyats endpoints. Every route needs the heyat role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryHeyat})
	}

	router.With(guard("heyats.list")).Get("/", handler.list)
	router.With(guard("heyats.create")).Post("/", handler.create)

	router.Route("/{heyat_id}", func(r chi.Router) {
		r.With(guard("heyats.get")).Get("/", handler.get)
		r.With(guard("heyats.update")).Patch("/", handler.update)
		r.With(guard("heyats.delete")).Delete("/", handler.delete)

		r.With(guard("heyats.users.list")).Get("/users", handler.listAttendees)
		r.With(guard("heyats.users.add")).Post("/users", handler.addAttendee)
		r.With(guard("heyats.users.get")).Get("/users/{user_id}", handler.getAttendee)
		r.With(guard("heyats.users.update")).Patch("/users/{user_id}", handler.updateAttendee)
		r.With(guard("heyats.users.remove")).Delete("/users/{user_id}", handler.removeAttendee)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	heyats, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, heyats, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	heyat, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, heyat)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	heyat, err := handler.service.Get(request.Context(), heyatID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, heyat)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	heyat, err := handler.service.Update(request.Context(), heyatID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, heyat)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), heyatID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Attendance

func (handler *Handler) listAttendees(writer http.ResponseWriter, request *http.Request) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	attendees, total, err := handler.service.ListAttendees(request.Context(), heyatID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, attendees, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) addAttendee(writer http.ResponseWriter, request *http.Request) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendeeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.AddAttendee(request.Context(), heyatID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, attendee)
}

func (handler *Handler) getAttendee(writer http.ResponseWriter, request *http.Request) {
	heyatID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.GetAttendee(request.Context(), heyatID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attendee)
}

func (handler *Handler) updateAttendee(writer http.ResponseWriter, request *http.Request) {
	heyatID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendeeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.UpdateAttendee(request.Context(), heyatID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attendee)
}

func (handler *Handler) removeAttendee(writer http.ResponseWriter, request *http.Request) {
	heyatID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveAttendee(request.Context(), heyatID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func attendeeKey(request *http.Request) (int64, int64, error) {
	heyatID, err := requestutil.Int64Param(request, "heyat_id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		return 0, 0, err
	}
	return heyatID, userID, nil
}
