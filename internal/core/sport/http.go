// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sport

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

// RegisterRoutes mounts the /sports endpoints. Every route needs the sport role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategorySport})
	}

	router.With(guard("sports.list")).Get("/", handler.list)
	router.With(guard("sports.create")).Post("/", handler.create)

	router.Route("/{sport_id}", func(r chi.Router) {
		r.With(guard("sports.get")).Get("/", handler.get)
		r.With(guard("sports.update")).Patch("/", handler.update)
		r.With(guard("sports.delete")).Delete("/", handler.delete)

		r.With(guard("sports.users.list")).Get("/users", handler.listAttendees)
		r.With(guard("sports.users.add")).Post("/users", handler.addAttendee)
		r.With(guard("sports.users.get")).Get("/users/{user_id}", handler.getAttendee)
		r.With(guard("sports.users.update")).Patch("/users/{user_id}", handler.updateAttendee)
		r.With(guard("sports.users.remove")).Delete("/users/{user_id}", handler.removeAttendee)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	sports, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, sports, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sport, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, sport)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sport, err := handler.service.Get(request.Context(), sportID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sport)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sport, err := handler.service.Update(request.Context(), sportID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sport)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), sportID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Attendance

func (handler *Handler) listAttendees(writer http.ResponseWriter, request *http.Request) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	attendees, total, err := handler.service.ListAttendees(request.Context(), sportID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, attendees, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) addAttendee(writer http.ResponseWriter, request *http.Request) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendeeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.AddAttendee(request.Context(), sportID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, attendee)
}

func (handler *Handler) getAttendee(writer http.ResponseWriter, request *http.Request) {
	sportID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.GetAttendee(request.Context(), sportID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attendee)
}

func (handler *Handler) updateAttendee(writer http.ResponseWriter, request *http.Request) {
	sportID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendeeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	attendee, err := handler.service.UpdateAttendee(request.Context(), sportID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attendee)
}

func (handler *Handler) removeAttendee(writer http.ResponseWriter, request *http.Request) {
	sportID, userID, err := attendeeKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveAttendee(request.Context(), sportID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func attendeeKey(request *http.Request) (int64, int64, error) {
	sportID, err := requestutil.Int64Param(request, "sport_id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		return 0, 0, err
	}
	return sportID, userID, nil
}
