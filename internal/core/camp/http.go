// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp

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

// RegisterRoutes mounts the /camps endpoints. Every route needs the camp role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryCamp})
	}

	router.With(guard("camps.list")).Get("/", handler.list)
	router.With(guard("camps.create")).Post("/", handler.create)

	router.Route("/{camp_id}", func(r chi.Router) {
		r.With(guard("camps.get")).Get("/", handler.get)
		r.With(guard("camps.update")).Patch("/", handler.update)
		r.With(guard("camps.delete")).Delete("/", handler.delete)

		r.With(guard("camps.users.list")).Get("/users", handler.listParticipants)
		r.With(guard("camps.users.add")).Post("/users", handler.addParticipant)
		r.With(guard("camps.users.get")).Get("/users/{user_id}", handler.getParticipant)
		r.With(guard("camps.users.update")).Patch("/users/{user_id}", handler.updateParticipant)
		r.With(guard("camps.users.remove")).Delete("/users/{user_id}", handler.removeParticipant)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	camps, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, camps, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	camp, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, camp)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	camp, err := handler.service.Get(request.Context(), campID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, camp)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	camp, err := handler.service.Update(request.Context(), campID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, camp)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), campID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Participants

func (handler *Handler) listParticipants(writer http.ResponseWriter, request *http.Request) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	participants, total, err := handler.service.ListParticipants(request.Context(), campID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, participants, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) addParticipant(writer http.ResponseWriter, request *http.Request) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ParticipantInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	participant, err := handler.service.AddParticipant(request.Context(), campID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, participant)
}

func (handler *Handler) getParticipant(writer http.ResponseWriter, request *http.Request) {
	campID, userID, err := participantKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	participant, err := handler.service.GetParticipant(request.Context(), campID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, participant)
}

func (handler *Handler) updateParticipant(writer http.ResponseWriter, request *http.Request) {
	campID, userID, err := participantKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ParticipantInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	participant, err := handler.service.UpdateParticipant(request.Context(), campID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, participant)
}

func (handler *Handler) removeParticipant(writer http.ResponseWriter, request *http.Request) {
	campID, userID, err := participantKey(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveParticipant(request.Context(), campID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func participantKey(request *http.Request) (int64, int64, error) {
	campID, err := requestutil.Int64Param(request, "camp_id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		return 0, 0, err
	}
	return campID, userID, nil
}
