// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

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

// RegisterRoutes mounts the /sessions endpoints under the session policy.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategorySession})
	}

	router.With(guard("sessions.list")).Get("/", handler.list)
	router.With(guard("sessions.create")).Post("/", handler.create)

	router.Route("/{session_id}", func(r chi.Router) {
		r.With(guard("sessions.get")).Get("/", handler.get)
		r.With(guard("sessions.update")).Patch("/", handler.update)
		r.With(guard("sessions.delete")).Delete("/", handler.delete)

		r.With(guard("sessions.details.get")).Get("/details", handler.getDetails)
		r.With(guard("sessions.details.put")).Put("/details", handler.putDetails)

		r.With(guard("sessions.users.list")).Get("/users", handler.listMembers)
		r.With(guard("sessions.users.add")).Post("/users", handler.addMember)

		r.Route("/users/{user_id}", func(r chi.Router) {
			r.With(guard("sessions.users.get")).Get("/", handler.getMember)
			r.With(guard("sessions.users.update")).Patch("/", handler.updateMember)
			r.With(guard("sessions.users.remove")).Delete("/", handler.removeMember)

			r.With(guard("sessions.tasks.list")).Get("/tasks", handler.listTasks)
			r.With(guard("sessions.tasks.create")).Post("/tasks", handler.createTask)
			r.With(guard("sessions.tasks.get")).Get("/tasks/{task_id}", handler.getTask)
			r.With(guard("sessions.tasks.update")).Patch("/tasks/{task_id}", handler.updateTask)
			r.With(guard("sessions.tasks.delete")).Delete("/tasks/{task_id}", handler.deleteTask)

			r.With(guard("sessions.deadlines.list")).Get("/tasks/{task_id}/deadlines", handler.listDeadlines)
			r.With(guard("sessions.deadlines.create")).Post("/tasks/{task_id}/deadlines", handler.createDeadline)
			r.With(guard("sessions.deadlines.get")).Get("/tasks/{task_id}/deadlines/{deadline_id}", handler.getDeadline)
			r.With(guard("sessions.deadlines.update")).Patch("/tasks/{task_id}/deadlines/{deadline_id}", handler.updateDeadline)
			r.With(guard("sessions.deadlines.delete")).Delete("/tasks/{task_id}/deadlines/{deadline_id}", handler.deleteDeadline)
		})
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	sessions, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, sessions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Get(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Update(request.Context(), sessionID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Details

func (handler *Handler) getDetails(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	details, err := handler.service.GetDetails(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

func (handler *Handler) putDetails(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DetailsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	details, err := handler.service.PutDetails(request.Context(), sessionID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

// # Members

func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	members, total, err := handler.service.ListMembers(request.Context(), sessionID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, members, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) addMember(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.Int64Param(request, "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MemberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.AddMember(request.Context(), sessionID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, member)
}

func (handler *Handler) getMember(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.GetMember(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) updateMember(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MemberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.UpdateMember(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMember(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Tasks

func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	tasks, total, err := handler.service.ListTasks(request.Context(), ids[0], ids[1], params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input TaskInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.CreateTask(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, task)
}

func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.GetTask(request.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input TaskInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.UpdateTask(request.Context(), ids[0], ids[1], ids[2], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTask(request.Context(), ids[0], ids[1], ids[2]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Deadlines

func (handler *Handler) listDeadlines(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	deadlines, total, err := handler.service.ListDeadlines(request.Context(), ids[0], ids[1], ids[2], params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, deadlines, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createDeadline(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DeadlineInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deadline, err := handler.service.CreateDeadline(request.Context(), ids[0], ids[1], ids[2], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, deadline)
}

func (handler *Handler) getDeadline(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id", "deadline_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deadline, err := handler.service.GetDeadline(request.Context(), ids[0], ids[1], ids[2], ids[3])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deadline)
}

func (handler *Handler) updateDeadline(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id", "deadline_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DeadlineInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deadline, err := handler.service.UpdateDeadline(request.Context(), ids[0], ids[1], ids[2], ids[3], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deadline)
}

func (handler *Handler) deleteDeadline(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "session_id", "user_id", "task_id", "deadline_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDeadline(request.Context(), ids[0], ids[1], ids[2], ids[3]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
