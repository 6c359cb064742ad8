// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	requestutil "github.com/kanoon/kanoon/internal/platform/request"
	"github.com/kanoon/kanoon/internal/platform/respond"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// Handler implements the HTTP layer of the identity store.
type Handler struct {
	service *Service
	gate    *access.Gate
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// RegisterRoutes mounts the /users endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(op access.Operation) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, op)
	}
	self := func(name string) access.Operation {
		return access.Operation{Name: name, Category: access.CategorySelf}
	}
	admin := func(name string) access.Operation {
		return access.Operation{Name: name, Category: access.CategoryAdmin}
	}
	ownDial := access.Operation{Name: "users.dials.own", Category: access.CategorySelf, Owner: access.OwnerOf("dial_id", handler.service.DialOwner)}
	ownGrade := access.Operation{Name: "users.grades.own", Category: access.CategorySelf, Owner: access.OwnerOf("grade_id", handler.service.GradeOwner)}
	ownFriends := func(name string) access.Operation {
		return access.Operation{Name: name, Category: access.CategorySelf, Owner: access.OwnerOf("user_id", pathUser)}
	}

	router.Post("/", handler.signup)
	router.With(guard(admin("users.list"))).Get("/", handler.listUsers)

	// Self service
	router.Route("/self", func(r chi.Router) {
		r.With(guard(access.Operation{Name: "users.self.get", Category: access.CategorySelf, AllowUnapproved: true})).Get("/", handler.getSelf)
		r.With(guard(self("users.self.update"))).Patch("/", handler.updateSelf)

		r.With(guard(self("users.details.get"))).Get("/details", handler.getDetails)
		r.With(guard(self("users.details.put"))).Put("/details", handler.putDetails)

		r.With(guard(self("users.dials.list"))).Get("/dials", handler.listDials)
		r.With(guard(self("users.dials.create"))).Post("/dials", handler.createDial)
		r.With(guard(ownDial)).Get("/dials/{dial_id}", handler.getDial)
		r.With(guard(ownDial)).Patch("/dials/{dial_id}", handler.updateDial)
		r.With(guard(ownDial)).Delete("/dials/{dial_id}", handler.deleteDial)

		r.With(guard(self("users.grades.list"))).Get("/grades", handler.listGrades)
		r.With(guard(self("users.grades.create"))).Post("/grades", handler.createGrade)
		r.With(guard(ownGrade)).Get("/grades/{grade_id}", handler.getGrade)
		r.With(guard(ownGrade)).Patch("/grades/{grade_id}", handler.updateGrade)
		r.With(guard(ownGrade)).Delete("/grades/{grade_id}", handler.deleteGrade)

		r.With(guard(self("users.roles.self"))).Get("/roles", handler.listOwnRoles)
		r.With(guard(self("users.messages.inbox"))).Get("/messages", handler.inbox)
	})

	// Administration
	router.Route("/{user_id}", func(r chi.Router) {
		r.With(guard(admin("users.get"))).Get("/", handler.getUser)
		r.With(guard(admin("users.change_kind"))).Patch("/", handler.changeKind)
		r.With(guard(admin("users.delete"))).Delete("/", handler.deleteUser)
		r.With(guard(admin("users.accept"))).Post("/accept", handler.accept)

		r.With(guard(admin("users.roles.list"))).Get("/roles", handler.listRoles)
		r.With(guard(admin("users.roles.grant"))).Post("/roles", handler.grantRole)
		r.With(guard(admin("users.roles.revoke"))).Delete("/roles/{role}", handler.revokeRole)

		r.With(guard(admin("users.messages.list"))).Get("/messages", handler.listMessages)
		r.With(guard(admin("users.messages.send"))).Post("/messages", handler.sendMessage)
		r.With(guard(admin("users.messages.update"))).Patch("/messages/{message_id}", handler.updateMessage)
		r.With(guard(admin("users.messages.delete"))).Delete("/messages/{message_id}", handler.deleteMessage)

		r.With(guard(ownFriends("users.friends.list"))).Get("/friends", handler.listFriends)
		r.With(guard(ownFriends("users.friends.add"))).Post("/friends", handler.addFriend)
		r.With(guard(ownFriends("users.friends.remove"))).Delete("/friends/{friend_id}", handler.removeFriend)
	})
}

// pathUser makes the {user_id} segment its own owner.
func pathUser(_ context.Context, id int64) (int64, error) {
	return id, nil
}

// # Identity Endpoints

/*
POST /api/users.

Description: Public signup. The account starts unapproved.

Response:
  - 201: User
  - 400: Validation failure
  - 409: Duplicate username or email
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

// GET /api/users?type=student|officer.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	users, total, err := handler.service.ListUsers(request.Context(), Kind(requestutil.Query(request, "type")), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/users/self.

Description: Returns the caller's account. Reachable before approval so a
new member can see their own state.
*/
func (handler *Handler) getSelf(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// PATCH /api/users/self.
func (handler *Handler) updateSelf(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateSelfInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateSelf(request.Context(), principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
PATCH /api/users/{user_id}.

Description: Moves an account between the student and officer kinds.
*/
func (handler *Handler) changeKind(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangeKindInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.ChangeKind(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// POST /api/users/{user_id}/accept.
func (handler *Handler) accept(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Accept(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// # Details

func (handler *Handler) getDetails(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	details, err := handler.service.GetDetails(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

func (handler *Handler) putDetails(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Details
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	details, err := handler.service.PutDetails(request.Context(), principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

// # Dials

func (handler *Handler) listDials(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	dials, total, err := handler.service.ListDials(request.Context(), principal.UserID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, dials, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createDial(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DialInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dial, err := handler.service.CreateDial(request.Context(), principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, dial)
}

func (handler *Handler) getDial(writer http.ResponseWriter, request *http.Request) {
	dialID, err := requestutil.Int64Param(request, "dial_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dial, err := handler.service.GetDial(request.Context(), dialID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dial)
}

func (handler *Handler) updateDial(writer http.ResponseWriter, request *http.Request) {
	dialID, err := requestutil.Int64Param(request, "dial_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DialInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dial, err := handler.service.UpdateDial(request.Context(), dialID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dial)
}

func (handler *Handler) deleteDial(writer http.ResponseWriter, request *http.Request) {
	dialID, err := requestutil.Int64Param(request, "dial_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDial(request.Context(), dialID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Grades

func (handler *Handler) listGrades(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	grades, total, err := handler.service.ListGrades(request.Context(), principal.UserID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, grades, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createGrade(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GradeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grade, err := handler.service.CreateGrade(request.Context(), principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, grade)
}

func (handler *Handler) getGrade(writer http.ResponseWriter, request *http.Request) {
	gradeID, err := requestutil.Int64Param(request, "grade_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	grade, err := handler.service.GetGrade(request.Context(), gradeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grade)
}

func (handler *Handler) updateGrade(writer http.ResponseWriter, request *http.Request) {
	gradeID, err := requestutil.Int64Param(request, "grade_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GradeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grade, err := handler.service.UpdateGrade(request.Context(), gradeID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grade)
}

func (handler *Handler) deleteGrade(writer http.ResponseWriter, request *http.Request) {
	gradeID, err := requestutil.Int64Param(request, "grade_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGrade(request.Context(), gradeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Roles

// roleView is the JSON shape of a role assignment.
type roleView struct {
	UserID   int64       `json:"user_id"`
	RoleName access.Role `json:"role_name"`
}

func roleViews(userID int64, roles []access.Role) []roleView {
	views := make([]roleView, len(roles))
	for i, role := range roles {
		views[i] = roleView{UserID: userID, RoleName: role}
	}
	return views
}

func (handler *Handler) listOwnRoles(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := handler.service.Roles(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roleViews(principal.UserID, roles))
}

func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := handler.service.Roles(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roleViews(userID, roles))
}

// grantRoleRequest is the payload of POST /api/users/{user_id}/roles.
type grantRoleRequest struct {
	RoleName string `json:"role_name"`
}

func (handler *Handler) grantRole(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input grantRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.service.GrantRole(request.Context(), userID, input.RoleName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, roleView{UserID: userID, RoleName: role})
}

func (handler *Handler) revokeRole(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RevokeRole(request.Context(), userID, requestutil.Param(request, "role")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Messages

/*
GET /api/users/self/messages?filter=read|unread.

Description: Lists the caller's inbox and marks the returned unread
messages as read.
*/
func (handler *Handler) inbox(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := MessageFilter(requestutil.Query(request, "filter"))
	messages, total, err := handler.service.Inbox(request.Context(), principal.UserID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	messages, total, err := handler.service.Messages(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) sendMessage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MessageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.SendMessage(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, message)
}

func (handler *Handler) updateMessage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	messageID, err := requestutil.Int64Param(request, "message_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MessageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.UpdateMessage(request.Context(), userID, messageID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, message)
}

func (handler *Handler) deleteMessage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	messageID, err := requestutil.Int64Param(request, "message_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMessage(request.Context(), userID, messageID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Friends Endpoints

// GET /api/users/{user_id}/friends.
func (handler *Handler) listFriends(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	friends, total, err := handler.service.ListFriends(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, friends, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/users/{user_id}/friends.

Response:
  - 201: Friend
  - 400: Missing friend_id or a self friendship
  - 404: Unknown member
  - 409: The pair already exists in either direction
*/
func (handler *Handler) addFriend(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input FriendInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	friend, err := handler.service.AddFriend(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, friend)
}

func (handler *Handler) removeFriend(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "user_id", "friend_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFriend(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
