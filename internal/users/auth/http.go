// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/constants"
	"github.com/kanoon/kanoon/internal/platform/respond"
)

// Handler implements the token issuance endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /gettoken.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/gettoken", handler.getToken)
}

/*
GET /api/gettoken.

Description: Exchanges HTTP Basic credentials (username or email, password)
for a bearer token. Unapproved members receive a token too; the gate decides
what it may reach.

Response:
  - 200: {"token": "..."}
  - 401: Missing or wrong credentials
  - 429: Too many failed attempts
*/
func (handler *Handler) getToken(writer http.ResponseWriter, request *http.Request) {
	login, password, ok := request.BasicAuth()
	if !ok || login == "" {
		writer.Header().Set(constants.HeaderWWWAuthenticate, BasicRealm)
		respond.Error(writer, request, apperr.Unauthorized("Basic credentials required"))
		return
	}

	token, err := handler.service.Login(request.Context(), login, password)
	if err != nil {
		if appError := apperr.As(err); appError != nil {
			switch appError.Code {
			case apperr.CodeUnauthorized:
				writer.Header().Set(constants.HeaderWWWAuthenticate, BasicRealm)
			case apperr.CodeRateLimited:
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(int(handler.service.lockout.Seconds())))
			}
		}
		respond.Error(writer, request, err)
		return
	}

	respond.Token(writer, token)
}
