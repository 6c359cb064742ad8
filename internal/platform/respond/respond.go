// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every JSON body the API produces.

Envelopes:

	{"data": ...}                       single resource
	{"data": [...], "meta": {...}}      paginated list
	{"error": "...", "code": "...", "details": {"field": ["..."]}}

The token endpoint is the one exception and returns {"token": "..."}.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/ctxutil"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes payload as is with the given status.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

func Token(writer http.ResponseWriter, token string) {
	JSON(writer, http.StatusOK, map[string]string{"token": token})
}

// Error renders err. Anything that is not an [apperr.AppError] becomes a
// masked 500; server errors are logged with their cause, client errors at
// debug level only.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	logger := ctxutil.GetLogger(ctx).With(
		slog.String("code", appError.Code),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
	)
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request_failed", slog.Any("cause", appError.Cause))
	} else {
		logger.DebugContext(ctx, "request_rejected", slog.String("error", appError.Message))
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.FieldMap(),
	})
}
