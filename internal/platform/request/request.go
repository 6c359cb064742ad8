// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It hides chi's parameter extraction and the JSON body decoding so handlers
share one error shape for malformed input.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/ctxutil"
	"github.com/kanoon/kanoon/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Query retrieves a query string value.
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
Int64Param parses a numeric path parameter such as {camp_id}.

A missing or non-numeric value cannot name a row, so it is reported as
not found rather than as a validation failure.
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("Resource")
	}
	return id, nil
}

// Principal returns the caller admitted by the access gate, or nil on
// unguarded routes.
func Principal(request *http.Request) *access.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal returns the gate's principal.

Returns:
  - error: apperr.Unauthorized if the route was not guarded
*/
func RequiredPrincipal(request *http.Request) (*access.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}

// Int64Params is [Int64Param] for several parameters, returned in order.
func Int64Params(request *http.Request, names ...string) ([]int64, error) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := Int64Param(request, name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
