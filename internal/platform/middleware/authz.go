// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/constants"
	"github.com/kanoon/kanoon/internal/platform/ctxutil"
	"github.com/kanoon/kanoon/internal/platform/respond"
)

// requestTarget exposes chi URL parameters, falling back to the query string.
type requestTarget struct {
	request *http.Request
}

func (target requestTarget) Param(name string) string {
	if value := chi.URLParam(target.request, name); value != "" {
		return value
	}
	return target.request.URL.Query().Get(name)
}

// principalHolder lets outer middleware learn who a request was served for.
type principalHolder struct {
	userID int64
}

type principalHolderKey struct{}

func withPrincipalHolder(ctx context.Context, holder *principalHolder) context.Context {
	return context.WithValue(ctx, principalHolderKey{}, holder)
}

func principalHolderFrom(ctx context.Context) *principalHolder {
	holder, _ := ctx.Value(principalHolderKey{}).(*principalHolder)
	return holder
}

// Guard runs the access gate for op before the wrapped handler.
//
// # Flow
//  1. Parse 'Authorization: Token <token>'.
//  2. Run the gate pipeline (credential, approval, role, ownership).
//  3. On rejection, write the error and stop. The handler never runs.
//  4. On success, inject the [*access.Principal] into the request context.
//
// # Usage
//
// Mount per route with chi's With, so URL parameters are already resolved:
//
//	router.With(middleware.Guard(gate, opGetCamp)).Get("/{camp_id}", handler.getCamp)
func Guard(gate *access.Gate, op access.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			credential := access.ParseCredential(request.Header.Get(constants.HeaderAuthorization))

			principal, err := gate.Check(request.Context(), op, credential, requestTarget{request: request})
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if holder := principalHolderFrom(request.Context()); holder != nil {
				holder.userID = principal.UserID
			}

			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the [*access.Principal] from the [context.Context].
//
// # Returns
//   - The principal if the request passed a [Guard].
//   - nil for unguarded routes.
func GetPrincipal(ctx context.Context) *access.Principal {
	return ctxutil.GetPrincipal(ctx)
}
