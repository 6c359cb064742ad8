// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	"github.com/kanoon/kanoon/internal/platform/respond"
)

type tokenTable map[string]*access.Principal

func (table tokenTable) Authenticate(_ context.Context, token string) (*access.Principal, error) {
	if principal, ok := table[token]; ok {
		return principal, nil
	}
	return nil, errors.New("unknown token")
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	gate := access.NewGate(tokenTable{
		"camp":  {UserID: 5, Approved: true, Roles: access.NewRoleSet(access.RoleCamp)},
		"fresh": {UserID: 6, Approved: false},
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ownDial := access.Operation{
		Name:     "dials.get",
		Category: access.CategorySelf,
		Owner: func(_ context.Context, principal *access.Principal, target access.Target) error {
			owner, _ := strconv.ParseInt(target.Param("owner"), 10, 64)
			return access.OwnedBy(principal, owner)
		},
	}

	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, r *http.Request) {
		principal := middleware.GetPrincipal(r.Context())
		respond.OK(w, map[string]int64{"user_id": principal.UserID})
	}
	router.With(middleware.Guard(gate, access.Operation{Name: "camps.get", Category: access.CategoryCamp})).Get("/camps/{camp_id}", ok)
	router.With(middleware.Guard(gate, access.Operation{Name: "expenses.list", Category: access.CategoryAccounting})).Get("/expenses", ok)
	router.With(middleware.Guard(gate, ownDial)).Get("/dials/{dial_id}", ok)
	return router
}

/*
TestGuard_HTTP exercises the header contract and the status mapping.
*/
func TestGuard_HTTP(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"no header", "/camps/1", "", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"basic rejected", "/camps/1", "Basic Y2FtcDpwdw==", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"camp allowed", "/camps/1", "Token camp", http.StatusOK, ""},
		{"accounting denied", "/expenses", "Token camp", http.StatusForbidden, apperr.CodeForbidden},
		{"unapproved", "/camps/1", "Token fresh", http.StatusUnauthorized, apperr.CodeNotApproved},
		{"own dial", "/dials/3?owner=5", "Token camp", http.StatusOK, ""},
		{"foreign dial", "/dials/3?owner=9", "Token camp", http.StatusForbidden, apperr.CodeOwnershipViolation},
	}

	router := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode == "" {
				return
			}
			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}
