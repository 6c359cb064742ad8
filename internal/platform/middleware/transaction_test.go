// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	"github.com/kanoon/kanoon/internal/platform/respond"
)

// fakeRunner mimics postgres.DB.InTx without a database.
type fakeRunner struct {
	commitErr error
	committed bool
	rolled    bool
}

func (runner *fakeRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		runner.rolled = true
		return err
	}
	if runner.commitErr != nil {
		runner.rolled = true
		return runner.commitErr
	}
	runner.committed = true
	return nil
}

/*
TestTransaction_Outcomes checks commit and rollback decisions by status code.
*/
func TestTransaction_Outcomes(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantStatus    int
		wantCommitted bool
	}{
		{
			name: "created commits",
			handler: func(w http.ResponseWriter, r *http.Request) {
				respond.Created(w, map[string]int{"id": 1})
			},
			wantStatus:    http.StatusCreated,
			wantCommitted: true,
		},
		{
			name:          "implicit 200 commits",
			handler:       func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) },
			wantStatus:    http.StatusOK,
			wantCommitted: true,
		},
		{
			name: "conflict rolls back",
			handler: func(w http.ResponseWriter, r *http.Request) {
				respond.Error(w, r, apperr.Conflict("duplicate"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "forbidden rolls back",
			handler: func(w http.ResponseWriter, r *http.Request) {
				respond.Error(w, r, apperr.Forbidden())
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			handler := middleware.Transaction(runner)(tt.handler)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/camps", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCommitted, runner.committed)
			assert.Equal(t, !tt.wantCommitted, runner.rolled)
		})
	}
}

/*
TestTransaction_CommitFailureHidesSuccess ensures a lost commit never reaches
the client as a success.
*/
func TestTransaction_CommitFailureHidesSuccess(t *testing.T) {
	runner := &fakeRunner{commitErr: errors.New("connection reset")}
	handler := middleware.Transaction(runner)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Created(w, map[string]string{"secret": "created"})
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/forms", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "created")

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeStorage, envelope.Code)
}
