// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/sec"
	"github.com/kanoon/kanoon/internal/users/account"
	"github.com/kanoon/kanoon/internal/users/auth"
)

// userTable is a read-mostly account.UserRepository.
type userTable struct {
	account.UserRepository
	byID map[int64]*account.User
}

func (table *userTable) FindByID(_ context.Context, id int64) (*account.User, error) {
	user, ok := table.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (table *userTable) FindByLogin(ctx context.Context, login string) (*account.User, error) {
	for id, user := range table.byID {
		if user.Username == login || user.Email == login {
			return table.FindByID(ctx, id)
		}
	}
	return nil, apperr.NotFound("User")
}

// roleTable is a read-only account.RoleRepository.
type roleTable struct {
	account.RoleRepository
	byID map[int64][]access.Role
}

func (table *roleTable) Roles(_ context.Context, userID int64) ([]access.Role, error) {
	return table.byID[userID], nil
}

// memoryThrottle counts failures without expiry.
type memoryThrottle struct {
	max      int
	failures map[string]int
}

func (throttle *memoryThrottle) Blocked(_ context.Context, login string) (bool, error) {
	return throttle.failures[login] >= throttle.max, nil
}

func (throttle *memoryThrottle) Fail(_ context.Context, login string) error {
	throttle.failures[login]++
	return nil
}

func (throttle *memoryThrottle) Reset(_ context.Context, login string) error {
	delete(throttle.failures, login)
	return nil
}

type fixture struct {
	service  *auth.Service
	users    *userTable
	roles    *roleTable
	throttle *memoryThrottle
	now      time.Time
}

func (f *fixture) clock() time.Time { return f.now }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)

	f := &fixture{
		users: &userTable{byID: map[int64]*account.User{
			7: {ID: 7, Username: "ali.reza", Email: "ali@example.org", PasswordHash: hash, Kind: account.KindOfficer},
		}},
		roles:    &roleTable{byID: map[int64][]access.Role{7: {access.RoleCamp}}},
		throttle: &memoryThrottle{max: 3, failures: map[string]int{}},
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	signer := sec.NewTokenSigner("a-test-secret-that-is-long-enough", "kanoon", f.clock)
	f.service = auth.NewService(f.users, f.roles, signer, f.throttle,
		auth.Options{TokenTTL: time.Hour, Lockout: 15 * time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

/*
TestVerify_ReflectsCurrentState reloads approval on every call, so an
acceptance between two requests is visible on the second.
*/
func TestVerify_ReflectsCurrentState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.service.Issue(ctx, f.users.byID[7])
	require.NoError(t, err)

	principal, err := f.service.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.False(t, principal.Approved)
	assert.True(t, principal.Roles.Has(access.RoleCamp))

	f.users.byID[7].Approved = true
	principal, err = f.service.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.True(t, principal.Approved)
	assert.Equal(t, int64(7), principal.UserID)
}

/*
TestVerify_Idempotent returns the same identity for repeated calls.
*/
func TestVerify_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.service.Issue(ctx, f.users.byID[7])
	require.NoError(t, err)

	first, err := f.service.Verify(ctx, token)
	require.NoError(t, err)
	second, err := f.service.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

/*
TestVerify_Failures distinguishes the three rejection reasons.
*/
func TestVerify_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.service.Issue(ctx, f.users.byID[7])
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		_, err := f.service.Verify(ctx, token+"x")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("one second before expiry", func(t *testing.T) {
		f.now = f.now.Add(time.Hour - time.Second)
		defer func() { f.now = f.now.Add(-(time.Hour - time.Second)) }()
		_, err := f.service.Verify(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("at expiry", func(t *testing.T) {
		f.now = f.now.Add(time.Hour)
		defer func() { f.now = f.now.Add(-time.Hour) }()
		_, err := f.service.Verify(ctx, token)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("deleted subject", func(t *testing.T) {
		ghost, err := f.service.Issue(ctx, &account.User{ID: 404})
		require.NoError(t, err)
		_, err = f.service.Verify(ctx, ghost)
		assert.ErrorIs(t, err, auth.ErrTokenNotFound)
	})
}

/*
TestLogin_Throttle blocks a login after repeated failures, even with the
right password, and a success resets the counter.
*/
func TestLogin_Throttle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, "ali@example.org", "correct-horse")
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "ali.reza", "wrong")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Login(ctx, "ali.reza", "correct-horse")
	require.NoError(t, err)
	assert.Zero(t, f.throttle.failures["ali.reza"])

	for i := 0; i < 3; i++ {
		_, err = f.service.Login(ctx, "ali.reza", "wrong")
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	}

	_, err = f.service.Login(ctx, "ali.reza", "correct-horse")
	assert.True(t, apperr.HasCode(err, apperr.CodeRateLimited))

	_, err = f.service.Login(ctx, "nobody", "whatever")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestLogin_EmailCase accepts an email login in any case and throttles it under
one key.
*/
func TestLogin_EmailCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, " ALI@Example.org ", "correct-horse")
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "Ali@Example.ORG", "wrong")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, 1, f.throttle.failures["ali@example.org"])

	_, err = f.service.Login(ctx, "ALI.REZA", "correct-horse")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestGetToken_HTTP covers the Basic auth contract of the issuance endpoint.
*/
func TestGetToken_HTTP(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	auth.NewHandler(f.service).RegisterRoutes(router)

	t.Run("valid credentials", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/gettoken", nil)
		request.SetBasicAuth("ali.reza", "correct-horse")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])

		principal, err := f.service.Authenticate(context.Background(), body["token"])
		require.NoError(t, err)
		assert.Equal(t, int64(7), principal.UserID)
	})

	t.Run("missing credentials", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/gettoken", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, auth.BasicRealm, recorder.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/gettoken", nil)
		request.SetBasicAuth("ali.reza", "nope")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
