// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
)

// stubAuthenticator resolves tokens from a fixed table.
type stubAuthenticator struct {
	principals map[string]*access.Principal
	calls      int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*access.Principal, error) {
	s.calls++
	principal, ok := s.principals[token]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return principal, nil
}

// params is a map-backed access.Target.
type params map[string]string

func (p params) Param(name string) string { return p[name] }

// decisions records gate outcomes.
type decisions struct {
	entries []string
}

func (d *decisions) RecordDecision(operation, step, outcome string) {
	d.entries = append(d.entries, operation+"/"+step+"/"+outcome)
}

func newTestGate() (*access.Gate, *stubAuthenticator, *decisions) {
	auth := &stubAuthenticator{principals: map[string]*access.Principal{
		"camp":       {UserID: 1, Approved: true, Roles: access.NewRoleSet(access.RoleCamp)},
		"none":       {UserID: 2, Approved: true, Roles: access.NewRoleSet()},
		"unapproved": {UserID: 3, Approved: false, Roles: access.NewRoleSet(access.RoleAdmin)},
		"admin":      {UserID: 4, Approved: true, Roles: access.NewRoleSet(access.RoleAdmin)},
	}}
	recorder := &decisions{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return access.NewGate(auth, recorder, logger), auth, recorder
}

func token(value string) access.Credential {
	return access.Credential{Scheme: "Token", Value: value}
}

/*
TestGate_StepOrder pins the pipeline sequence.
*/
func TestGate_StepOrder(t *testing.T) {
	gate, _, _ := newTestGate()
	assert.Equal(t, []string{"credential", "approval", "role", "ownership"}, gate.Steps())
}

/*
TestGate_Credential covers missing, malformed and rejected credentials.
*/
func TestGate_Credential(t *testing.T) {
	op := access.Operation{Name: "camps.list", Category: access.CategoryCamp}

	tests := []struct {
		name       string
		credential access.Credential
	}{
		{"missing header", access.Credential{}},
		{"basic not accepted", access.Credential{Scheme: "Basic", Value: "dXNlcjpwdw=="}},
		{"bearer not accepted", access.Credential{Scheme: "Bearer", Value: "camp"}},
		{"empty token", access.Credential{Scheme: "Token"}},
		{"unknown token", token("forged")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, _, _ := newTestGate()
			principal, err := gate.Check(context.Background(), op, tt.credential, params{})
			assert.Nil(t, principal)
			assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized), "got %v", err)
		})
	}
}

/*
TestGate_CampHolder allows camp operations and rejects accounting ones.
*/
func TestGate_CampHolder(t *testing.T) {
	gate, _, recorder := newTestGate()
	ctx := context.Background()

	principal, err := gate.Check(ctx, access.Operation{Name: "camps.list", Category: access.CategoryCamp}, token("camp"), params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), principal.UserID)

	_, err = gate.Check(ctx, access.Operation{Name: "expenses.list", Category: access.CategoryAccounting}, token("camp"), params{})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.Equal(t, apperr.ForbiddenMessage, err.Error())

	assert.Equal(t, []string{"camps.list/all/allow", "expenses.list/role/deny"}, recorder.entries)
}

/*
TestGate_UnapprovedAdmin checks that approval is enforced before roles, and
that only approval-exempt operations pass.
*/
func TestGate_UnapprovedAdmin(t *testing.T) {
	gate, _, _ := newTestGate()
	ctx := context.Background()

	for _, op := range []access.Operation{
		{Name: "users.accept", Category: access.CategoryAdmin},
		{Name: "camps.list", Category: access.CategoryCamp},
		{Name: "users.self.update", Category: access.CategorySelf},
	} {
		_, err := gate.Check(ctx, op, token("unapproved"), params{})
		assert.True(t, apperr.HasCode(err, apperr.CodeNotApproved), "%s: got %v", op.Name, err)
	}

	selfRead := access.Operation{Name: "users.self.get", Category: access.CategorySelf, AllowUnapproved: true}
	principal, err := gate.Check(ctx, selfRead, token("unapproved"), params{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), principal.UserID)
}

/*
TestGate_SelfCategoryNeedsNoRole lets a role-less identity through self operations only.
*/
func TestGate_SelfCategoryNeedsNoRole(t *testing.T) {
	gate, _, _ := newTestGate()
	ctx := context.Background()

	_, err := gate.Check(ctx, access.Operation{Name: "users.self.roles", Category: access.CategorySelf}, token("none"), params{})
	assert.NoError(t, err)

	_, err = gate.Check(ctx, access.Operation{Name: "forms.list", Category: access.CategoryForm}, token("none"), params{})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

/*
TestGate_UnknownCategoryFailsClosed denies operations without a policy entry.
*/
func TestGate_UnknownCategoryFailsClosed(t *testing.T) {
	gate, _, _ := newTestGate()

	_, err := gate.Check(context.Background(), access.Operation{Name: "x", Category: "missing"}, token("admin"), params{})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

/*
TestGate_DynamicResolver routes a report through its stored discriminator.
*/
func TestGate_DynamicResolver(t *testing.T) {
	kinds := map[string]string{"1": "heyat", "2": "camp", "3": "garbage"}
	op := access.Operation{
		Name: "reports.get",
		Resolve: func(_ context.Context, target access.Target) (access.RoleSet, error) {
			kind, ok := kinds[target.Param("report_id")]
			if !ok {
				return nil, apperr.NotFound("Report")
			}
			return access.ReportFamily.RequiredRoles(kind)
		},
	}
	gate, _, _ := newTestGate()
	ctx := context.Background()

	_, err := gate.Check(ctx, op, token("camp"), params{"report_id": "1"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = gate.Check(ctx, op, token("camp"), params{"report_id": "2"})
	assert.NoError(t, err)

	_, err = gate.Check(ctx, op, token("camp"), params{"report_id": "9"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = gate.Check(ctx, op, token("admin"), params{"report_id": "3"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.ErrorIs(t, err, access.ErrUnknownDiscriminator)
}

/*
TestGate_Ownership runs after the role step and blocks foreign resources
even for admins.
*/
func TestGate_Ownership(t *testing.T) {
	owners := map[string]int64{"10": 1, "11": 4}
	op := access.Operation{
		Name:     "users.self.dials.get",
		Category: access.CategorySelf,
		Owner: func(_ context.Context, principal *access.Principal, target access.Target) error {
			return access.OwnedBy(principal, owners[target.Param("dial_id")])
		},
	}
	gate, _, _ := newTestGate()
	ctx := context.Background()

	_, err := gate.Check(ctx, op, token("camp"), params{"dial_id": "10"})
	assert.NoError(t, err)

	_, err = gate.Check(ctx, op, token("camp"), params{"dial_id": "11"})
	assert.True(t, apperr.HasCode(err, apperr.CodeOwnershipViolation))

	_, err = gate.Check(ctx, op, token("admin"), params{"dial_id": "10"})
	assert.True(t, apperr.HasCode(err, apperr.CodeOwnershipViolation))
}

/*
TestGate_ShortCircuit ensures later steps never run after a failure.
*/
func TestGate_ShortCircuit(t *testing.T) {
	ownerRan := false
	op := access.Operation{
		Name:     "expenses.get",
		Category: access.CategoryAccounting,
		Owner: func(context.Context, *access.Principal, access.Target) error {
			ownerRan = true
			return nil
		},
	}
	gate, auth, _ := newTestGate()

	_, err := gate.Check(context.Background(), op, access.Credential{}, params{})
	assert.Error(t, err)
	assert.Zero(t, auth.calls)

	_, err = gate.Check(context.Background(), op, token("camp"), params{})
	assert.Error(t, err)
	assert.False(t, ownerRan)
}

/*
TestParseCredential splits Authorization headers.
*/
func TestParseCredential(t *testing.T) {
	assert.Equal(t, access.Credential{Scheme: "Token", Value: "abc"}, access.ParseCredential("Token abc"))
	assert.Equal(t, access.Credential{Scheme: "Token", Value: "abc"}, access.ParseCredential("  Token   abc "))
	assert.Equal(t, access.Credential{Scheme: "Token"}, access.ParseCredential("Token"))
	assert.Equal(t, access.Credential{}, access.ParseCredential(""))
}

/*
TestOwnerOf resolves the owner from a path parameter.
*/
func TestOwnerOf(t *testing.T) {
	owners := map[int64]int64{7: 1, 8: 2}
	op := access.Operation{
		Name:     "grades.get",
		Category: access.CategorySelf,
		Owner: access.OwnerOf("grade_id", func(_ context.Context, id int64) (int64, error) {
			owner, ok := owners[id]
			if !ok {
				return 0, apperr.NotFound("Grade")
			}
			return owner, nil
		}),
	}
	gate, _, _ := newTestGate()
	ctx := context.Background()

	_, err := gate.Check(ctx, op, token("camp"), params{"grade_id": "7"})
	require.NoError(t, err)

	_, err = gate.Check(ctx, op, token("camp"), params{"grade_id": "8"})
	assert.True(t, apperr.HasCode(err, apperr.CodeOwnershipViolation))

	_, err = gate.Check(ctx, op, token("camp"), params{"grade_id": "9"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = gate.Check(ctx, op, token("camp"), params{"grade_id": "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
