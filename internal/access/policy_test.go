// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanoon/kanoon/internal/access"
)

/*
TestRequire_AddsAdmin verifies admin is injected into every non-empty set
and never into the empty one.
*/
func TestRequire_AddsAdmin(t *testing.T) {
	assert.True(t, access.Require().Empty())

	set := access.Require(access.RoleHeyat)
	assert.Equal(t, []string{"admin", "heyat"}, set.Strings())
}

/*
TestPolicy_Table checks a few category entries and the unknown fallback.
*/
func TestPolicy_Table(t *testing.T) {
	tests := []struct {
		category access.Category
		want     []string
	}{
		{access.CategorySelf, []string{}},
		{access.CategoryAdmin, []string{"admin"}},
		{access.CategoryHeyat, []string{"admin", "heyat"}},
		{access.CategoryEducation, []string{"admin", "education"}},
		{access.CategoryReport, []string{"admin", "report"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got, ok := access.Policy(tt.category)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Strings())
		})
	}

	_, ok := access.Policy("nope")
	assert.False(t, ok)
}

/*
TestPolicy_ReturnsCopy ensures callers cannot edit the shared table.
*/
func TestPolicy_ReturnsCopy(t *testing.T) {
	got, _ := access.Policy(access.CategoryCamp)
	got[access.RoleForm] = struct{}{}

	again, _ := access.Policy(access.CategoryCamp)
	assert.False(t, again.Has(access.RoleForm))
}

/*
TestParseRole covers normalization and rejection.
*/
func TestParseRole(t *testing.T) {
	role, err := access.ParseRole("  Camp ")
	require.NoError(t, err)
	assert.Equal(t, access.RoleCamp, role)

	_, err = access.ParseRole("superuser")
	assert.Error(t, err)

	assert.Len(t, access.Roles(), 11)
}
