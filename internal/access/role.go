// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access implements role-based authorization for the Kanoon API.

It is split into four collaborating parts:

  - Roles and role sets: the fixed enumeration of grantable permission categories.
  - Policies: a static table from operation category to required roles.
  - The engine: [Authorize], a pure set-intersection check.
  - The gate: an ordered pipeline of named steps run before every guarded
    operation (credential, approval, role, ownership).

Polymorphic entities (reports, users, documents) carry a discriminator that is
resolved through a [Family] when the required roles depend on the stored kind.
*/
package access

import (
	"fmt"
	"sort"
	"strings"
)

// # Roles

// Role is a grantable permission category.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMentor     Role = "mentor"
	RoleCamp       Role = "camp"
	RoleSession    Role = "session"
	RoleHeyat      Role = "heyat"
	RoleEducation  Role = "education"
	RoleAccounting Role = "accounting"
	RoleDocument   Role = "document"
	RoleForm       Role = "form"
	RoleSport      Role = "sport"
	RoleReport     Role = "report"
)

var allRoles = []Role{
	RoleAdmin, RoleMentor, RoleCamp, RoleSession, RoleHeyat, RoleEducation,
	RoleAccounting, RoleDocument, RoleForm, RoleSport, RoleReport,
}

// Roles returns every grantable role in declaration order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// Valid reports whether r belongs to the fixed role enumeration.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole normalizes s and checks it against the enumeration.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("access: unknown role %q", s)
	}
	return role, nil
}

// # Role Sets

// RoleSet is an unordered set of roles. The nil set is empty and valid.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles, ignoring duplicates.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Has reports membership of role.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// Empty reports whether the set holds no roles.
func (s RoleSet) Empty() bool { return len(s) == 0 }

// Slice returns the roles sorted by name.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted role names.
func (s RoleSet) Strings() []string {
	roles := s.Slice()
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

// String implements fmt.Stringer.
func (s RoleSet) String() string {
	return "{" + strings.Join(s.Strings(), ",") + "}"
}
