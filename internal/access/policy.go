// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

// Category names a family of operations that share one required-role set.
type Category string

const (
	// CategorySelf covers self-service operations: any authenticated identity.
	CategorySelf       Category = "self"
	CategoryAdmin      Category = "admin"
	CategoryCamp       Category = "camp"
	CategorySession    Category = "session"
	CategoryHeyat      Category = "heyat"
	CategoryEducation  Category = "education"
	CategoryAccounting Category = "accounting"
	CategoryDocument   Category = "document"
	CategoryForm       Category = "form"
	CategorySport      Category = "sport"
	CategoryReport     Category = "report"
)

// Require builds a required-role set.
//
// Admin is added to every non-empty set, so administrative override is a
// property of policy definition and never of the engine. An empty call yields
// the empty set, which any authenticated identity satisfies.
func Require(roles ...Role) RoleSet {
	if len(roles) == 0 {
		return RoleSet{}
	}
	set := NewRoleSet(roles...)
	set[RoleAdmin] = struct{}{}
	return set
}

var policies = map[Category]RoleSet{
	CategorySelf:       Require(),
	CategoryAdmin:      Require(RoleAdmin),
	CategoryCamp:       Require(RoleCamp),
	CategorySession:    Require(RoleSession),
	CategoryHeyat:      Require(RoleHeyat),
	CategoryEducation:  Require(RoleEducation),
	CategoryAccounting: Require(RoleAccounting),
	CategoryDocument:   Require(RoleDocument),
	CategoryForm:       Require(RoleForm),
	CategorySport:      Require(RoleSport),
	CategoryReport:     Require(RoleReport),
}

// Policy returns the required roles for category. The boolean is false for
// categories that have no policy entry; callers must deny in that case.
func Policy(category Category) (RoleSet, bool) {
	required, ok := policies[category]
	if !ok {
		return nil, false
	}
	// Hand out a copy so the table stays immutable.
	return NewRoleSet(required.Slice()...), true
}

// Categories lists every category with a policy entry.
func Categories() []Category {
	out := make([]Category, 0, len(policies))
	for category := range policies {
		out = append(out, category)
	}
	return out
}
