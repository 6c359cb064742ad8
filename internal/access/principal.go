// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

// Principal is the authenticated identity attached to a guarded request.
//
// It is rebuilt from storage on every request; nothing here is read from the token.
type Principal struct {
	UserID   int64
	Username string
	Kind     string
	Approved bool
	Roles    RoleSet
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Roles.Has(RoleAdmin)
}
