// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

// Authorize reports whether held satisfies required.
//
// It is true iff the two sets intersect. The empty required set means the
// operation needs no role, only an authenticated identity. No role implies
// another; admin wins only because [Require] puts it in every policy.
func Authorize(held, required RoleSet) bool {
	if required.Empty() {
		return true
	}
	// Iterate the smaller set.
	small, large := held, required
	if len(small) > len(large) {
		small, large = large, small
	}
	for role := range small {
		if large.Has(role) {
			return true
		}
	}
	return false
}
