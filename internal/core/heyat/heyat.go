// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package heyat manages religious gatherings and their attendance.
package heyat

import "time"

// Gathering kinds.
const (
	KindCelebration = "celebration"
	KindMourning    = "mourning"
)

// Heyat is one gathering.
type Heyat struct {
	ID       int64     `json:"id" db:"id"`
	Kind     string    `json:"type" db:"type"`
	Reason   string    `json:"reason" db:"reason"`
	Datetime time.Time `json:"datetime" db:"datetime"`
	Compere  *string   `json:"compere" db:"compere"`
	Speaker  *string   `json:"speaker" db:"speaker"`
	Singer   *string   `json:"singer" db:"singer"`
	Meal     *string   `json:"meal" db:"meal"`
}

// Attendee is a member's attendance record at a gathering.
type Attendee struct {
	HeyatID     int64   `json:"heyat_id" db:"heyat_id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Present     bool    `json:"present" db:"present"`
	Rate        *int    `json:"rate" db:"rate"`
	Description *string `json:"description" db:"description"`
}
