// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sport manages sport sessions and who turned up.
package sport

import "time"

const (
	KindFootball = "football"
	KindJudo     = "judo"
)

type Sport struct {
	ID       int64     `json:"id" db:"id"`
	Kind     string    `json:"type" db:"type"`
	Venue    string    `json:"venue" db:"venue"`
	Datetime time.Time `json:"datetime" db:"datetime"`
}

type Attendee struct {
	SportID     int64   `json:"sport_id" db:"sport_id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Present     bool    `json:"present" db:"present"`
	Rate        *int    `json:"rate" db:"rate"`
	Description *string `json:"description" db:"description"`
}
