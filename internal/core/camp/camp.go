// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package camp manages organized trips and the members who join them.

Every operation is guarded by the camp policy; a participant row records
what a member paid and how the organizers rated their conduct.
*/
package camp

import "time"

// Camp is one trip.
type Camp struct {
	ID            int64     `json:"id" db:"id"`
	Subject       string    `json:"subject" db:"subject"`
	Location      string    `json:"location" db:"location"`
	GoTime        time.Time `json:"go_time" db:"go_time"`
	BackTime      time.Time `json:"back_time" db:"back_time"`
	CostPerPerson *string   `json:"cost_per_person" db:"cost_per_person"`
}

// Participant links a member to a camp.
type Participant struct {
	CampID      int64   `json:"camp_id" db:"camp_id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	PaidValue   string  `json:"paid_value" db:"paid_value"`
	Rate        *int    `json:"rate" db:"rate"`
	Description *string `json:"description" db:"description"`
}
