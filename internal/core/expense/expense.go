// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package expense keeps the organization's ledger of spending.
package expense

// Payment states.
const (
	StatePending  = "pending"
	StatePaid     = "paid"
	StateRejected = "rejected"
)

// Expense is one ledger line. UserID is the member who recorded it and Owner
// the free-text payee.
type Expense struct {
	ID          int64   `json:"id" db:"id"`
	Topic       string  `json:"topic" db:"topic"`
	Invoice     string  `json:"invoice" db:"invoice"`
	Description *string `json:"description" db:"description"`
	Cost        float64 `json:"cost" db:"cost"`
	Date        string  `json:"date" db:"date"`
	State       string  `json:"state" db:"state"`
	Owner       string  `json:"owner" db:"owner"`
	UserID      int64   `json:"user_id" db:"user_id"`
}
