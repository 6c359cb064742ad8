// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session manages organizational meetings.

A session has one optional details record, a member list with presence,
and per-member tasks assigned during the meeting. A task may carry several
deadlines.
*/
package session

import "time"

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

type Session struct {
	ID        int64     `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	Datetime  time.Time `json:"datetime" db:"datetime"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"creation_date" db:"created_at"`
}

// Details holds the minutes header of a session.
type Details struct {
	SessionID int64   `json:"session_id" db:"session_id"`
	Number    *int    `json:"number" db:"number"`
	Kind      *string `json:"kind" db:"kind"`
	Location  *string `json:"location" db:"location"`
	Approvals *string `json:"approvals" db:"approvals"`
}

type Member struct {
	SessionID int64 `json:"session_id" db:"session_id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	Present   bool  `json:"present" db:"present"`
}

// Task is an action item given to one member of a session.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	SessionID   int64      `json:"session_id" db:"session_id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Subject     string     `json:"subject" db:"subject"`
	Priority    string     `json:"priority" db:"priority"`
	Done        bool       `json:"done" db:"done"`
	DoneTime    *time.Time `json:"done_time" db:"done_time"`
	Description *string    `json:"description" db:"description"`
}

type Deadline struct {
	ID                 int64     `json:"id" db:"id"`
	TaskID             int64     `json:"task_id" db:"task_id"`
	ExpirationDatetime time.Time `json:"expiration_datetime" db:"expiration_datetime"`
}
