// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package report holds write-ups of organization activities and the media
attached to them.

A report describes exactly one camp, heyat or lecture and is authorized
through that activity: its kind decides which role may read or edit it.
*/
package report

import "time"

// Report kinds, matching the report family in package access.
const (
	KindCamp    = "camp"
	KindHeyat   = "heyat"
	KindLecture = "lecture"
)

// Multimedia formats.
var Formats = []string{"mp3", "mp4", "xlsx", "docx", "pdf"}

type Report struct {
	ID          int64     `json:"id" db:"id"`
	Kind        string    `json:"type" db:"type"`
	TargetID    int64     `json:"target_id" db:"target_id"`
	ReporterID  int64     `json:"reporter_id" db:"reporter_id"`
	Datetime    time.Time `json:"datetime" db:"datetime"`
	Description *string   `json:"description" db:"description"`
}

type Multimedia struct {
	ID       int64  `json:"id" db:"id"`
	ReportID int64  `json:"report_id" db:"report_id"`
	Path     string `json:"path" db:"path"`
	Format   string `json:"format" db:"format"`
}
