// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package form serves the organization's fillable forms, each filed under a
// unique numeric code.
package form

type Form struct {
	ID       int64  `json:"id" db:"id"`
	Code     int    `json:"code" db:"code"`
	Topic    string `json:"topic" db:"topic"`
	FilePath string `json:"file_path" db:"file_path"`
}
