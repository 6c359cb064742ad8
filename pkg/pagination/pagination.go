// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads ?page= and ?limit= from list requests and builds
// the "meta" block of paginated responses.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the page starts.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta describes where a page sits in the full result. Previous and Next
// are null on the first and last page.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	Previous   *int `json:"previous"`
	Next       *int `json:"next"`
}

func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	if page > 1 {
		previous := min(page-1, max(meta.TotalPages, 1))
		meta.Previous = &previous
	}
	if page < meta.TotalPages {
		next := page + 1
		meta.Next = &next
	}
	return meta
}

// FromRequest never fails: a missing, malformed or out-of-range value
// falls back to page 1 and [DefaultLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	params := Params{Page: 1, Limit: DefaultLimit}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit >= 1 && limit <= MaxLimit {
		params.Limit = limit
	}
	return params
}
