// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package document is the organization's library: categories and the books,
voice recordings and booklets filed under them.

A document is a tagged union. The common columns live in one table and each
kind adds its own detail row; the kind is chosen at creation and never
changes afterwards.
*/
package document

import "time"

// Document kinds, matching the document family in package access.
const (
	KindBook    = "book"
	KindVoice   = "voice"
	KindBooklet = "booklet"
)

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// Document carries the common fields plus the details of every kind. Only the
// details of Kind are ever set.
type Document struct {
	ID           int64     `json:"id" db:"id"`
	CategoryID   int64     `json:"category_id" db:"category_id"`
	Kind         string    `json:"type" db:"type"`
	Topic        string    `json:"topic" db:"topic"`
	Subject      *string   `json:"subject" db:"subject"`
	FilePath     string    `json:"file_path" db:"file_path"`
	Level        *int      `json:"level" db:"level"`
	CreationDate time.Time `json:"creation_date" db:"creation_date"`

	// book, booklet
	Author *string `json:"author,omitempty" db:"author"`
	// book
	PublishDate *string `json:"publish_date,omitempty" db:"publish_date"`
	Translator  *string `json:"translator,omitempty" db:"translator"`
	// voice
	Speaker *string `json:"speaker,omitempty" db:"speaker"`
	// voice, booklet
	ProductionDate *string `json:"production_date,omitempty" db:"production_date"`
}
