// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates URL slugs for document categories.
//
// Latin accents are folded ("Café" → "cafe"); letters of other scripts are
// kept as they are, so Persian category names still yield a usable slug.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From lowercases s, strips combining marks and joins the remaining runs of
// letters and digits with single hyphens. The result is empty when s has
// no letter or digit.
func From(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var out strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pending = out.Len() > 0
			continue
		}
		if pending {
			out.WriteByte('-')
			pending = false
		}
		out.WriteRune(r)
	}
	return out.String()
}
