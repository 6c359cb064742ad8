// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Rules run in the service layer, before any statement reaches storage.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kanoon/kanoon/internal/platform/apperr"
)

var (
	// usernameChars is the alphabet of a username. Separator placement is
	// checked in [ValidUsername] because RE2 has no lookaround.
	usernameChars = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)
	// instagramChars is the shape of a handle; dot rules are checked in code.
	instagramChars = regexp.MustCompile(`^\w[\w.]{0,29}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Username fails unless [ValidUsername] accepts the value.
func (v *Validator) Username(field, value string) *Validator {
	if !ValidUsername(value) {
		v.add(field, "Must be 5-20 letters, digits, '.' or '_' without leading, trailing or doubled separators")
	}
	return v
}

// Instagram fails unless value is a handle of up to 30 word characters and
// dots that starts with a word character and has no ".." or trailing dot.
func (v *Validator) Instagram(field, value string) *Validator {
	if !instagramChars.MatchString(value) || strings.Contains(value, "..") || strings.HasSuffix(value, ".") {
		v.add(field, "Must be a valid Instagram handle")
	}
	return v
}

// Digits fails unless value is exactly n ASCII digits.
func (v *Validator) Digits(field, value string, n int) *Validator {
	if len(value) != n || strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		v.add(field, fmt.Sprintf("Must be exactly %d digits", n))
	}
	return v
}

// Date fails unless value is a YYYY-MM-DD calendar date.
func (v *Validator) Date(field, value string) *Validator {
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		v.add(field, "Must be a date in YYYY-MM-DD format")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom ("score", score < 1 || score > 10, "Must be between 1 and 10")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// ValidUsername reports whether s is 5 to 20 characters of letters, digits,
// '.' and '_', neither starting nor ending with a separator and never holding
// two separators in a row.
func ValidUsername(s string) bool {
	if len(s) < 5 || len(s) > 20 || !usernameChars.MatchString(s) {
		return false
	}
	isSeparator := func(b byte) bool { return b == '.' || b == '_' }
	if isSeparator(s[0]) || isSeparator(s[len(s)-1]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if isSeparator(s[i]) && isSeparator(s[i-1]) {
			return false
		}
	}
	return true
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
