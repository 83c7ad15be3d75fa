// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied text fields.
//
// Names, descriptions, and emails are stored and served as plain text,
// so any HTML that arrives in a request body is removed rather than
// escaped. The policy is bluemonday's strict policy, which allows no
// elements at all.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
