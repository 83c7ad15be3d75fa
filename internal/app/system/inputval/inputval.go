// internal/app/system/inputval/inputval.go

// Package inputval validates user-supplied field values before they
// reach the stores.
package inputval

import (
	"net/mail"
	"strings"
)

// IsValidEmail reports whether s is a plausible bare email address.
// Display-name forms like "User <user@example.com>" are rejected; the
// stores hold addresses only.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return !strings.Contains(s, "..")
}

// IsValidName reports whether s is usable as a display name. Names
// must be non-blank after trimming and fit in one line.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return false
	}
	return !strings.ContainsAny(s, "\r\n")
}
