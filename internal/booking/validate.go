package booking

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field rules applied before any state change. All validators are pure
// predicates over their argument; the registry runs them in the order
// name, email, phone and reports the first failure.

func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 3 {
		return validationErr("name too short")
	}
	return nil
}

// ValidateEmail checks the local@domain.tld shape: exactly one '@',
// non-empty local part, and a domain with at least one dot separating
// non-empty segments.
func ValidateEmail(email string) error {
	s := strings.TrimSpace(email)
	if s == "" || strings.ContainsAny(s, " \t") {
		return validationErr("invalid email")
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return validationErr("invalid email")
	}
	segs := strings.Split(domain, ".")
	if len(segs) < 2 {
		return validationErr("invalid email")
	}
	for _, seg := range segs {
		if seg == "" {
			return validationErr("invalid email")
		}
	}
	return nil
}

// ValidatePhone accepts exactly 10 ASCII digits once spaces and hyphens
// are stripped.
func ValidatePhone(phone string) error {
	p := NormalizePhone(phone)
	if len(p) != 10 {
		return validationErr("invalid phone")
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return validationErr("invalid phone")
		}
	}
	return nil
}

// ValidateDateTime requires an instant strictly after now.
func ValidateDateTime(t, now time.Time) error {
	if t.IsZero() || !t.After(now) {
		return validationErr("invalid or past date/time")
	}
	return nil
}

// NormalizeEmail is the stored and compared form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips spaces, tabs and hyphens.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, phone)
}
