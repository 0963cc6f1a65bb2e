// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if !emailPattern.MatchString(strings.TrimSpace(e)) {
		return ErrEmailInvalid
	}

	return nil
}

// NormalizeEmail maps an address to the canonical form stored in the
// database. Uniqueness checks and lookups must use the same form
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
