package validators

import (
	"errors"
	"strings"
)

var ErrNameTooLong = errors.New("name is too long")

// NameValidator bounds name and last name fields to the column size
func NameValidator(n string) error {
	if len(n) > 30 {
		return ErrNameTooLong
	}

	return nil
}

// NormalizeName lowercases and trims a name the same way the account
// records store them
func NormalizeName(n string) string {
	return strings.ToLower(strings.TrimSpace(n))
}
