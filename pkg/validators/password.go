package validators

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordEmpty     = errors.New("no password provided")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong   = errors.New("password is too long")
	ErrPasswordNoUpper   = errors.New("password must contain at least one upper case letter")
	ErrPasswordNoSpecial = errors.New("password must contain at least one special character")
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	if !strings.ContainsFunc(p, unicode.IsUpper) {
		return ErrPasswordNoUpper
	}

	if !strings.ContainsAny(p, specialChars) {
		return ErrPasswordNoSpecial
	}

	return nil
}
