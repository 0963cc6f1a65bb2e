package account

import "errors"

// The workflow classifies every failure into one of these kinds (or a
// validator/security sentinel) before it crosses back to the HTTP layer.
// Anything else that escapes is a server error
var (
	ErrEmailTaken         = errors.New("this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrMissingClientURL   = errors.New("no client url found")

	// ErrMailDispatch means the account state was already committed but
	// the notification mail never went out. There is no rollback and no
	// retry, the caller has to ask for a new mail
	ErrMailDispatch = errors.New("email could not be sent")
)
