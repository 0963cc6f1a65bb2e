// Package account implements the identity workflow: registration, email
// confirmation, login, password reset and record maintenance. It owns
// the error taxonomy; the HTTP layer only maps its results onto status
// codes
package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"procureapp/accounts-api/internal/model"
	"procureapp/accounts-api/internal/service"
	"procureapp/accounts-api/internal/store"
	"procureapp/accounts-api/pkg/security"
	"procureapp/accounts-api/pkg/validators"
)

// Purpose tags keep confirmation and reset tokens from being replayed
// across flows
const (
	PurposeEmailConfirm  = "email-confirm"
	PurposePasswordReset = "password-reset"
)

const maxPageSize = 100

type Service struct {
	store    store.UserStore
	signer   *security.Signer
	sessions *security.Sessions
	argon    *security.ArgonHash
	mailer   service.Mailer

	// confirmBase is the absolute prefix confirmation links are built
	// on, the signed token gets appended as the last path segment
	confirmBase string
	tokenMaxAge time.Duration
}

func New(
	st store.UserStore,
	signer *security.Signer,
	sessions *security.Sessions,
	argon *security.ArgonHash,
	mailer service.Mailer,
	confirmBase string,
	tokenMaxAge time.Duration,
) *Service {
	return &Service{
		store:       st,
		signer:      signer,
		sessions:    sessions,
		argon:       argon,
		mailer:      mailer,
		confirmBase: confirmBase,
		tokenMaxAge: tokenMaxAge,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unconfirmed account and mails a confirmation
// link. The user row is committed before the mail goes out; a dispatch
// failure returns ErrMailDispatch with the account already created
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validators.EmailValidator(in.Email); err != nil {
		return nil, err
	}
	if err := validators.PasswordValidator(in.Password); err != nil {
		return nil, err
	}
	if err := validators.NameValidator(in.Name); err != nil {
		return nil, err
	}
	if err := validators.NameValidator(in.LastName); err != nil {
		return nil, err
	}

	email := validators.NormalizeEmail(in.Email)

	if _, err := s.store.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.argon.GenerateFromPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         validators.NormalizeName(in.Name),
		LastName:     validators.NormalizeName(in.LastName),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.sendConfirmation(u.Email); err != nil {
		return u, err
	}

	return u, nil
}

// Confirm flips the email_confirm flag for the account a valid token
// resolves to. Re-confirming an already confirmed account is not an
// error, the flag just gets written again
func (s *Service) Confirm(ctx context.Context, token string) (*model.User, error) {
	email, err := s.signer.Verify(token, PurposeEmailConfirm, s.tokenMaxAge)
	if err != nil {
		return nil, err
	}

	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.EmailConfirm = true
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// ResendConfirmation mails a fresh confirmation link to an
// authenticated user. The record itself is untouched
func (s *Service) ResendConfirmation(_ context.Context, u *model.User) error {
	return s.sendConfirmation(u.Email)
}

// Login verifies credentials and issues a bearer session token. An
// unknown email and a wrong password fail identically so responses
// can't be used to enumerate accounts
func (s *Service) Login(ctx context.Context, email, password string) (security.AccessToken, error) {
	u, err := s.store.ByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return security.AccessToken{}, ErrInvalidCredentials
		}
		return security.AccessToken{}, err
	}

	ok, err := s.argon.VerifyPasswd(password, u.PasswordHash)
	if err != nil {
		return security.AccessToken{}, err
	}
	if !ok {
		return security.AccessToken{}, ErrInvalidCredentials
	}

	return s.sessions.Issue(u.Email)
}

// RequestPasswordReset mails a reset link pointing back at the client
// given by clientURL with the signed token and email in the query
func (s *Service) RequestPasswordReset(ctx context.Context, email, clientURL string) error {
	if clientURL == "" {
		return ErrMissingClientURL
	}

	email = validators.NormalizeEmail(email)

	if _, err := s.store.ByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := s.signer.Sign(email, PurposePasswordReset)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		clientURL, token, url.QueryEscape(email))

	if err := s.mailer.Send(email, "Reset password", resetURL, true); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}

	return nil
}

// UpdatePasswordByToken replaces the password hash of the account a
// valid reset token resolves to
func (s *Service) UpdatePasswordByToken(ctx context.Context, token, password string) (*model.User, error) {
	email, err := s.signer.Verify(token, PurposePasswordReset, s.tokenMaxAge)
	if err != nil {
		return nil, err
	}

	if err := validators.PasswordValidator(password); err != nil {
		return nil, err
	}

	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = hash
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// CurrentUser resolves a verified session subject to a live record.
// Returns ErrUserNotFound when the account was deleted after the token
// was issued
func (s *Service) CurrentUser(ctx context.Context, subject string) (*model.User, error) {
	u, err := s.store.ByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.User, error) {
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}

// List returns a page of users. The limit is capped at 100 no matter
// what the caller asks for
func (s *Service) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return s.store.List(ctx, offset, limit)
}

// Update merges the supplied fields into the record, nil fields stay
// untouched. A supplied password goes through the same policy and
// hashing as registration
func (s *Service) Update(ctx context.Context, id uint, p store.Patch) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Email != nil {
		if err := validators.EmailValidator(*p.Email); err != nil {
			return nil, err
		}
		u.Email = validators.NormalizeEmail(*p.Email)
	}

	if p.Name != nil {
		if err := validators.NameValidator(*p.Name); err != nil {
			return nil, err
		}
		u.Name = validators.NormalizeName(*p.Name)
	}

	if p.LastName != nil {
		if err := validators.NameValidator(*p.LastName); err != nil {
			return nil, err
		}
		u.LastName = validators.NormalizeName(*p.LastName)
	}

	if p.Password != nil {
		if err := validators.PasswordValidator(*p.Password); err != nil {
			return nil, err
		}

		hash, err := s.argon.GenerateFromPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.store.Save(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return u, nil
}

// Delete removes an account by id. Any authenticated caller may delete
// any account, matching the behavior this service replaces
func (s *Service) Delete(ctx context.Context, id uint) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, u)
}

func (s *Service) sendConfirmation(email string) error {
	token, err := s.signer.Sign(email, PurposeEmailConfirm)
	if err != nil {
		return err
	}

	confirmURL := fmt.Sprintf("%s/%s", s.confirmBase, token)

	if err := s.mailer.Send(email, "Email Confirmation", confirmURL, false); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}

	return nil
}
