package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"procureapp/accounts-api/internal/model"
	"procureapp/accounts-api/internal/store"
	"procureapp/accounts-api/pkg/security"
	"procureapp/accounts-api/pkg/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	url     string
	reset   bool
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(to, subject, actionURL string, reset bool) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}

	m.sent = append(m.sent, sentMail{to, subject, actionURL, reset})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

// small argon parameters so tests don't burn time hashing
func testArgon() *security.ArgonHash {
	return &security.ArgonHash{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

const confirmBase = "http://localhost/api/v1/users/confirm-email"

func newService(maxAge time.Duration) (*Service, store.UserStore, *fakeMailer) {
	st := store.NewMem()
	mailer := &fakeMailer{}
	secret := []byte("test-secret")

	svc := New(
		st,
		security.NewSigner(secret),
		security.NewSessions(secret, time.Hour),
		testArgon(),
		mailer,
		confirmBase,
		maxAge,
	)

	return svc, st, mailer
}

// confirmToken pulls the signed token out of a mailed confirmation link
func confirmToken(t *testing.T, m sentMail) string {
	t.Helper()
	require.True(t, strings.HasPrefix(m.url, confirmBase+"/"))
	return strings.TrimPrefix(m.url, confirmBase+"/")
}

// resetToken pulls the signed token out of a mailed reset link
func resetToken(t *testing.T, m sentMail) string {
	t.Helper()
	u, err := url.Parse(m.url)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestRegister(t *testing.T) {
	svc, _, mailer := newService(time.Hour)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     " Alice ",
		LastName: " Smith ",
		Email:    " Alice@Example.COM ",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, "smith", u.LastName)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.EmailConfirm)
	assert.NotEqual(t, "Str0ng!Pass", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	mail := mailer.last(t)
	assert.Equal(t, "alice@example.com", mail.to)
	assert.Equal(t, "Email Confirmation", mail.subject)
	assert.False(t, mail.reset)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	// same address, different case and padding
	_, err = svc.Register(ctx, RegisterInput{Email: "  ALICE@example.com ", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "weakpass"})
	assert.ErrorIs(t, err, validators.ErrPasswordNoUpper)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "Weakpass1"})
	assert.ErrorIs(t, err, validators.ErrPasswordNoSpecial)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "S!1a"})
	assert.ErrorIs(t, err, validators.ErrPasswordTooShort)

	assert.Empty(t, mailer.sent)
}

func TestRegisterMailFailureKeepsAccount(t *testing.T) {
	svc, st, mailer := newService(time.Hour)
	mailer.fail = true

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})
	assert.ErrorIs(t, err, ErrMailDispatch)

	// the commit already happened, only the notification was lost
	u, err := st.ByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, u.EmailConfirm)
}

func TestConfirmFlow(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	token := confirmToken(t, mailer.last(t))

	u, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.True(t, u.EmailConfirm)
	assert.Equal(t, "alice@example.com", u.Email)

	// confirming twice just rewrites the flag
	u, err = svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.True(t, u.EmailConfirm)
}

func TestConfirmExpiredToken(t *testing.T) {
	svc, _, mailer := newService(-time.Second)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, confirmToken(t, mailer.last(t)))
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestConfirmBadToken(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, "garbage")
	assert.ErrorIs(t, err, security.ErrTokenInvalid)

	_, err = svc.Confirm(ctx, confirmToken(t, mailer.last(t))+"x")
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestConfirmUnknownUser(t *testing.T) {
	svc, _, _ := newService(time.Hour)

	token, err := security.NewSigner([]byte("test-secret")).Sign("ghost@example.com", PurposeEmailConfirm)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResendConfirmation(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	require.NoError(t, svc.ResendConfirmation(ctx, u))
	assert.Len(t, mailer.sent, 2)

	// the fresh token still confirms
	_, err = svc.Confirm(ctx, confirmToken(t, mailer.last(t)))
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	at, err := svc.Login(ctx, "Alice@Example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", at.TokenType)

	// the session subject resolves back to the same account
	u, err := svc.CurrentUser(ctx, mustVerify(t, at.Token))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	// unknown account and wrong password are indistinguishable
	_, err = svc.Login(ctx, "nobody@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "alice@example.com", "Wr0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	err = svc.RequestPasswordReset(ctx, "alice@example.com", "https://app.example.com")
	require.NoError(t, err)

	mail := mailer.last(t)
	assert.True(t, mail.reset)
	assert.Contains(t, mail.url, "https://app.example.com/reset-password?token=")

	_, err = svc.UpdatePasswordByToken(ctx, resetToken(t, mail), "N3w!Password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "N3w!Password")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetErrors(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	err := svc.RequestPasswordReset(ctx, "alice@example.com", "")
	assert.ErrorIs(t, err, ErrMissingClientURL)

	err = svc.RequestPasswordReset(ctx, "nobody@example.com", "https://app.example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetTokenNotValidForConfirm(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com", "https://app.example.com"))

	// a reset token must not confirm the account
	_, err = svc.Confirm(ctx, resetToken(t, mailer.last(t)))
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestUpdatePasswordByTokenWeakPassword(t *testing.T) {
	svc, _, mailer := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com", "https://app.example.com"))

	_, err = svc.UpdatePasswordByToken(ctx, resetToken(t, mailer.last(t)), "weakpass")
	assert.ErrorIs(t, err, validators.ErrPasswordNoUpper)
}

func TestListCapsLimit(t *testing.T) {
	svc, st, _ := newService(time.Hour)
	ctx := context.Background()

	for i := 0; i < 120; i++ {
		err := st.Create(ctx, &model.User{
			Email:        fmt.Sprintf("user%03d@example.com", i),
			PasswordHash: "x",
		})
		require.NoError(t, err)
	}

	users, err := svc.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Len(t, users, maxPageSize)

	page, err := svc.List(ctx, 110, 50)
	require.NoError(t, err)
	assert.Len(t, page, 10)
}

func TestUpdatePartialMerge(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Name:     "alice",
		LastName: "smith",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	name := " Alicia "
	got, err := svc.Update(ctx, u.ID, store.Patch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "alicia", got.Name)
	assert.Equal(t, "smith", got.LastName)
	assert.Equal(t, "alice@example.com", got.Email)

	// updating the password re-validates and re-hashes it
	pw := "An0ther!Pass"
	_, err = svc.Update(ctx, u.ID, store.Patch{Password: &pw})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "An0ther!Pass")
	assert.NoError(t, err)

	bad := "weakpass"
	_, err = svc.Update(ctx, u.ID, store.Patch{Password: &bad})
	assert.ErrorIs(t, err, validators.ErrPasswordNoUpper)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.Update(ctx, bob.ID, store.Patch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newService(time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))

	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrUserNotFound)
}

func mustVerify(t *testing.T, token string) string {
	t.Helper()

	subject, err := security.NewSessions([]byte("test-secret"), time.Hour).Verify(token)
	require.NoError(t, err)
	return subject
}
