package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionExpired = errors.New("session token has expired")
	ErrSessionInvalid = errors.New("invalid session token")
)

// AccessToken is the response shape returned to a client after a
// successful login
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}

// Sessions issues and verifies the bearer tokens presented on
// authenticated requests. Unlike Signer tokens these are self
// describing: the absolute expiry travels inside the token
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue returns a bearer token for subject that expires ttl from now
func (s *Sessions) Issue(subject string) (AccessToken, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}

	return AccessToken{Token: signed, TokenType: "bearer"}, nil
}

// Verify checks the token signature and expiry and returns the subject
// it was issued for. The signing algorithm is pinned, a token claiming
// any other algorithm is rejected no matter what it says about itself
func (s *Sessions) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrSessionExpired
		}
		return "", ErrSessionInvalid
	}

	if !t.Valid || claims.Subject == "" {
		return "", ErrSessionInvalid
	}

	return claims.Subject, nil
}
