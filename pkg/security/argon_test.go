package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonHashAndVerify(t *testing.T) {
	a := NewArgon()

	hash, err := a.GenerateFromPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ng!Pass", hash)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := a.VerifyPasswd("Str0ng!Pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("Wr0ng!Pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonHashesAreSalted(t *testing.T) {
	a := NewArgon()

	h1, err := a.GenerateFromPassword("Str0ng!Pass")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestArgonMalformedHash(t *testing.T) {
	a := NewArgon()

	_, err := a.VerifyPasswd("whatever", "not-a-hash")
	assert.ErrorIs(t, err, ErrHashFormat)

	_, err = a.VerifyPasswd("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrHashFormat)
}
