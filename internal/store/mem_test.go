package store

import (
	"context"
	"testing"

	"procureapp/accounts-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreCreateAndLookup(t *testing.T) {
	s := NewMem()
	ctx := context.Background()

	u := &model.User{Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := s.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := s.ByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.ByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreDuplicateEmail(t *testing.T) {
	s := NewMem()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &model.User{Email: "alice@example.com", PasswordHash: "x"}))
	err := s.Create(ctx, &model.User{Email: "alice@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemStoreSaveAndDelete(t *testing.T) {
	s := NewMem()
	ctx := context.Background()

	u := &model.User{Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.Create(ctx, u))

	u.EmailConfirm = true
	require.NoError(t, s.Save(ctx, u))

	got, err := s.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailConfirm)

	require.NoError(t, s.Delete(ctx, u))
	_, err = s.ByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Save(ctx, u), ErrNotFound)
}

func TestMemStoreListPaging(t *testing.T) {
	s := NewMem()
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		require.NoError(t, s.Create(ctx, &model.User{Email: e, PasswordHash: "x"}))
	}

	page, err := s.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@example.com", page[0].Email)

	all, err := s.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
