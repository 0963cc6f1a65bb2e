// Package store abstracts user persistence so the account workflow can
// run against gorm in production and an in-memory double in tests
package store

import (
	"context"
	"errors"

	"procureapp/accounts-api/internal/model"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserStore interface {
	ByID(ctx context.Context, id uint) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, u *model.User) error
	List(ctx context.Context, offset, limit int) ([]model.User, error)
}
