package store

import (
	"context"
	"errors"

	"procureapp/accounts-api/internal/model"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps a gorm connection in the UserStore interface. Each call
// runs as a single statement or transaction, uniqueness on email is
// enforced by the unique index
func NewGorm(db *gorm.DB) UserStore {
	return &gormStore{db: db}
}

func (s *gormStore) ByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (s *gormStore) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (s *gormStore) Create(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *gormStore) Save(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Save(u).Error)
}

func (s *gormStore) Delete(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Delete(u).Error)
}

func (s *gormStore) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	var users []model.User

	err := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return users, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}
