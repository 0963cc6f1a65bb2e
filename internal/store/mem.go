package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"procureapp/accounts-api/internal/model"
)

type memStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]model.User
}

// NewMem returns a map backed UserStore with the same semantics as the
// gorm one. Used by tests so the workflow can run without a database
func NewMem() UserStore {
	return &memStore{
		nextID: 1,
		users:  make(map[uint]model.User),
	}
}

func (s *memStore) ByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (s *memStore) ByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (s *memStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	u.ID = s.nextID
	s.nextID++

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.users[u.ID] = *u
	return nil
}

func (s *memStore) Save(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}

	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	s.users[u.ID] = *u
	return nil
}

func (s *memStore) Delete(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}

	delete(s.users, u.ID)
	return nil
}

func (s *memStore) List(_ context.Context, offset, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []model.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(users) >= limit {
			break
		}
		users = append(users, s.users[id])
	}

	return users, nil
}
