package store

import (
	"context"
	"strings"
	"sync"

	"github.com/swapnest/swapnest/internal/model"
)

// MemoryUserStore holds user records in process-local maps.
//
// A single mutex guards the record map, the email uniqueness index and
// the id counter, so check-then-insert for email uniqueness is atomic.
// State lives for the lifetime of the process; there is no teardown.
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	emails map[string]int64 // lower-cased email -> user id
	nextID int64
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[int64]*model.User),
		emails: make(map[string]int64),
		nextID: 1,
	}
}

// CreateUser assigns the next id and inserts the user.
func (s *MemoryUserStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := s.emails[key]; taken {
		return nil, ErrEmailExists
	}

	stored := user.Clone()
	stored.ID = s.nextID
	s.nextID++

	s.users[stored.ID] = stored
	s.emails[key] = stored.ID

	return stored.Clone(), nil
}

// UpdateUser replaces the stored record wholesale and keeps the email
// index in sync.
func (s *MemoryUserStore) UpdateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return nil, ErrUserNotFound
	}

	newKey := strings.ToLower(user.Email)
	oldKey := strings.ToLower(existing.Email)
	if newKey != oldKey {
		if owner, taken := s.emails[newKey]; taken && owner != user.ID {
			return nil, ErrEmailExists
		}
		delete(s.emails, oldKey)
		s.emails[newKey] = user.ID
	}

	s.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

// DeleteUser removes the record if present, releasing its email from the
// uniqueness index.
func (s *MemoryUserStore) DeleteUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return false, nil
	}

	delete(s.users, id)
	delete(s.emails, strings.ToLower(existing.Email))
	return true, nil
}

// FindUser returns the record or ErrUserNotFound.
func (s *MemoryUserStore) FindUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// GetUsers returns all records. Order reflects map iteration and is
// unspecified.
func (s *MemoryUserStore) GetUsers(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.Clone())
	}
	return users, nil
}

// EmailExists reports whether any user holds the email.
func (s *MemoryUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, taken := s.emails[strings.ToLower(email)]
	return taken, nil
}
