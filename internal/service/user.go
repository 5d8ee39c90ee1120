// Package service provides business logic for the application.
//
// Services add cross-entity validation and authorization on top of the
// stores and otherwise let store errors propagate unchanged. All checks
// happen before any store mutation, so a failed operation leaves no
// partial state behind.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/swapnest/swapnest/internal/metrics"
	"github.com/swapnest/swapnest/internal/model"
	"github.com/swapnest/swapnest/internal/store"
)

// Service errors.
var (
	ErrInvalidUserID = errors.New("user id is required")
	ErrNotOwner      = errors.New("caller is not the item owner")
)

// UserService handles user business logic.
type UserService struct {
	users   store.UserStore
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		users:   users,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// Create registers a new user. Fails with store.ErrEmailExists if the
// email is already taken (case-insensitive).
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	taken, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, store.ErrEmailExists
	}

	user := &model.User{
		Name:  input.Name,
		Email: input.Email,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserCreated()
	return created, nil
}

// UpdateUserInput defines input for partially updating a user.
// A field overwrites the stored value only when present and non-blank;
// absent or blank fields leave the existing value untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Update patches the user's name and email. The duplicate-email check is
// scoped to exclude the user's own current email, so updating with an
// unchanged email succeeds.
func (s *UserService) Update(ctx context.Context, userID int64, input UpdateUserInput) (*model.User, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if hasValue(input.Email) && !strings.EqualFold(*input.Email, user.Email) {
		taken, err := s.users.EmailExists(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrEmailExists
		}
	}

	if hasValue(input.Name) {
		user.Name = *input.Name
	}
	if hasValue(input.Email) {
		user.Email = *input.Email
	}

	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserUpdated()
	return updated, nil
}

// Delete removes the user. Unlike the store, the service fails with
// store.ErrUserNotFound when the user does not exist: the preceding
// existence-checked fetch makes delete strict at this layer.
func (s *UserService) Delete(ctx context.Context, userID int64) (bool, error) {
	if _, err := s.users.FindUser(ctx, userID); err != nil {
		return false, err
	}

	deleted, err := s.users.DeleteUser(ctx, userID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.metrics.IncUserDeleted()
	}
	return deleted, nil
}

// FindUser returns the user or store.ErrUserNotFound.
func (s *UserService) FindUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.FindUser(ctx, userID)
}

// GetUsers returns all users.
func (s *UserService) GetUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.GetUsers(ctx)
}

// hasValue reports whether an optional string field is present and
// non-blank.
func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
