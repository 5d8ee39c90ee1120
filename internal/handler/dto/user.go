// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"errors"
	"regexp"
	"strings"

	"github.com/swapnest/swapnest/internal/model"
)

// Validation errors for request bodies.
var (
	ErrBlankName        = errors.New("name must not be blank")
	ErrBlankEmail       = errors.New("email must not be blank")
	ErrInvalidEmail     = errors.New("email format is invalid")
	ErrBlankDescription = errors.New("description must not be blank")
	ErrMissingAvailable = errors.New("available must be provided")
)

// emailPattern is a light shape check; real validation happens at the
// mailbox.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks required fields.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrBlankName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrBlankEmail
	}
	if !emailPattern.MatchString(r.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// UpdateUserRequest represents the request body for patching a user.
// Absent fields leave the stored value untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Validate checks the email shape when an email is supplied.
func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil && strings.TrimSpace(*r.Email) != "" && !emailPattern.MatchString(*r.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserListResponse converts a slice of User models to response DTOs.
func ToUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return responses
}
