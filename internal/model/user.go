// Package model defines domain entities for the application.
package model

// User represents a registered marketplace participant.
// The ID is assigned by the user store and never changes afterwards.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Clone returns a copy of the user.
// Stores hand out clones so callers cannot mutate stored state.
func (u *User) Clone() *User {
	c := *u
	return &c
}
