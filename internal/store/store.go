// Package store provides the authoritative storage layer for users and items.
//
// Each entity type is owned by exactly one store; all access goes through
// the store's methods. Two implementations exist: the default in-memory
// store and an optional PostgreSQL-backed store selected by configuration.
package store

import (
	"context"
	"errors"

	"github.com/swapnest/swapnest/internal/model"
)

// Common errors for store operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
	ErrEmailExists  = errors.New("email already exists")
)

// UserStore owns the authoritative set of user records.
type UserStore interface {
	// CreateUser assigns the next id and inserts the user.
	// Fails with ErrEmailExists if the email is already taken
	// (case-insensitive).
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// UpdateUser replaces the stored record wholesale. The id must
	// already exist. Changing the email to one held by a different
	// user fails with ErrEmailExists.
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)

	// DeleteUser removes the record if present and reports whether a
	// record was removed. Absence is not an error at this layer.
	DeleteUser(ctx context.Context, id int64) (bool, error)

	// FindUser returns the record or ErrUserNotFound.
	FindUser(ctx context.Context, id int64) (*model.User, error)

	// GetUsers returns all records in unspecified order.
	GetUsers(ctx context.Context) ([]*model.User, error)

	// EmailExists reports whether any user holds the email
	// (case-insensitive).
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ItemStore owns the authoritative set of item records.
type ItemStore interface {
	// CreateItem assigns the next id and inserts the item. Items have
	// no uniqueness constraint.
	CreateItem(ctx context.Context, item *model.Item) (*model.Item, error)

	// UpdateItem replaces the stored record wholesale. The id must
	// already exist. Partial-patch semantics live in the service layer.
	UpdateItem(ctx context.Context, item *model.Item) (*model.Item, error)

	// DeleteItem removes the record if present and reports whether a
	// record was removed.
	DeleteItem(ctx context.Context, id int64) (bool, error)

	// FindItem returns the record or ErrItemNotFound.
	FindItem(ctx context.Context, id int64) (*model.Item, error)

	// GetItems returns all items owned by ownerID in unspecified order.
	GetItems(ctx context.Context, ownerID int64) ([]*model.Item, error)

	// SearchItems returns all available items whose name or description
	// contains text. The query must already be lower-cased by the caller.
	SearchItems(ctx context.Context, text string) ([]*model.Item, error)
}
