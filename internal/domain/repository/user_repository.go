// Package repository defines the interfaces for the data stores.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer; the default implementations are process-local
// in-memory stores.
package repository

import (
	"context"
	"errors"

	"demoapp/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned when an email is already registered.
var ErrDuplicateEmail = errors.New("email already exists")

// ListUsersFilter narrows and windows a user listing.
type ListUsersFilter struct {
	IsActive *bool // Optional active-status filter.
	Skip     int   // Records to skip over the filtered set.
	Limit    int   // Maximum records to return.
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete store.
// Create and Update enforce username/email uniqueness atomically.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. It fails with ErrDuplicateUsername or
	// ErrDuplicateEmail when a unique field is already taken; the check and
	// the insert happen atomically.
	Create(ctx context.Context, user *entity.User) error

	// List returns users in insertion order, after applying the filter's
	// active-status predicate and skip/limit window.
	List(ctx context.Context, filter ListUsersFilter) ([]*entity.User, error)

	// Update applies a partial update; nil fields are left untouched.
	// An email change fails with ErrDuplicateEmail if another user holds it.
	Update(ctx context.Context, id string, update entity.UserUpdate) (*entity.User, error)

	// Delete permanently removes the record. There is no soft delete.
	Delete(ctx context.Context, id string) error
}
