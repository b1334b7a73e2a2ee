// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core account record managed by the user store.
// Passwords are never held in plaintext; only the bcrypt hash is stored.
type User struct {
	ID           string    // Generated identifier, unique across the store.
	Username     string    // Login handle, unique across the store.
	Email        string    // Contact email, unique across the store.
	PasswordHash string    // bcrypt hash of the user's password.
	FullName     string    // Optional display name.
	IsActive     bool      // Whether the account is currently active.
	CreatedAt    time.Time // Timestamp of account creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// UserUpdate carries a partial update to a user record.
// Nil fields are left untouched by the store.
type UserUpdate struct {
	Email    *string
	FullName *string
	IsActive *bool
}
