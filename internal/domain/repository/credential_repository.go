package repository

import (
	"context"
	"errors"

	"demoapp/internal/domain/entity"
)

// ErrCredentialNotFound is returned when no credential exists for a username or email.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository holds the auth service's own credential table.
// It is seeded at process start and mutated only by password resets.
type CredentialRepository interface {
	// Find retrieves a credential by username.
	Find(ctx context.Context, username string) (*entity.Credential, error)

	// FindByEmail retrieves a credential by its associated email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Save inserts or replaces a credential entry.
	Save(ctx context.Context, credential *entity.Credential) error

	// UpdatePassword replaces the stored password hash for a username.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
