package memory

import (
	"context"
	"sync"

	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"
)

// credentialRepository stores password hashes keyed by username. It backs
// the login flow and is seeded from configuration at startup.
type credentialRepository struct {
	mu    sync.RWMutex
	creds map[string]*entity.Credential
}

// NewCredentialRepository is the constructor for the in-memory credential store.
func NewCredentialRepository() repository.CredentialRepository {
	return &credentialRepository{
		creds: make(map[string]*entity.Credential),
	}
}

// Find retrieves the credential for a username.
func (r *credentialRepository) Find(_ context.Context, username string) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.creds[username]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	clone := *cred

	return &clone, nil
}

// FindByEmail retrieves the credential registered under an email address.
func (r *credentialRepository) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cred := range r.creds {
		if cred.Email == email {
			clone := *cred

			return &clone, nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

// Save inserts or replaces the credential for its username.
func (r *credentialRepository) Save(_ context.Context, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *cred
	r.creds[cred.Username] = &clone

	return nil
}

// UpdatePassword swaps the stored hash for an existing username.
func (r *credentialRepository) UpdatePassword(_ context.Context, username string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.creds[username]
	if !ok {
		return repository.ErrCredentialNotFound
	}

	cred.PasswordHash = passwordHash

	return nil
}
