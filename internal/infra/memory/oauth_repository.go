package memory

import (
	"context"
	"sync"
	"time"

	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"
)

// oauthRepository tracks pending authorization states and revoked token ids.
// States are single-use: ConsumeState removes the record while it still
// holds the write lock, so a replayed callback always misses.
type oauthRepository struct {
	mu      sync.Mutex
	states  map[string]*entity.OAuthState
	revoked map[string]struct{}
}

// NewOAuthRepository is the constructor for the in-memory OAuth store.
func NewOAuthRepository() repository.OAuthRepository {
	return &oauthRepository{
		states:  make(map[string]*entity.OAuthState),
		revoked: make(map[string]struct{}),
	}
}

// SaveState records a freshly issued authorization state.
func (r *oauthRepository) SaveState(_ context.Context, state *entity.OAuthState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *state
	r.states[state.State] = &clone

	return nil
}

// ConsumeState looks up a state and deletes it in the same critical section.
// Expired states are treated as absent.
func (r *oauthRepository) ConsumeState(_ context.Context, state string) (*entity.OAuthState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.states[state]
	if !ok {
		return nil, repository.ErrStateNotFound
	}

	delete(r.states, state)

	if record.Expired(time.Now()) {
		return nil, repository.ErrStateNotFound
	}

	return record, nil
}

// RevokeToken marks a token id as revoked.
func (r *oauthRepository) RevokeToken(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoked[jti] = struct{}{}

	return nil
}

// IsTokenRevoked reports whether a token id has been revoked.
func (r *oauthRepository) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, revoked := r.revoked[jti]

	return revoked, nil
}
