package repository

import (
	"context"
	"errors"

	"demoapp/internal/domain/entity"
)

// ErrStateNotFound is returned when an OAuth state is unknown, expired,
// or already consumed.
var ErrStateNotFound = errors.New("oauth state not found")

// OAuthRepository tracks authorization states and revoked refresh tokens.
type OAuthRepository interface {
	// SaveState stores a freshly issued state entry.
	SaveState(ctx context.Context, state *entity.OAuthState) error

	// ConsumeState atomically removes and returns a state entry.
	// Expired entries are treated as not found. A state can be consumed
	// at most once.
	ConsumeState(ctx context.Context, state string) (*entity.OAuthState, error)

	// RevokeToken records a refresh token id (jti) as revoked.
	RevokeToken(ctx context.Context, tokenID string) error

	// IsTokenRevoked reports whether a refresh token id has been revoked.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}
