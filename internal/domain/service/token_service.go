package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by the tokens issued here.
type Claims struct {
	Role     string `json:"role,omitempty"`     // Role dispatched on during login ("admin", "user", "guest").
	Type     string `json:"type"`               // Token type ("access" or "refresh").
	Provider string `json:"provider,omitempty"` // Set on tokens fabricated by the OAuth flows.
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases. Every
// issued token is signed; nothing the service returns is a bare digest.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a subject with
	// the given role and lifetime.
	GenerateAccessToken(subject string, role string, ttl time.Duration) (string, error)

	// GenerateProviderTokens fabricates a signed access/refresh token pair
	// for an OAuth provider login. The refresh token carries a unique ID
	// (jti) so it can be revoked and rotated.
	GenerateProviderTokens(provider, subject string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token's signature and expiry.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token's signature and expiry.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the lifetime applied to provider access tokens.
	AccessTokenTTL() time.Duration
}
