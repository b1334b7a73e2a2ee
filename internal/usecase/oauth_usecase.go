package usecase

import "context"

// AuthorizeOutput returns the constructed authorization redirect and the
// state value the callback must echo back.
type AuthorizeOutput struct {
	AuthorizationURL string
	State            string
	Provider         string
}

// CallbackInput carries the provider's response to an authorization request.
type CallbackInput struct {
	Provider string
	Code     string
	State    string
}

// TokenPairOutput returns an issued access/refresh token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64 // Access token lifetime in seconds.
	Provider     string
}

// OAuthUsecase defines the interface for the provider login flows. The code
// exchange is mocked in-process, but every issued token is a signed JWT and
// the state check is enforced, single-use, and time-bounded.
type OAuthUsecase interface {
	// Authorize issues a state value and builds the provider redirect URL.
	Authorize(ctx context.Context, provider, redirectURI string) (*AuthorizeOutput, error)

	// Callback consumes the state, rejects unknown or expired ones, and
	// fabricates a signed token pair for the synthetic provider identity.
	Callback(ctx context.Context, input CallbackInput) (*TokenPairOutput, error)

	// RefreshToken verifies the refresh token, rejects revoked ones, and
	// rotates it: the old token is revoked and a new pair is issued.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPairOutput, error)

	// RevokeToken invalidates a refresh token. Revoking a token that was
	// never issued or cannot be verified is reported as not-found.
	RevokeToken(ctx context.Context, refreshToken string) error
}
