package usecase

import "context"

// LoginInput defines the data required for a credential login.
type LoginInput struct {
	Username   string
	Password   string
	RememberMe bool
}

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // Lifetime in seconds.
	Role        string
}

// ResetPasswordInput identifies the account by email and carries the new password.
type ResetPasswordInput struct {
	Email       string
	NewPassword string
}

// VerifyTokenOutput reports the result of a token verification.
type VerifyTokenOutput struct {
	Valid    bool
	Username string
	Role     string
}

// AuthUsecase defines the interface for credential-based authentication.
type AuthUsecase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout always succeeds. The token scheme is stateless JWT, so there is
	// nothing server-side to invalidate; the contract is a documented no-op.
	Logout(ctx context.Context) error

	ResetPassword(ctx context.Context, input ResetPasswordInput) error

	// VerifyToken checks the token's signature and expiry and returns the
	// subject and role it was issued for.
	VerifyToken(ctx context.Context, token string) (*VerifyTokenOutput, error)
}
