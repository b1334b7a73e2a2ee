package impl

import (
	"context"
	"log/slog"
	"time"

	"demoapp/config"
	deliverycontext "demoapp/internal/delivery/context"
	"demoapp/internal/domain/entity"
	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/domain/repository"
	"demoapp/internal/domain/service"
	"demoapp/internal/usecase"
	"demoapp/internal/validation"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Token lifetimes used when the config does not override them.
const (
	defaultAdminRememberedTTL = 30 * 24 * time.Hour
	defaultUserRememberedTTL  = 7 * 24 * time.Hour
	defaultTokenTTL           = time.Hour
	defaultFallbackTTL        = 30 * time.Minute
)

// authService implements the AuthUsecase interface. It authenticates against
// the credential table, which is separate from the user-record table and
// seeded from configuration at startup.
type authService struct {
	credRepo     repository.CredentialRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	ttl          config.TokenTTLSet
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	CredRepo     repository.CredentialRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	ttl := config.TokenTTLSet{
		AdminRemembered: defaultAdminRememberedTTL,
		UserRemembered:  defaultUserRememberedTTL,
		Default:         defaultTokenTTL,
		Fallback:        defaultFallbackTTL,
	}
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.TokenTTL != nil {
		ttl = *params.Config.Auth.TokenTTL
	}

	return &authService{
		credRepo:     params.CredRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		ttl:          ttl,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login walks the gate sequence: missing username is a validation failure,
// an unknown username is not-found, a missing password is a validation
// failure, and a hash mismatch is unauthorized. On success the stored role
// decides the token lifetime.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Username == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("username is required")
	}

	cred, err := srv.credRepo.Find(ctx, input.Username)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up credential")
	}

	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password is required")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	role, ttl := srv.dispatchRole(cred.Role, input.RememberMe)

	token, err := srv.tokenService.GenerateAccessToken(cred.Username, role.String(), ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("Login succeeded",
		slog.String("username", cred.Username),
		slog.String("role", role.String()),
	)

	return &usecase.LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		Role:        role.String(),
	}, nil
}

// dispatchRole maps the stored role to the issued role label and lifetime.
// Unrecognized roles are issued short guest tokens.
func (srv *authService) dispatchRole(role entity.Role, rememberMe bool) (entity.Role, time.Duration) {
	switch role {
	case entity.RoleAdmin:
		if rememberMe {
			return entity.RoleAdmin, srv.ttl.AdminRemembered
		}

		return entity.RoleAdmin, srv.ttl.Default
	case entity.RoleUser:
		if rememberMe {
			return entity.RoleUser, srv.ttl.UserRemembered
		}

		return entity.RoleUser, srv.ttl.Default
	default:
		return entity.RoleGuest, srv.ttl.Fallback
	}
}

// Logout reports success without invalidating anything. Access tokens are
// stateless JWTs that simply expire; this limitation is part of the contract.
func (srv *authService) Logout(ctx context.Context) error {
	srv.log(ctx).Info("Logout acknowledged")

	return nil
}

// ResetPassword matches the account by email, checks the new password's
// strength, and replaces the stored hash. Internal faults propagate; they
// are never collapsed into a generic success.
func (srv *authService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	if ok, msg := validation.Email(input.Email); !ok {
		return domainerrors.ErrValidationFailed.WrapMessage(msg)
	}
	if ok, msg := validation.Password(input.NewPassword); !ok {
		return domainerrors.ErrValidationFailed.WrapMessage(msg)
	}

	cred, err := srv.credRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up credential by email")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.credRepo.UpdatePassword(ctx, cred.Username, hash); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password reset", slog.String("username", cred.Username))

	return nil
}

// VerifyToken fully verifies the token's signature and expiry. A token that
// fails verification yields Valid=false, not an error; malformed input is a
// classification, not a fault.
func (srv *authService) VerifyToken(_ context.Context, token string) (*usecase.VerifyTokenOutput, error) {
	claims, err := srv.tokenService.ValidateAccessToken(token)
	if err != nil {
		return &usecase.VerifyTokenOutput{Valid: false}, nil
	}

	return &usecase.VerifyTokenOutput{
		Valid:    true,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}
