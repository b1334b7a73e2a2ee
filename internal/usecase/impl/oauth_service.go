package impl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"demoapp/config"
	deliverycontext "demoapp/internal/delivery/context"
	"demoapp/internal/domain/entity"
	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/domain/repository"
	"demoapp/internal/domain/service"
	"demoapp/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultStateTTL = 10 * time.Minute

// oauthService implements the OAuthUsecase interface. The code exchange is
// mocked, but the state check and refresh-token rotation are real: states
// are single-use and time-bounded, and a used refresh token is revoked.
type oauthService struct {
	oauthRepo    repository.OAuthRepository
	tokenService service.TokenService
	providers    map[string]config.OAuthProvider
	stateTTL     time.Duration
	logger       *slog.Logger
}

// OAuthServiceParams holds dependencies for OAuthService, injected by Fx.
type OAuthServiceParams struct {
	fx.In

	OAuthRepo    repository.OAuthRepository
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	providers := map[string]config.OAuthProvider{}
	stateTTL := defaultStateTTL
	if params.Config != nil && params.Config.OAuth != nil {
		providers = params.Config.OAuth.Providers
		if params.Config.OAuth.StateTTL != 0 {
			stateTTL = params.Config.OAuth.StateTTL
		}
	}

	return &oauthService{
		oauthRepo:    params.OAuthRepo,
		tokenService: params.TokenService,
		providers:    providers,
		stateTTL:     stateTTL,
		logger:       params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authorize issues a fresh random state, records it with an expiry, and
// builds the provider's authorization redirect URL around it.
func (srv *oauthService) Authorize(ctx context.Context, provider, redirectURI string) (*usecase.AuthorizeOutput, error) {
	providerCfg, ok := srv.providers[provider]
	if !ok {
		return nil, domainerrors.ErrOAuthProviderUnknown
	}
	if redirectURI == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("redirect_uri is required")
	}

	state := newID("")
	now := time.Now().UTC()
	err := srv.oauthRepo.SaveState(ctx, &entity.OAuthState{
		State:       state,
		Provider:    provider,
		RedirectURI: redirectURI,
		ExpiresAt:   now.Add(srv.stateTTL),
		CreatedAt:   now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save authorization state")
	}

	query := url.Values{}
	query.Set("client_id", providerCfg.ClientID)
	query.Set("redirect_uri", redirectURI)
	query.Set("response_type", "code")
	query.Set("state", state)
	if providerCfg.Scope != "" {
		query.Set("scope", providerCfg.Scope)
	}

	srv.log(ctx).Info("Authorization started", slog.String("provider", provider))

	return &usecase.AuthorizeOutput{
		AuthorizationURL: providerCfg.AuthorizeURL + "?" + query.Encode(),
		State:            state,
		Provider:         provider,
	}, nil
}

// Callback enforces the state: it must exist, must not be expired, is
// consumed on first use, and must belong to the named provider. Only then
// is a signed token pair fabricated for the synthetic provider identity.
func (srv *oauthService) Callback(ctx context.Context, input usecase.CallbackInput) (*usecase.TokenPairOutput, error) {
	if _, ok := srv.providers[input.Provider]; !ok {
		return nil, domainerrors.ErrOAuthProviderUnknown
	}
	if input.Code == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("authorization code is required")
	}
	if input.State == "" {
		return nil, domainerrors.ErrOAuthStateInvalid
	}

	record, err := srv.oauthRepo.ConsumeState(ctx, input.State)
	if errors.Is(err, repository.ErrStateNotFound) {
		srv.log(ctx).Warn("Callback rejected: unknown or expired state", slog.String("provider", input.Provider))

		return nil, domainerrors.ErrOAuthStateInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume authorization state")
	}
	if record.Provider != input.Provider {
		return nil, domainerrors.ErrOAuthStateInvalid
	}

	// No real code exchange happens; the provider identity is synthetic.
	subject := input.Provider + "_user_" + newID("")[:12]

	return srv.issueTokenPair(ctx, input.Provider, subject)
}

// RefreshToken verifies and rotates: the presented refresh token is revoked
// and a new pair is issued in its place.
func (srv *oauthService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	revoked, err := srv.oauthRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	if err := srv.oauthRepo.RevokeToken(ctx, claims.ID); err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	return srv.issueTokenPair(ctx, claims.Provider, claims.Subject)
}

// RevokeToken invalidates a refresh token. Success is reported only when the
// call actually revoked something.
func (srv *oauthService) RevokeToken(ctx context.Context, refreshToken string) error {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return domainerrors.ErrNotFound.WrapMessage("token not recognized")
	}

	revoked, err := srv.oauthRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return domainerrors.ErrNotFound.WrapMessage("token already revoked")
	}

	if err := srv.oauthRepo.RevokeToken(ctx, claims.ID); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	srv.log(ctx).Info("Refresh token revoked", slog.String("provider", claims.Provider))

	return nil
}

func (srv *oauthService) issueTokenPair(ctx context.Context, provider, subject string) (*usecase.TokenPairOutput, error) {
	access, refresh, err := srv.tokenService.GenerateProviderTokens(provider, subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate provider tokens")
	}

	srv.log(ctx).Info("Token pair issued", slog.String("provider", provider), slog.String("subject", subject))

	return &usecase.TokenPairOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(srv.tokenService.AccessTokenTTL().Seconds()),
		Provider:     provider,
	}, nil
}
