package handler

import (
	"log/slog"
	"net/http"

	"demoapp/internal/delivery/http/response"
	"demoapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OAuthHandler holds dependencies for the provider login endpoints.
type OAuthHandler struct {
	uc     usecase.OAuthUsecase
	logger *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(uc usecase.OAuthUsecase, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type authorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
	Provider         string `json:"provider"`
}

// Authorize starts the provider flow and returns the redirect URL with the
// issued state. Passing redirect=true redirects instead of returning JSON.
func (h *OAuthHandler) Authorize(c echo.Context) error {
	provider := c.Param("provider")
	redirectURI := c.QueryParam("redirect_uri")

	output, err := h.uc.Authorize(c.Request().Context(), provider, redirectURI)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, output.AuthorizationURL)
	}

	return response.Success(c, http.StatusOK, authorizeResponse{
		AuthorizationURL: output.AuthorizationURL,
		State:            output.State,
		Provider:         output.Provider,
	}, "Authorization URL generated")
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Provider     string `json:"provider"`
}

func newTokenPairResponse(pair *usecase.TokenPairOutput) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		Provider:     pair.Provider,
	}
}

// Callback completes the provider flow. The state is mandatory and single-use.
func (h *OAuthHandler) Callback(c echo.Context) error {
	output, err := h.uc.Callback(c.Request().Context(), usecase.CallbackInput{
		Provider: c.Param("provider"),
		Code:     c.QueryParam("code"),
		State:    c.QueryParam("state"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokenPairResponse(output), "Authentication successful")
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken exchanges a refresh token for a fresh, rotated pair.
func (h *OAuthHandler) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "INVALID_INPUT", "refresh_token is required")
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokenPairResponse(output), "Token refreshed")
}

// RevokeToken invalidates a refresh token.
func (h *OAuthHandler) RevokeToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid revoke input")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "INVALID_INPUT", "refresh_token is required")
	}

	if err := h.uc.RevokeToken(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Token revoked"}, "Token revoked")
}
