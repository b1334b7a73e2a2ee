package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"demoapp/config"
	deliverymiddleware "demoapp/internal/delivery/http/middleware"
	"demoapp/internal/delivery/http/response"
	"demoapp/internal/delivery/http/validator"
	"demoapp/internal/domain/entity"
	"demoapp/internal/infra/auth"
	"demoapp/internal/infra/gateway"
	"demoapp/internal/infra/memory"
	"demoapp/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "integration-webhook-secret"

// newTestServer assembles the full HTTP surface against fresh in-memory
// stores and a deterministic gateway.
func newTestServer(t *testing.T, approveCharges bool) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-access-secret"
	cfg.SecretKey.Refresh = "integration-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		TokenTTL: &config.TokenTTLSet{
			AdminRemembered: 30 * 24 * time.Hour,
			UserRemembered:  7 * 24 * time.Hour,
			Default:         time.Hour,
			Fallback:        30 * time.Minute,
		},
	}
	cfg.OAuth = &config.OAuthConfig{
		StateTTL: 10 * time.Minute,
		Providers: map[string]config.OAuthProvider{
			"google": {
				ClientID:     "test-client",
				AuthorizeURL: "https://accounts.google.com/o/oauth2/v2/auth",
				Scope:        "openid email",
			},
		},
	}
	cfg.Payment = &config.PaymentConfig{MaxAmount: 999999, ListLimit: 10}

	hasher := auth.NewBcryptHasherWithCost(4)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	credRepo := memory.NewCredentialRepository()
	adminHash, err := hasher.Hash("AdminPass!1")
	require.NoError(t, err)
	require.NoError(t, credRepo.Save(context.Background(), &entity.Credential{
		Username:     "admin",
		PasswordHash: adminHash,
		Role:         entity.RoleAdmin,
		Email:        "admin@example.com",
	}))

	userUC := impl.NewUserService(impl.UserServiceParams{
		UserRepo: memory.NewUserRepository(),
		Hasher:   hasher,
		Logger:   logger,
	})
	authUC := impl.NewAuthService(impl.AuthServiceParams{
		CredRepo:     credRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       logger,
	})
	oauthUC := impl.NewOAuthService(impl.OAuthServiceParams{
		OAuthRepo:    memory.NewOAuthRepository(),
		TokenService: tokenService,
		Config:       cfg,
		Logger:       logger,
	})
	paymentUC := impl.NewPaymentService(impl.PaymentServiceParams{
		PaymentRepo: memory.NewPaymentRepository(),
		Gateway:     gateway.NewDeterministicGateway(testWebhookSecret, approveCharges),
		Config:      cfg,
		Logger:      logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymiddleware.NewErrorMiddleware(logger).HandleHTTPError

	authHandler := NewAuthHandler(authUC, logger)
	oauthHandler := NewOAuthHandler(oauthUC, logger)
	paymentHandler := NewPaymentHandler(paymentUC, logger)
	userHandler := NewUserHandler(userUC, logger)

	e.GET("/", Root)
	e.GET("/health", HealthCheck)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.GET("/auth/verify-token", authHandler.VerifyToken)
	e.GET("/oauth/:provider/authorize", oauthHandler.Authorize)
	e.GET("/oauth/:provider/callback", oauthHandler.Callback)
	e.POST("/oauth/token/refresh", oauthHandler.RefreshToken)
	e.DELETE("/oauth/token/revoke", oauthHandler.RevokeToken)
	e.POST("/payment/charge", paymentHandler.Charge)
	e.POST("/payment/refund", paymentHandler.Refund)
	e.GET("/payment/payment/:id", paymentHandler.GetPayment)
	e.GET("/payment/payments", paymentHandler.ListPayments)
	e.POST("/payment/webhook", paymentHandler.Webhook)
	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)
	e.POST("/users/:id/activate", userHandler.ActivateUser)
	e.POST("/users/:id/deactivate", userHandler.DeactivateUser)

	return e
}

// doJSON performs a JSON request against the test server and decodes the
// unified envelope.
func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, headers map[string]string) (int, response.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec.Code, envelope
}

// dataField digs a field out of the envelope's data object.
func dataField(t *testing.T, envelope response.Response, key string) any {
	t.Helper()

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %#v", envelope.Data)

	return data[key]
}
