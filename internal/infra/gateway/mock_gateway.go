// Package gateway contains the in-process mock payment provider client.
// It fabricates provider objects locally instead of calling out, but keeps
// the surface of a real client so one could be swapped in behind the
// PaymentGateway interface.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"demoapp/config"
	"demoapp/internal/domain/service"
)

const defaultSuccessRate = 0.95

// ErrMissingAPIKey is returned when the client is used without a configured
// API key. A real provider client would reject unauthenticated calls the
// same way.
var ErrMissingAPIKey = errors.New("gateway api key not configured")

// mockGateway implements service.PaymentGateway entirely in-process.
type mockGateway struct {
	apiKey        string
	webhookSecret []byte
	successRate   float64
	approve       func() bool
}

// NewMockGateway is the constructor for mockGateway, wired from config.
func NewMockGateway(cfg *config.Config) service.PaymentGateway {
	successRate := defaultSuccessRate
	var apiKey, webhookSecret string
	if cfg.Payment != nil {
		if cfg.Payment.GatewaySuccessRate > 0 {
			successRate = cfg.Payment.GatewaySuccessRate
		}
		apiKey = cfg.Payment.APIKey
		webhookSecret = cfg.Payment.WebhookSecret
	}

	g := &mockGateway{
		apiKey:        apiKey,
		webhookSecret: []byte(webhookSecret),
		successRate:   successRate,
	}
	g.approve = func() bool { return rand.Float64() < g.successRate }

	return g
}

// NewDeterministicGateway builds a gateway whose charge outcome is fixed,
// for tests that need a predictable approve/decline.
func NewDeterministicGateway(webhookSecret string, approve bool) service.PaymentGateway {
	return &mockGateway{
		apiKey:        "sk_test_deterministic",
		webhookSecret: []byte(webhookSecret),
		successRate:   defaultSuccessRate,
		approve:       func() bool { return approve },
	}
}

// requireKey rejects calls made without credentials.
func (g *mockGateway) requireKey() error {
	if g.apiKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}

// Charge attempts to capture the amount. Declines are reported through the
// result, not as errors.
func (g *mockGateway) Charge(_ context.Context, _ decimal.Decimal, _ string) (*service.ChargeResult, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}
	if !g.approve() {
		return &service.ChargeResult{
			Success:       false,
			DeclineReason: "Payment declined",
		}, nil
	}

	return &service.ChargeResult{
		Success:       true,
		TransactionID: "txn_" + randomHex(16),
	}, nil
}

// CreateCustomer registers a customer with the gateway.
func (g *mockGateway) CreateCustomer(_ context.Context, email, name string, metadata map[string]any) (*service.GatewayCustomer, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &service.GatewayCustomer{
		ID:        "cus_" + randomHex(14),
		Email:     email,
		Name:      name,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CreatePaymentIntent opens a new payment intent.
func (g *mockGateway) CreatePaymentIntent(_ context.Context, amount decimal.Decimal, currency, customerID string) (*service.PaymentIntent, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}
	intentID := "pi_" + randomHex(24)

	return &service.PaymentIntent{
		ID:           intentID,
		ClientSecret: intentID + "_secret_" + randomHex(24),
		Amount:       amount,
		Currency:     currency,
		CustomerID:   customerID,
		Status:       "requires_payment_method",
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ConfirmPaymentIntent confirms an intent with a payment method.
func (g *mockGateway) ConfirmPaymentIntent(_ context.Context, intentID, paymentMethod string) (*service.PaymentIntent, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}

	return &service.PaymentIntent{
		ID:            intentID,
		PaymentMethod: paymentMethod,
		Status:        "succeeded",
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// RetrievePaymentIntent fetches an intent by id.
func (g *mockGateway) RetrievePaymentIntent(_ context.Context, intentID string) (*service.PaymentIntent, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}

	return &service.PaymentIntent{
		ID:        intentID,
		Status:    "succeeded",
		Currency:  "usd",
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CreateRefund issues a refund against a payment intent.
func (g *mockGateway) CreateRefund(_ context.Context, paymentIntentID string, amount decimal.Decimal, reason string) (*service.GatewayRefund, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}

	return &service.GatewayRefund{
		ID:              "re_" + randomHex(24),
		PaymentIntentID: paymentIntentID,
		Amount:          amount,
		Reason:          reason,
		Status:          "succeeded",
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// CreateCheckoutSession opens a hosted checkout session.
func (g *mockGateway) CreateCheckoutSession(_ context.Context, successURL, cancelURL string) (*service.CheckoutSession, error) {
	if err := g.requireKey(); err != nil {
		return nil, err
	}
	sessionID := "cs_" + randomHex(24)

	return &service.CheckoutSession{
		ID:         sessionID,
		URL:        "https://checkout.example.com/pay/" + sessionID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature of a webhook
// payload against the shared secret using a constant-time comparison.
func (g *mockGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if len(g.webhookSecret) == 0 || signature == "" {
		return false
	}

	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, g.webhookSecret)
	mac.Write(payload)

	return hmac.Equal(mac.Sum(nil), expected)
}

// SignPayload computes the hex HMAC-SHA256 signature a caller must attach to
// a webhook payload. Exposed so tests and local tooling can produce valid
// signatures.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}

// randomHex returns n hex characters of fresh randomness.
func randomHex(n int) string {
	hexed := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	if n > len(hexed) {
		n = len(hexed)
	}

	return hexed[:n]
}
