package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoapp/config"
)

func TestMockGateway_ChargeDeterministic(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromFloat(50)

	approved := NewDeterministicGateway("secret", true)
	result, err := approved.Charge(ctx, amount, "usd")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.TransactionID)

	declined := NewDeterministicGateway("secret", false)
	result, err = declined.Charge(ctx, amount, "usd")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Payment declined", result.DeclineReason)
	assert.Empty(t, result.TransactionID)
}

func TestMockGateway_FabricatedObjects(t *testing.T) {
	ctx := context.Background()
	g := NewDeterministicGateway("secret", true)

	customer, err := g.CreateCustomer(ctx, "user@example.com", "User", nil)
	require.NoError(t, err)
	assert.True(t, len(customer.ID) > 4 && customer.ID[:4] == "cus_")
	assert.Equal(t, "user@example.com", customer.Email)

	intent, err := g.CreatePaymentIntent(ctx, decimal.NewFromInt(100), "usd", customer.ID)
	require.NoError(t, err)
	assert.Contains(t, intent.ID, "pi_")
	assert.Equal(t, "requires_payment_method", intent.Status)
	assert.Contains(t, intent.ClientSecret, intent.ID)

	confirmed, err := g.ConfirmPaymentIntent(ctx, intent.ID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", confirmed.Status)

	refund, err := g.CreateRefund(ctx, intent.ID, decimal.NewFromInt(40), "requested_by_customer")
	require.NoError(t, err)
	assert.Contains(t, refund.ID, "re_")
	assert.Equal(t, intent.ID, refund.PaymentIntentID)

	session, err := g.CreateCheckoutSession(ctx, "https://ok.example.com", "https://no.example.com")
	require.NoError(t, err)
	assert.Contains(t, session.URL, session.ID)
}

func TestMockGateway_WebhookSignature(t *testing.T) {
	const secret = "whsec-test"
	g := NewDeterministicGateway(secret, true)
	payload := []byte(`{"type":"payment.succeeded"}`)

	signature := SignPayload(secret, payload)
	assert.True(t, g.VerifyWebhookSignature(payload, signature))

	// Wrong payload, wrong secret, malformed and empty signatures all fail.
	assert.False(t, g.VerifyWebhookSignature([]byte(`{}`), signature))
	assert.False(t, g.VerifyWebhookSignature(payload, SignPayload("other", payload)))
	assert.False(t, g.VerifyWebhookSignature(payload, "not-hex!"))
	assert.False(t, g.VerifyWebhookSignature(payload, ""))
}

func TestNewMockGateway_FromConfig(t *testing.T) {
	cfg := &config.Config{Payment: &config.PaymentConfig{
		GatewaySuccessRate: 1.0,
		APIKey:             "sk_test_config",
		WebhookSecret:      "whsec",
	}}
	g := NewMockGateway(cfg)

	// Success rate of 1.0 means every charge is approved.
	for range 20 {
		result, err := g.Charge(context.Background(), decimal.NewFromInt(10), "usd")
		require.NoError(t, err)
		assert.True(t, result.Success)
	}
}

func TestMockGateway_RequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway(&config.Config{Payment: &config.PaymentConfig{
		GatewaySuccessRate: 1.0,
		WebhookSecret:      "whsec",
	}})

	_, err := g.Charge(ctx, decimal.NewFromInt(10), "usd")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = g.CreateCustomer(ctx, "user@example.com", "User", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = g.CreatePaymentIntent(ctx, decimal.NewFromInt(10), "usd", "cus_x")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = g.CreateRefund(ctx, "pi_x", decimal.NewFromInt(10), "requested_by_customer")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = g.CreateCheckoutSession(ctx, "https://ok.example.com", "https://no.example.com")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	// Webhook verification runs off the shared secret, not the key.
	payload := []byte(`{"type":"payment.succeeded"}`)
	assert.True(t, g.VerifyWebhookSignature(payload, SignPayload("whsec", payload)))
}
