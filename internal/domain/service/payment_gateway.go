package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeResult is the gateway's answer to a charge attempt.
type ChargeResult struct {
	Success       bool   // Whether the gateway approved the charge.
	TransactionID string // Gateway transaction reference on success.
	DeclineReason string // Generic decline reason on failure.
}

// GatewayCustomer is a customer object fabricated by the gateway.
type GatewayCustomer struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// PaymentIntent is a payment-intent object fabricated by the gateway.
type PaymentIntent struct {
	ID            string          `json:"id"`
	ClientSecret  string          `json:"client_secret,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerID    string          `json:"customer,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GatewayRefund is a refund object fabricated by the gateway.
type GatewayRefund struct {
	ID              string          `json:"id"`
	PaymentIntentID string          `json:"payment_intent"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CheckoutSession is a hosted checkout session fabricated by the gateway.
type CheckoutSession struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	SuccessURL string    `json:"success_url"`
	CancelURL  string    `json:"cancel_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentGateway abstracts the external payment provider. The default
// implementation is an in-process mock; call sites depend only on this
// interface so a real client or a deterministic test double can be swapped
// in without touching them.
type PaymentGateway interface {
	// Charge attempts to capture the amount. A declined charge is not an
	// error; it is reported through ChargeResult.
	Charge(ctx context.Context, amount decimal.Decimal, currency string) (*ChargeResult, error)

	// CreateCustomer registers a customer with the gateway.
	CreateCustomer(ctx context.Context, email, name string, metadata map[string]any) (*GatewayCustomer, error)

	// CreatePaymentIntent opens a new payment intent.
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, customerID string) (*PaymentIntent, error)

	// ConfirmPaymentIntent confirms an intent with a payment method.
	ConfirmPaymentIntent(ctx context.Context, intentID, paymentMethod string) (*PaymentIntent, error)

	// RetrievePaymentIntent fetches an intent by id.
	RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)

	// CreateRefund issues a refund against a payment intent.
	CreateRefund(ctx context.Context, paymentIntentID string, amount decimal.Decimal, reason string) (*GatewayRefund, error)

	// CreateCheckoutSession opens a hosted checkout session.
	CreateCheckoutSession(ctx context.Context, successURL, cancelURL string) (*CheckoutSession, error)

	// VerifyWebhookSignature checks the HMAC signature of a webhook payload
	// against the shared secret using a constant-time comparison.
	VerifyWebhookSignature(payload []byte, signature string) bool
}
