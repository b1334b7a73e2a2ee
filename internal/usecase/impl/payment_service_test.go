package impl

import (
	"context"
	"encoding/json"
	"testing"

	"demoapp/config"
	"demoapp/internal/domain/entity"
	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/domain/repository"
	"demoapp/internal/infra/gateway"
	"demoapp/internal/infra/memory"
	"demoapp/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "test-webhook-secret"

func newTestPaymentService(approve bool) (usecase.PaymentUsecase, repository.PaymentRepository) {
	repo := memory.NewPaymentRepository()
	cfg := &config.Config{}
	cfg.Payment = &config.PaymentConfig{
		MaxAmount: 999999,
		ListLimit: 10,
	}

	service := NewPaymentService(PaymentServiceParams{
		PaymentRepo: repo,
		Gateway:     gateway.NewDeterministicGateway(testWebhookSecret, approve),
		Config:      cfg,
		Logger:      testLogger(),
	})

	return service, repo
}

func validChargeInput() usecase.ChargeInput {
	return usecase.ChargeInput{
		Amount:        50.00,
		Currency:      "usd",
		PaymentMethod: "card",
		CardNumber:    "4532 0151 1283 0366",
		ExpMonth:      12,
		ExpYear:       2030,
		CVV:           "123",
		CustomerID:    "cust_1",
	}
}

func TestPaymentService_Charge_Success(t *testing.T) {
	service, _ := newTestPaymentService(true)

	payment, err := service.Charge(context.Background(), validChargeInput())
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, entity.PaymentStatusSucceeded, payment.Status)
	// Only the masked tail of the card is retained.
	assert.Equal(t, "0366", payment.CardLast4)
	assert.Equal(t, "usd", payment.Currency)
	assert.True(t, payment.Amount.Equal(decimalFromFloat(50.00)))
}

func TestPaymentService_Charge_Declined(t *testing.T) {
	service, _ := newTestPaymentService(false)

	_, err := service.Charge(context.Background(), validChargeInput())
	assert.ErrorIs(t, err, domainerrors.ErrPaymentDeclined)
}

func TestPaymentService_Charge_ValidationChain(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*usecase.ChargeInput)
	}{
		{"zero amount", func(in *usecase.ChargeInput) { in.Amount = 0 }},
		{"negative amount", func(in *usecase.ChargeInput) { in.Amount = -5 }},
		{"amount over ceiling", func(in *usecase.ChargeInput) { in.Amount = 1000000 }},
		{"missing method", func(in *usecase.ChargeInput) { in.PaymentMethod = "" }},
		{"missing card number", func(in *usecase.ChargeInput) { in.CardNumber = "" }},
		{"luhn-invalid card", func(in *usecase.ChargeInput) { in.CardNumber = "1234567890123456" }},
		{"month out of range", func(in *usecase.ChargeInput) { in.ExpMonth = 13 }},
		{"expired card", func(in *usecase.ChargeInput) { in.ExpYear = 2020 }},
		{"bad cvv", func(in *usecase.ChargeInput) { in.CVV = "12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validChargeInput()
			tt.mutate(&input)

			_, err := service.Charge(ctx, input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestPaymentService_Refund_DefaultsToRemainingBalance(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	payment, err := service.Charge(ctx, validChargeInput())
	require.NoError(t, err)

	partial := 20.0
	refund, err := service.Refund(ctx, usecase.RefundInput{PaymentID: payment.ID, Amount: &partial})
	require.NoError(t, err)
	assert.True(t, refund.Amount.Equal(decimalFromFloat(20)))
	assert.Equal(t, "requested_by_customer", refund.Reason)

	// No amount: refund whatever is left (30.00).
	rest, err := service.Refund(ctx, usecase.RefundInput{PaymentID: payment.ID})
	require.NoError(t, err)
	assert.True(t, rest.Amount.Equal(decimalFromFloat(30)))

	// Fully refunded now.
	_, err = service.Refund(ctx, usecase.RefundInput{PaymentID: payment.ID})
	assert.ErrorIs(t, err, domainerrors.ErrRefundExceedsBalance)
}

func TestPaymentService_Refund_OverRefundRejected(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	payment, err := service.Charge(ctx, validChargeInput())
	require.NoError(t, err)

	tooMuch := 50.01
	_, err = service.Refund(ctx, usecase.RefundInput{PaymentID: payment.ID, Amount: &tooMuch})
	assert.ErrorIs(t, err, domainerrors.ErrRefundExceedsBalance)
}

func TestPaymentService_Refund_Failures(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	_, err := service.Refund(ctx, usecase.RefundInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = service.Refund(ctx, usecase.RefundInput{PaymentID: "pay_missing"})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentNotFound)
}

func TestPaymentService_GetAndList(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	var firstID string
	for i := 0; i < 12; i++ {
		payment, err := service.Charge(ctx, validChargeInput())
		require.NoError(t, err)
		if i == 0 {
			firstID = payment.ID
		}
	}

	found, err := service.GetPayment(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, firstID, found.ID)

	_, err = service.GetPayment(ctx, "pay_missing")
	assert.ErrorIs(t, err, domainerrors.ErrPaymentNotFound)

	// The listing is capped at the configured limit; the total is not.
	out, err := service.ListPayments(ctx, usecase.ListPaymentsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Payments, 10)
	assert.Equal(t, 12, out.Total)

	out, err = service.ListPayments(ctx, usecase.ListPaymentsInput{CustomerID: "cust_other"})
	require.NoError(t, err)
	assert.Empty(t, out.Payments)
	assert.Zero(t, out.Total)
}

func signedEvent(t *testing.T, eventType, paymentID string) ([]byte, string) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"type": eventType,
		"data": map[string]any{"payment_id": paymentID},
	})
	require.NoError(t, err)

	return payload, gateway.SignPayload(testWebhookSecret, payload)
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	payment, err := service.Charge(ctx, validChargeInput())
	require.NoError(t, err)

	payload, signature := signedEvent(t, "payment.failed", payment.ID)
	out, err := service.HandleWebhook(ctx, payload, signature)
	require.NoError(t, err)
	assert.Equal(t, "processed", out.Status)

	updated, err := service.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, updated.Status)

	// Unknown event types are acknowledged and ignored.
	payload, signature = signedEvent(t, "customer.created", payment.ID)
	out, err = service.HandleWebhook(ctx, payload, signature)
	require.NoError(t, err)
	assert.Equal(t, "ignored", out.Status)
}

func TestPaymentService_HandleWebhook_Failures(t *testing.T) {
	service, _ := newTestPaymentService(true)
	ctx := context.Background()

	payload, _ := signedEvent(t, "payment.succeeded", "pay_x")
	_, err := service.HandleWebhook(ctx, payload, "bad-signature")
	assert.ErrorIs(t, err, domainerrors.ErrWebhookSignatureInvalid)

	// A known event type against an unknown payment is an error, not a
	// swallowed acknowledgment.
	payload, signature := signedEvent(t, "payment.succeeded", "pay_missing")
	_, err = service.HandleWebhook(ctx, payload, signature)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentNotFound)

	malformed := []byte("{not json")
	_, err = service.HandleWebhook(ctx, malformed, gateway.SignPayload(testWebhookSecret, malformed))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
