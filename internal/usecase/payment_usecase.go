package usecase

import (
	"context"

	"demoapp/internal/domain/entity"
)

// ChargeInput defines the data required to process a card charge.
type ChargeInput struct {
	Amount        float64
	Currency      string
	PaymentMethod string
	CardNumber    string
	ExpMonth      int
	ExpYear       int
	CVV           string
	CustomerID    string
}

// RefundInput identifies the payment to refund. A nil Amount refunds the
// remaining unrefunded balance.
type RefundInput struct {
	PaymentID string
	Amount    *float64
	Reason    string
}

// ListPaymentsInput defines the optional customer filter and result cap.
type ListPaymentsInput struct {
	CustomerID string
	Limit      int
}

// ListPaymentsOutput returns a capped page of payments plus the total number
// of matches. The listing is capped, not cursor-paginated.
type ListPaymentsOutput struct {
	Payments []*entity.Payment
	Total    int
}

// WebhookOutput reports how an incoming gateway event was handled.
type WebhookOutput struct {
	EventType string
	// Status is "processed" when the event updated a payment and "ignored"
	// when the event type is unknown.
	Status string
}

// PaymentUsecase defines the interface for payment business operations.
type PaymentUsecase interface {
	Charge(ctx context.Context, input ChargeInput) (*entity.Payment, error)
	Refund(ctx context.Context, input RefundInput) (*entity.Refund, error)
	GetPayment(ctx context.Context, id string) (*entity.Payment, error)
	ListPayments(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error)

	// HandleWebhook verifies the payload signature before dispatching on the
	// event type. Unknown event types are acknowledged and ignored;
	// processing failures are reported, never swallowed.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookOutput, error)
}
