package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	// PaymentStatusSucceeded indicates the charge was approved by the gateway.
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	// PaymentStatusFailed indicates the charge failed or was later reported failed.
	PaymentStatusFailed PaymentStatus = "failed"
)

// Payment is a charge recorded by the payment service. Only the masked card
// tail is retained; the full card number is never stored.
type Payment struct {
	ID         string          // Generated "pay_"-prefixed identifier.
	Amount     decimal.Decimal // Charged amount.
	Currency   string          // ISO currency code, lowercased.
	Status     PaymentStatus   // succeeded or failed.
	CustomerID string          // Optional caller-supplied customer reference.
	CardLast4  string          // Last four digits of the card used.
	CreatedAt  time.Time       // Timestamp of the charge.
	UpdatedAt  time.Time       // Timestamp of the last status change.
}

// Refund is a refund issued against a payment. Refunds are immutable once
// created; the cumulative refunded amount per payment is bounded by the
// original charge.
type Refund struct {
	ID        string          // Generated "ref_"-prefixed identifier.
	PaymentID string          // The payment this refund applies to.
	Amount    decimal.Decimal // Refunded amount.
	Reason    string          // Optional caller-supplied reason.
	Status    string          // Always "succeeded" for recorded refunds.
	CreatedAt time.Time       // Timestamp of the refund.
}
