package repository

import (
	"context"
	"errors"

	"demoapp/internal/domain/entity"
)

// ErrPaymentNotFound is returned when a payment id is unknown.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrRefundExceedsBalance is returned when a refund would push the cumulative
// refunded amount past the original charge.
var ErrRefundExceedsBalance = errors.New("refund exceeds remaining balance")

// PaymentRepository stores payments and their refunds.
type PaymentRepository interface {
	// CreatePayment persists a new payment record.
	CreatePayment(ctx context.Context, payment *entity.Payment) error

	// FindPayment retrieves a payment by id.
	FindPayment(ctx context.Context, id string) (*entity.Payment, error)

	// ListPayments returns payments in insertion order, optionally filtered
	// by customer id and capped at limit. The second return value is the
	// total matching count before the cap.
	ListPayments(ctx context.Context, customerID string, limit int) ([]*entity.Payment, int, error)

	// UpdatePaymentStatus transitions a payment's status and returns the
	// updated record.
	UpdatePaymentStatus(ctx context.Context, id string, status entity.PaymentStatus) (*entity.Payment, error)

	// CreateRefund persists a refund. The remaining-balance check and the
	// insert happen atomically: the cumulative refunded amount may never
	// exceed the payment's amount.
	CreateRefund(ctx context.Context, refund *entity.Refund) error

	// ListRefunds returns all refunds recorded against a payment.
	ListRefunds(ctx context.Context, paymentID string) ([]*entity.Refund, error)
}
