package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"
)

// paymentRepository holds payments and their refunds. The refund-balance
// invariant is enforced inside CreateRefund, under the same write lock as
// the insert, so concurrent refunds can never overdraw a payment.
type paymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*entity.Payment
	order    []string // payment ids in insertion order
	refunds  map[string][]*entity.Refund
}

// NewPaymentRepository is the constructor for the in-memory payment store.
func NewPaymentRepository() repository.PaymentRepository {
	return &paymentRepository{
		payments: make(map[string]*entity.Payment),
		refunds:  make(map[string][]*entity.Refund),
	}
}

// CreatePayment records a processed charge.
func (r *paymentRepository) CreatePayment(_ context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[payment.ID] = clonePayment(payment)
	r.order = append(r.order, payment.ID)

	return nil
}

// FindPayment retrieves a payment by its ID.
func (r *paymentRepository) FindPayment(_ context.Context, id string) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}

	return clonePayment(payment), nil
}

// ListPayments returns up to limit payments in insertion order, optionally
// filtered by customer, plus the total count of matches before the cap.
func (r *paymentRepository) ListPayments(_ context.Context, customerID string, limit int) ([]*entity.Payment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*entity.Payment, 0, len(r.order))
	for _, id := range r.order {
		payment := r.payments[id]
		if customerID != "" && payment.CustomerID != customerID {
			continue
		}
		matches = append(matches, payment)
	}

	total := len(matches)
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	window := make([]*entity.Payment, 0, len(matches))
	for _, payment := range matches {
		window = append(window, clonePayment(payment))
	}

	return window, total, nil
}

// UpdatePaymentStatus transitions a payment to a new status.
func (r *paymentRepository) UpdatePaymentStatus(_ context.Context, id string, status entity.PaymentStatus) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}

	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()

	return clonePayment(payment), nil
}

// CreateRefund records a refund after checking, atomically, that the
// cumulative refunded amount does not exceed the original payment.
func (r *paymentRepository) CreateRefund(_ context.Context, refund *entity.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[refund.PaymentID]
	if !ok {
		return repository.ErrPaymentNotFound
	}

	refunded := decimal.Zero
	for _, prior := range r.refunds[refund.PaymentID] {
		refunded = refunded.Add(prior.Amount)
	}
	if refunded.Add(refund.Amount).GreaterThan(payment.Amount) {
		return repository.ErrRefundExceedsBalance
	}

	clone := *refund
	r.refunds[refund.PaymentID] = append(r.refunds[refund.PaymentID], &clone)

	return nil
}

// ListRefunds returns the refunds recorded against a payment, oldest first.
func (r *paymentRepository) ListRefunds(_ context.Context, paymentID string) ([]*entity.Refund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.payments[paymentID]; !ok {
		return nil, repository.ErrPaymentNotFound
	}

	refunds := make([]*entity.Refund, 0, len(r.refunds[paymentID]))
	for _, refund := range r.refunds[paymentID] {
		clone := *refund
		refunds = append(refunds, &clone)
	}

	return refunds, nil
}

func clonePayment(payment *entity.Payment) *entity.Payment {
	clone := *payment

	return &clone
}
