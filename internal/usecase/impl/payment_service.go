package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"demoapp/config"
	deliverycontext "demoapp/internal/delivery/context"
	"demoapp/internal/domain/entity"
	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/domain/repository"
	"demoapp/internal/domain/service"
	"demoapp/internal/usecase"
	"demoapp/internal/validation"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultMaxAmount   = 999999
	defaultListLimit   = 10
	defaultCurrency    = "usd"
	defaultRefundNote  = "requested_by_customer"
	refundStatusDone   = "succeeded"
	eventPaymentOK     = "payment.succeeded"
	eventPaymentFailed = "payment.failed"
)

// webhookEvent is the typed shape of an incoming gateway event. Event types
// outside the known set fall through to the ignored path.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		PaymentID string `json:"payment_id"`
	} `json:"data"`
}

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     service.PaymentGateway
	maxAmount   decimal.Decimal
	listLimit   int
	logger      *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	PaymentRepo repository.PaymentRepository
	Gateway     service.PaymentGateway
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	maxAmount := decimal.NewFromInt(defaultMaxAmount)
	listLimit := defaultListLimit
	if params.Config != nil && params.Config.Payment != nil {
		if params.Config.Payment.MaxAmount > 0 {
			maxAmount = decimal.NewFromFloat(params.Config.Payment.MaxAmount)
		}
		if params.Config.Payment.ListLimit > 0 {
			listLimit = params.Config.Payment.ListLimit
		}
	}

	return &paymentService{
		paymentRepo: params.PaymentRepo,
		gateway:     params.Gateway,
		maxAmount:   maxAmount,
		listLimit:   listLimit,
		logger:      params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Charge runs the validation chain in order, each failure short-circuiting
// with its own message, then asks the gateway to capture the amount. A
// decline is a business failure, not a fault.
func (srv *paymentService) Charge(ctx context.Context, input usecase.ChargeInput) (*entity.Payment, error) {
	amount := decimal.NewFromFloat(input.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("amount must be positive")
	}
	if amount.GreaterThan(srv.maxAmount) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("amount exceeds maximum")
	}
	if input.PaymentMethod == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment method is required")
	}
	if input.CardNumber == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("card number is required")
	}
	if ok, msg := validation.CardNumber(input.CardNumber); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}
	if input.ExpMonth < 1 || input.ExpMonth > 12 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("expiry month must be between 1 and 12")
	}
	if ok, msg := validation.Expiry(input.ExpMonth, input.ExpYear); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}
	if ok, msg := validation.CVV(input.CVV); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	result, err := srv.gateway.Charge(ctx, amount, currency)
	if err != nil {
		return nil, errors.Wrap(err, "gateway charge failed")
	}
	if !result.Success {
		srv.log(ctx).Warn("Charge declined", slog.String("reason", result.DeclineReason))

		return nil, domainerrors.ErrPaymentDeclined.WithDetails(result.DeclineReason)
	}

	digits := strings.NewReplacer(" ", "", "-", "").Replace(input.CardNumber)
	now := time.Now().UTC()
	payment := &entity.Payment{
		ID:         newID("pay_"),
		Amount:     amount,
		Currency:   currency,
		Status:     entity.PaymentStatusSucceeded,
		CustomerID: input.CustomerID,
		CardLast4:  digits[len(digits)-4:],
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := srv.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to store payment")
	}

	srv.log(ctx).Info("Charge succeeded",
		slog.String("payment_id", payment.ID),
		slog.String("transaction_id", result.TransactionID),
	)

	return payment, nil
}

// Refund refunds against the remaining unrefunded balance of the payment.
// Omitting the amount refunds the whole remaining balance; an amount above
// it is rejected, as is any refund of a fully-refunded payment.
func (srv *paymentService) Refund(ctx context.Context, input usecase.RefundInput) (*entity.Refund, error) {
	if input.PaymentID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment_id is required")
	}

	payment, err := srv.paymentRepo.FindPayment(ctx, input.PaymentID)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, domainerrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	prior, err := srv.paymentRepo.ListRefunds(ctx, input.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list refunds")
	}
	remaining := payment.Amount
	for _, refund := range prior {
		remaining = remaining.Sub(refund.Amount)
	}

	amount := remaining
	if input.Amount != nil {
		amount = decimal.NewFromFloat(*input.Amount)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		if remaining.LessThanOrEqual(decimal.Zero) {
			return nil, domainerrors.ErrRefundExceedsBalance.WrapMessage("payment is already fully refunded")
		}

		return nil, domainerrors.ErrValidationFailed.WrapMessage("refund amount must be positive")
	}

	reason := input.Reason
	if reason == "" {
		reason = defaultRefundNote
	}

	refund := &entity.Refund{
		ID:        newID("ref_"),
		PaymentID: input.PaymentID,
		Amount:    amount,
		Reason:    reason,
		Status:    refundStatusDone,
		CreatedAt: time.Now().UTC(),
	}

	// The store re-checks the balance under its write lock; this call is the
	// authoritative one under concurrent refunds.
	if err := srv.paymentRepo.CreateRefund(ctx, refund); err != nil {
		switch {
		case errors.Is(err, repository.ErrRefundExceedsBalance):
			return nil, domainerrors.ErrRefundExceedsBalance
		case errors.Is(err, repository.ErrPaymentNotFound):
			return nil, domainerrors.ErrPaymentNotFound
		default:
			return nil, errors.Wrap(err, "failed to store refund")
		}
	}

	srv.log(ctx).Info("Refund recorded",
		slog.String("refund_id", refund.ID),
		slog.String("payment_id", refund.PaymentID),
	)

	return refund, nil
}

// GetPayment retrieves a payment by id.
func (srv *paymentService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := srv.paymentRepo.FindPayment(ctx, id)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, domainerrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return payment, nil
}

// ListPayments returns a capped listing, optionally filtered by customer.
func (srv *paymentService) ListPayments(ctx context.Context, input usecase.ListPaymentsInput) (*usecase.ListPaymentsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > srv.listLimit {
		limit = srv.listLimit
	}

	payments, total, err := srv.paymentRepo.ListPayments(ctx, input.CustomerID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return &usecase.ListPaymentsOutput{Payments: payments, Total: total}, nil
}

// HandleWebhook verifies the signature before anything else, then dispatches
// on the event type. Unknown types are acknowledged and ignored; a failure
// while applying a known event is reported to the caller.
func (srv *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*usecase.WebhookOutput, error) {
	if !srv.gateway.VerifyWebhookSignature(payload, signature) {
		srv.log(ctx).Warn("Webhook rejected: bad signature")

		return nil, domainerrors.ErrWebhookSignatureInvalid
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed webhook payload")
	}

	var status entity.PaymentStatus
	switch event.Type {
	case eventPaymentOK:
		status = entity.PaymentStatusSucceeded
	case eventPaymentFailed:
		status = entity.PaymentStatusFailed
	default:
		srv.log(ctx).Info("Webhook ignored", slog.String("event_type", event.Type))

		return &usecase.WebhookOutput{EventType: event.Type, Status: "ignored"}, nil
	}

	if event.Data.PaymentID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment_id is required")
	}

	if _, err := srv.paymentRepo.UpdatePaymentStatus(ctx, event.Data.PaymentID, status); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to apply webhook event")
	}

	srv.log(ctx).Info("Webhook processed",
		slog.String("event_type", event.Type),
		slog.String("payment_id", event.Data.PaymentID),
	)

	return &usecase.WebhookOutput{EventType: event.Type, Status: "processed"}, nil
}
