package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"demoapp/internal/delivery/http/response"
	"demoapp/internal/domain/entity"
	"demoapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderWebhookSignature carries the HMAC signature of a webhook payload.
const HeaderWebhookSignature = "X-Webhook-Signature"

// PaymentHandler holds dependencies for the payment endpoints.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

type chargeRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`
	CardNumber    string  `json:"card_number" validate:"omitempty,card_number"`
	ExpMonth      int     `json:"exp_month"`
	ExpYear       int     `json:"exp_year"`
	CVV           string  `json:"cvv" validate:"omitempty,cvv_format"`
	CustomerID    string  `json:"customer_id"`
}

// paymentResponse is the wire shape of a payment; amounts are plain numbers
// at the JSON boundary.
type paymentResponse struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CustomerID string    `json:"customer_id,omitempty"`
	CardLast4  string    `json:"card_last4"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newPaymentResponse(payment *entity.Payment) paymentResponse {
	amount, _ := payment.Amount.Float64()

	return paymentResponse{
		ID:         payment.ID,
		Amount:     amount,
		Currency:   payment.Currency,
		Status:     string(payment.Status),
		CustomerID: payment.CustomerID,
		CardLast4:  payment.CardLast4,
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
}

// Charge processes a card charge.
func (h *PaymentHandler) Charge(c echo.Context) error {
	var req chargeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid charge input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	payment, err := h.uc.Charge(c.Request().Context(), usecase.ChargeInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		ExpMonth:      req.ExpMonth,
		ExpYear:       req.ExpYear,
		CVV:           req.CVV,
		CustomerID:    req.CustomerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newPaymentResponse(payment), "Charge processed")
}

type refundRequest struct {
	PaymentID string   `json:"payment_id"`
	Amount    *float64 `json:"amount"`
	Reason    string   `json:"reason"`
}

type refundResponse struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Refund refunds a payment, bounded by its remaining balance.
func (h *PaymentHandler) Refund(c echo.Context) error {
	var req refundRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refund input")
	}

	refund, err := h.uc.Refund(c.Request().Context(), usecase.RefundInput{
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	amount, _ := refund.Amount.Float64()

	return response.Success(c, http.StatusOK, refundResponse{
		ID:        refund.ID,
		PaymentID: refund.PaymentID,
		Amount:    amount,
		Reason:    refund.Reason,
		Status:    refund.Status,
		CreatedAt: refund.CreatedAt,
	}, "Refund processed")
}

// GetPayment fetches a single payment by id.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.uc.GetPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newPaymentResponse(payment), "")
}

type listPaymentsResponse struct {
	Payments []paymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

// ListPayments returns a capped listing, optionally filtered by customer.
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "limit must be an integer")
		}
	}

	output, err := h.uc.ListPayments(c.Request().Context(), usecase.ListPaymentsInput{
		CustomerID: c.QueryParam("customer_id"),
		Limit:      limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payments := make([]paymentResponse, 0, len(output.Payments))
	for _, payment := range output.Payments {
		payments = append(payments, newPaymentResponse(payment))
	}

	return response.Success(c, http.StatusOK, listPaymentsResponse{
		Payments: payments,
		Total:    output.Total,
	}, "")
}

// Webhook receives gateway events. The raw body is read before any parsing
// so the signature covers exactly the bytes on the wire.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Unable to read webhook payload")
	}

	output, err := h.uc.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(HeaderWebhookSignature))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"status":     output.Status,
		"event_type": output.EventType,
	}, "Webhook received")
}
