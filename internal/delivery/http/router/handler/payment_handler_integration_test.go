package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"demoapp/internal/delivery/http/response"
	"demoapp/internal/infra/gateway"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeBody() map[string]any {
	return map[string]any{
		"amount":         50.00,
		"currency":       "usd",
		"payment_method": "card",
		"card_number":    "4532015112830366",
		"exp_month":      12,
		"exp_year":       2030,
		"cvv":            "123",
		"customer_id":    "cust_1",
	}
}

func TestPaymentHandler_ChargeAndFetch(t *testing.T) {
	e := newTestServer(t, true)

	code, envelope := doJSON(t, e, http.MethodPost, "/payment/charge", chargeBody(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "succeeded", dataField(t, envelope, "status"))
	assert.Equal(t, "0366", dataField(t, envelope, "card_last4"))
	assert.Equal(t, 50.0, dataField(t, envelope, "amount"))

	id := dataField(t, envelope, "id").(string)
	code, envelope = doJSON(t, e, http.MethodGet, "/payment/payment/"+id, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, dataField(t, envelope, "id"))

	code, _ = doJSON(t, e, http.MethodGet, "/payment/payment/pay_missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPaymentHandler_ChargeDeclined(t *testing.T) {
	e := newTestServer(t, false)

	code, envelope := doJSON(t, e, http.MethodPost, "/payment/charge", chargeBody(), nil)
	assert.Equal(t, http.StatusPaymentRequired, code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "PAYMENT_DECLINED", envelope.Error.Code)
}

func TestPaymentHandler_ChargeValidation(t *testing.T) {
	e := newTestServer(t, true)

	body := chargeBody()
	body["card_number"] = "1234567890123456"
	code, _ := doJSON(t, e, http.MethodPost, "/payment/charge", body, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	body = chargeBody()
	body["amount"] = -1
	code, _ = doJSON(t, e, http.MethodPost, "/payment/charge", body, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPaymentHandler_RefundFlow(t *testing.T) {
	e := newTestServer(t, true)

	code, envelope := doJSON(t, e, http.MethodPost, "/payment/charge", chargeBody(), nil)
	require.Equal(t, http.StatusOK, code)
	id := dataField(t, envelope, "id").(string)

	// Refund without amount refunds the full remaining balance.
	code, envelope = doJSON(t, e, http.MethodPost, "/payment/refund", map[string]any{
		"payment_id": id,
	}, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50.0, dataField(t, envelope, "amount"))
	assert.Equal(t, "requested_by_customer", dataField(t, envelope, "reason"))

	// The payment is fully refunded; another refund is rejected.
	code, envelope = doJSON(t, e, http.MethodPost, "/payment/refund", map[string]any{
		"payment_id": id,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "REFUND_EXCEEDS_BALANCE", envelope.Error.Code)

	code, _ = doJSON(t, e, http.MethodPost, "/payment/refund", map[string]any{
		"payment_id": "pay_missing",
	}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPaymentHandler_List(t *testing.T) {
	e := newTestServer(t, true)

	for i := 0; i < 3; i++ {
		code, _ := doJSON(t, e, http.MethodPost, "/payment/charge", chargeBody(), nil)
		require.Equal(t, http.StatusOK, code)
	}

	code, envelope := doJSON(t, e, http.MethodGet, "/payment/payments?limit=2", nil, nil)
	require.Equal(t, http.StatusOK, code)
	payments, ok := dataField(t, envelope, "payments").([]any)
	require.True(t, ok)
	assert.Len(t, payments, 2)
	assert.Equal(t, 3.0, dataField(t, envelope, "total"))

	code, envelope = doJSON(t, e, http.MethodGet, "/payment/payments?customer_id=cust_other", nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, dataField(t, envelope, "total"))
}

func TestPaymentHandler_Webhook(t *testing.T) {
	e := newTestServer(t, true)

	code, envelope := doJSON(t, e, http.MethodPost, "/payment/charge", chargeBody(), nil)
	require.Equal(t, http.StatusOK, code)
	id := dataField(t, envelope, "id").(string)

	payload, err := json.Marshal(map[string]any{
		"type": "payment.failed",
		"data": map[string]any{"payment_id": id},
	})
	require.NoError(t, err)

	// An unsigned delivery is rejected before any processing.
	code, sigEnvelope := postWebhook(t, e, payload, "bad-signature")
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, sigEnvelope.Error)
	assert.Equal(t, "WEBHOOK_SIGNATURE_INVALID", sigEnvelope.Error.Code)

	// A correctly signed delivery updates the payment.
	code, envelope = postWebhook(t, e, payload, gateway.SignPayload(testWebhookSecret, payload))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "processed", dataField(t, envelope, "status"))

	code, envelope = doJSON(t, e, http.MethodGet, "/payment/payment/"+id, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "failed", dataField(t, envelope, "status"))

	// Unknown event types are acknowledged and ignored.
	payload, err = json.Marshal(map[string]any{
		"type": "customer.created",
		"data": map[string]any{"payment_id": id},
	})
	require.NoError(t, err)
	code, envelope = postWebhook(t, e, payload, gateway.SignPayload(testWebhookSecret, payload))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ignored", dataField(t, envelope, "status"))
}

func postWebhook(t *testing.T, e *echo.Echo, payload []byte, signature string) (int, response.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderWebhookSignature, signature)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec.Code, envelope
}
