package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	payment_handler "baul-moda/internal/paymentHandler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callWebhook(t *testing.T, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	requestBody, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := payment_handler.MercadoPagoWebhook(c)
	assert.NoError(t, err)
	return rec
}

func TestMercadoPagoWebhook(t *testing.T) {
	t.Run("Missing Fields Rejected", func(t *testing.T) {
		rec := callWebhook(t, map[string]interface{}{"type": "payment"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = callWebhook(t, map[string]interface{}{"data": map[string]string{"id": "123"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Non-Payment Events Acknowledged Without Fetch", func(t *testing.T) {
		provider := &fakeProvider{}
		payment_handler.SetReconciler(&payment_handler.Reconciler{Provider: provider, Forwarder: &fakeForwarder{}})

		rec := callWebhook(t, map[string]interface{}{
			"type": "merchant_order",
			"data": map[string]string{"id": "123456"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		response := map[string]interface{}{}
		json.Unmarshal(rec.Body.Bytes(), &response)
		assert.Contains(t, response["message"], "ignored")
		assert.Equal(t, 0, provider.fetches)
	})

	t.Run("Approved Payment Reconciled", func(t *testing.T) {
		forwarder := &fakeForwarder{}
		payment_handler.SetReconciler(&payment_handler.Reconciler{
			Provider: &fakeProvider{record: &payment_handler.PaymentRecord{
				ID:       "123456",
				Status:   "approved",
				Metadata: map[string]interface{}{"order_id": "order-abc"},
			}},
			Forwarder: forwarder,
		})

		rec := callWebhook(t, map[string]interface{}{
			"type": "payment",
			"data": map[string]string{"id": "123456"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		response := map[string]interface{}{}
		json.Unmarshal(rec.Body.Bytes(), &response)
		assert.Equal(t, true, response["success"])
		assert.Len(t, forwarder.forwards, 1)
		assert.Equal(t, "success", forwarder.forwards[0].InternalStatus)
	})

	t.Run("Missing Order Reference Is 400", func(t *testing.T) {
		payment_handler.SetReconciler(&payment_handler.Reconciler{
			Provider: &fakeProvider{record: &payment_handler.PaymentRecord{
				ID:       "123456",
				Status:   "approved",
				Metadata: map[string]interface{}{},
			}},
			Forwarder: &fakeForwarder{},
		})

		rec := callWebhook(t, map[string]interface{}{
			"type": "payment",
			"data": map[string]string{"id": "123456"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Provider Failure Is 500", func(t *testing.T) {
		payment_handler.SetReconciler(&payment_handler.Reconciler{
			Provider:  &fakeProvider{err: errors.New("gateway timeout")},
			Forwarder: &fakeForwarder{},
		})

		rec := callWebhook(t, map[string]interface{}{
			"type": "payment",
			"data": map[string]string{"id": "123456"},
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Forward Failure Is 500", func(t *testing.T) {
		payment_handler.SetReconciler(&payment_handler.Reconciler{
			Provider: &fakeProvider{record: &payment_handler.PaymentRecord{
				ID:       "123456",
				Status:   "approved",
				Metadata: map[string]interface{}{"order_id": "order-abc"},
			}},
			Forwarder: &fakeForwarder{err: errors.New("order API down")},
		})

		rec := callWebhook(t, map[string]interface{}{
			"type": "payment",
			"data": map[string]string{"id": "123456"},
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
