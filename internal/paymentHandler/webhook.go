package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	config "baul-moda/config/database"

	"github.com/labstack/echo/v4"
)

var reconciler *Reconciler

// ProviderFromEnv picks the payment gateway. Mercado Pago is the default;
// PAYMENT_PROVIDER=midtrans selects the alternate gateway.
func ProviderFromEnv() PaymentProvider {
	if os.Getenv("PAYMENT_PROVIDER") == "midtrans" {
		return NewMidtransProvider()
	}
	return NewMercadoPagoProvider()
}

// Init wires the webhook against the configured gateway and the external
// order API.
func Init() {
	reconciler = &Reconciler{
		Provider:  ProviderFromEnv(),
		Forwarder: NewHTTPOrderForwarder(os.Getenv("API_BASE_URL")),
	}
}

// SetReconciler swaps the reconciler wiring, used by tests.
func SetReconciler(r *Reconciler) {
	reconciler = r
}

// MercadoPagoWebhook handles POST /api/mercadopago/webhook. Non-2xx makes
// the provider redeliver, so only transient failures return 500.
func MercadoPagoWebhook(c echo.Context) error {
	var req struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.Bind(&req); err != nil || req.Type == "" || req.Data.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid webhook payload"})
	}

	// Other event types are acknowledged, not errors
	if req.Type != "payment" {
		return c.JSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Event type %s ignored", req.Type),
		})
	}

	update, err := reconciler.HandleNotification(c.Request().Context(), req.Data.ID)
	if err != nil {
		if errors.Is(err, ErrMissingOrderRef) {
			logPaymentDelivery(req.Data.ID, "", "", "unmatched")
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Payment has no order reference",
				"error":   err.Error(),
			})
		}
		log.Printf("Reconciliation failed for payment %s: %v", req.Data.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Failed to process payment notification",
			"error":   err.Error(),
		})
	}

	logPaymentDelivery(update.PaymentID, update.OrderID, update.PaymentStatus, update.InternalStatus)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// logPaymentDelivery records the delivery for diagnostics. The log is
// never read back for control flow, so failures only warn.
func logPaymentDelivery(paymentID, orderID, paymentStatus, internalStatus string) {
	if config.Pool == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO payments_log (payment_id, order_id, payment_status, internal_status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := config.Pool.Exec(ctx, query, paymentID, orderID, paymentStatus, internalStatus); err != nil {
		log.Printf("Failed to log payment delivery: %v", err)
	}
}
