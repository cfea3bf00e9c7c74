package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrProviderFetch means the gateway read failed; the provider will
	// redeliver the webhook.
	ErrProviderFetch = errors.New("failed to fetch payment from provider")
	// ErrMissingOrderRef means the payment carries no order id, so the
	// notification cannot be correlated to any order. Redelivery will not
	// fix it.
	ErrMissingOrderRef = errors.New("payment metadata has no order reference")
	// ErrForwardFailed means the order system rejected the update.
	ErrForwardFailed = errors.New("failed to forward order status update")
)

// OrderStatusUpdate is what gets forwarded to the order system.
type OrderStatusUpdate struct {
	OrderID        string                 `json:"-"`
	PaymentID      string                 `json:"paymentId"`
	PaymentStatus  string                 `json:"paymentStatus"`
	InternalStatus string                 `json:"status"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// OrderForwarder submits the update to the system of record.
type OrderForwarder interface {
	ForwardPaymentUpdate(ctx context.Context, update OrderStatusUpdate) error
}

// Reconciler translates provider notifications into order status updates.
// It holds no state: each webhook delivery is handled independently and
// idempotency of repeated updates is the order system's responsibility.
type Reconciler struct {
	Provider  PaymentProvider
	Forwarder OrderForwarder
}

// MapPaymentStatus translates a provider payment status to the internal
// order status.
func MapPaymentStatus(providerStatus string) string {
	switch providerStatus {
	case "approved":
		return "success"
	case "rejected":
		return "failed"
	default:
		return "pending"
	}
}

// HandleNotification fetches the payment, extracts the order reference and
// forwards the mapped status to the order system.
func (r *Reconciler) HandleNotification(ctx context.Context, paymentID string) (*OrderStatusUpdate, error) {
	payment, err := r.Provider.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFetch, err)
	}

	orderID, _ := payment.Metadata["order_id"].(string)
	if orderID == "" {
		return nil, ErrMissingOrderRef
	}

	update := OrderStatusUpdate{
		OrderID:        orderID,
		PaymentID:      payment.ID,
		PaymentStatus:  payment.Status,
		InternalStatus: MapPaymentStatus(payment.Status),
		Metadata:       payment.Metadata,
	}

	if err := r.Forwarder.ForwardPaymentUpdate(ctx, update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForwardFailed, err)
	}

	return &update, nil
}

// HTTPOrderForwarder posts updates to the external order API.
type HTTPOrderForwarder struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPOrderForwarder(baseURL string) *HTTPOrderForwarder {
	return &HTTPOrderForwarder{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPOrderForwarder) ForwardPaymentUpdate(ctx context.Context, update OrderStatusUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %v", err)
	}

	url := fmt.Sprintf("%s/orders/%s/payment-webhook", f.BaseURL, update.OrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call order API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order API returned status: %s", resp.Status)
	}

	return nil
}
