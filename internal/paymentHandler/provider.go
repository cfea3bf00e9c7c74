package handler

import "context"

// PaymentRecord is the provider-neutral view of a payment.
type PaymentRecord struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Metadata map[string]interface{} `json:"metadata"`
}

// PaymentProvider fetches the authoritative payment state from the
// gateway. The reconciler only sees this interface, so swapping gateways
// does not touch the reconciliation flow.
type PaymentProvider interface {
	FetchPayment(ctx context.Context, paymentID string) (*PaymentRecord, error)
}
