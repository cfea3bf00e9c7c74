package handler

import (
	"context"
	"fmt"
	"os"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransProvider is the alternate gateway. It maps Midtrans transaction
// statuses onto the same PaymentRecord shape the reconciler consumes.
type MidtransProvider struct {
	client coreapi.Client
}

func NewMidtransProvider() *MidtransProvider {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")

	client := coreapi.Client{}
	client.New(serverKey, midtrans.Sandbox)

	return &MidtransProvider{client: client}
}

// MapMidtransStatus translates a Midtrans transaction status to the
// provider-neutral payment status.
func MapMidtransStatus(transactionStatus string) string {
	switch transactionStatus {
	case "settlement", "capture":
		return "approved"
	case "deny", "cancel", "expire":
		return "rejected"
	default:
		return "pending"
	}
}

func (p *MidtransProvider) FetchPayment(ctx context.Context, paymentID string) (*PaymentRecord, error) {
	resp, err := p.client.CheckTransaction(paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check Midtrans transaction: %v", err)
	}

	return &PaymentRecord{
		ID:     resp.TransactionID,
		Status: MapMidtransStatus(resp.TransactionStatus),
		Metadata: map[string]interface{}{
			"order_id": resp.OrderID,
		},
	}, nil
}
