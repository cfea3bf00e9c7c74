package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// MercadoPagoProvider reads payments from the Mercado Pago REST API.
type MercadoPagoProvider struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

func NewMercadoPagoProvider() *MercadoPagoProvider {
	return &MercadoPagoProvider{
		BaseURL:     "https://api.mercadopago.com",
		AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *MercadoPagoProvider) FetchPayment(ctx context.Context, paymentID string) (*PaymentRecord, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", p.BaseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.AccessToken)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Mercado Pago API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Mercado Pago API returned status: %s", resp.Status)
	}

	// Payment ids arrive as JSON numbers
	var body struct {
		ID       json.Number            `json:"id"`
		Status   string                 `json:"status"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse Mercado Pago response: %v", err)
	}

	return &PaymentRecord{
		ID:       body.ID.String(),
		Status:   body.Status,
		Metadata: body.Metadata,
	}, nil
}
