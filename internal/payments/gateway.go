package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/config"
)

// Order is the gateway's handle for a payment to be collected out-of-band.
// Amount is in minor currency units.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderRequest describes the order to create.
type OrderRequest struct {
	AmountMinor int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// Gateway creates payment orders with the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type httpGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewGateway returns a Gateway talking to a Razorpay-style orders API with
// basic-auth key credentials.
func NewGateway(cfg config.PaymentConfig) Gateway {
	return &httpGateway{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (g *httpGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &apperrors.PaymentGatewayError{Message: "failed to encode order request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, &apperrors.PaymentGatewayError{Message: "failed to build order request", Err: err}
	}
	httpReq.SetBasicAuth(g.keyID, g.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &apperrors.PaymentGatewayError{Message: "order request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorDetail(resp.Body)
		return nil, &apperrors.PaymentGatewayError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("order creation rejected: %s", detail),
		}
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, &apperrors.PaymentGatewayError{Message: "failed to decode order response", Err: err}
	}
	if order.ID == "" {
		return nil, &apperrors.PaymentGatewayError{Message: "gateway returned an order without an id"}
	}

	return &order, nil
}

// readErrorDetail extracts the provider's error description, falling back to
// the raw body.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}

	var envelope struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Description != "" {
		return envelope.Error.Description
	}
	return string(raw)
}
