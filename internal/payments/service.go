package payments

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/config"

	"github.com/google/uuid"
)

// CreateOrderInput carries what the gateway needs to open an order for a
// booking. Amount is the server-computed total in major units; the client's
// figure is never consulted.
type CreateOrderInput struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	Amount    float64
}

// OrderResponse is returned to the client so it can drive the gateway's
// checkout out-of-band.
type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Service interface defines the contract for payment order creation and
// proof verification.
type Service interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResponse, error)
	Verify(orderID, paymentID, signature string) error
}

type service struct {
	gateway   Gateway
	keyID     string
	keySecret string
	currency  string
	minMinor  int64
	maxMinor  int64
}

// NewService creates a new payment service instance
func NewService(gateway Gateway, cfg config.PaymentConfig) Service {
	return &service{
		gateway:   gateway,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
		minMinor:  cfg.MinAmountMinor,
		maxMinor:  cfg.MaxAmountMinor,
	}
}

// CreateOrder validates the amount against the gateway's supported bounds
// and requests an order reference. Nothing is persisted here; a failed call
// leaves the booking untouched and retryable.
func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResponse, error) {
	if in.Amount <= 0 {
		return nil, apperrors.NewValidation("booking amount must be positive")
	}

	amountMinor := int64(math.Round(in.Amount * 100))
	if amountMinor < s.minMinor {
		return nil, apperrors.NewValidation(fmt.Sprintf("amount below gateway minimum of %d minor units", s.minMinor))
	}
	if amountMinor > s.maxMinor {
		return nil, apperrors.NewValidation(fmt.Sprintf("amount above gateway maximum of %d minor units", s.maxMinor))
	}

	order, err := s.gateway.CreateOrder(ctx, OrderRequest{
		AmountMinor: amountMinor,
		Currency:    s.currency,
		Receipt:     buildReceiptID(in.BookingID),
		Notes: map[string]string{
			"booking_id": in.BookingID.String(),
			"movie_id":   in.MovieID.String(),
			"user_id":    in.UserID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	return &OrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.keyID,
	}, nil
}

// Verify checks the integrity proof for a completed payment. Returns
// SignatureMismatchError on a bad proof.
func (s *service) Verify(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return &apperrors.SignatureMismatchError{}
	}
	if !VerifySignature(s.keySecret, orderID, paymentID, signature) {
		return &apperrors.SignatureMismatchError{}
	}
	return nil
}

// buildReceiptID derives a short receipt reference from the booking id and
// current time. Gateways cap receipt length at 40 characters.
func buildReceiptID(bookingID uuid.UUID) string {
	compact := strings.ReplaceAll(bookingID.String(), "-", "")
	tail := compact[len(compact)-8:]
	receipt := fmt.Sprintf("B%s%d", strings.ToUpper(tail), time.Now().Unix())
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}
	return receipt
}
