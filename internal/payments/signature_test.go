package payments

import (
	"context"
	"testing"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-key-secret"

func TestSignDeterministic(t *testing.T) {
	first := Sign(testSecret, "order_123", "pay_456")
	second := Sign(testSecret, "order_123", "pay_456")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded sha256
}

func TestVerifySignature(t *testing.T) {
	sig := Sign(testSecret, "order_123", "pay_456")

	assert.True(t, VerifySignature(testSecret, "order_123", "pay_456", sig))

	// Any tampering with the proof or its inputs must fail.
	assert.False(t, VerifySignature(testSecret, "order_123", "pay_456", sig[:63]+"0"))
	assert.False(t, VerifySignature(testSecret, "order_999", "pay_456", sig))
	assert.False(t, VerifySignature(testSecret, "order_123", "pay_999", sig))
	assert.False(t, VerifySignature("other-secret", "order_123", "pay_456", sig))
	assert.False(t, VerifySignature(testSecret, "order_123", "pay_456", ""))
}

type fakeGateway struct {
	lastRequest OrderRequest
	order       *Order
	err         error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	g.lastRequest = req
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		KeyID:          "key_test",
		KeySecret:      testSecret,
		Currency:       "INR",
		MinAmountMinor: 100,
		MaxAmountMinor: 100000000,
	}
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	gateway := &fakeGateway{order: &Order{ID: "order_abc", Amount: 40050, Currency: "INR"}}
	svc := NewService(gateway, testPaymentConfig())

	resp, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		BookingID: uuid.New(),
		UserID:    uuid.New(),
		MovieID:   uuid.New(),
		Amount:    400.50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40050), gateway.lastRequest.AmountMinor)
	assert.Equal(t, "INR", gateway.lastRequest.Currency)
	assert.NotEmpty(t, gateway.lastRequest.Receipt)
	assert.LessOrEqual(t, len(gateway.lastRequest.Receipt), 40)

	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, "key_test", resp.KeyID)
}

func TestCreateOrderAmountBounds(t *testing.T) {
	gateway := &fakeGateway{order: &Order{ID: "order_abc"}}
	svc := NewService(gateway, testPaymentConfig())

	tests := []struct {
		name   string
		amount float64
	}{
		{"zero", 0},
		{"negative", -10},
		{"below gateway minimum", 0.50},
		{"above gateway maximum", 2000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
				BookingID: uuid.New(),
				Amount:    tt.amount,
			})
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestVerifyRejectsBadProof(t *testing.T) {
	svc := NewService(&fakeGateway{}, testPaymentConfig())

	good := Sign(testSecret, "order_123", "pay_456")
	assert.NoError(t, svc.Verify("order_123", "pay_456", good))

	var mismatch *apperrors.SignatureMismatchError
	assert.ErrorAs(t, svc.Verify("order_123", "pay_456", "deadbeef"), &mismatch)
	assert.ErrorAs(t, svc.Verify("", "pay_456", good), &mismatch)
	assert.ErrorAs(t, svc.Verify("order_123", "", good), &mismatch)
	assert.ErrorAs(t, svc.Verify("order_123", "pay_456", ""), &mismatch)
}
