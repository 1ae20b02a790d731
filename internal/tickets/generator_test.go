package tickets

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketIDFormat(t *testing.T) {
	bookingID := uuid.MustParse("0b26d2a1-9f3e-4c1d-8d5a-1234567890ab")
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	ticketID := NewTicketID(bookingID, now)

	parts := strings.Split(ticketID, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "TKT", parts[0])
	assert.Equal(t, "567890AB", parts[1])
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
	assert.NotEmpty(t, parts[2])
}

func TestNewTicketIDVariesWithTime(t *testing.T) {
	bookingID := uuid.New()
	first := NewTicketID(bookingID, time.UnixMilli(1000))
	second := NewTicketID(bookingID, time.UnixMilli(2000))

	assert.NotEqual(t, first, second)
}

func TestBuildPayload(t *testing.T) {
	bookingID := uuid.New()
	showTime := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	payload := BuildPayload(bookingID, "TKT-ABCD1234-XYZ", "Interstellar", "Screen One",
		[]string{"A01", "A02"}, showTime, 400)

	assert.Equal(t, bookingID.String(), payload.BookingID)
	assert.Equal(t, "A01, A02", payload.Seats)
	assert.Equal(t, "2026-03-14T18:30:00Z", payload.Date)
	assert.Equal(t, 400.0, payload.Amount)
}

func TestEncodeQRProducesDataURL(t *testing.T) {
	payload := BuildPayload(uuid.New(), "TKT-ABCD1234-XYZ", "Interstellar", "Screen One",
		[]string{"A01"}, time.Now(), 200)

	encoded, err := EncodeQR(payload)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(encoded, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}
