package tickets

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePixels = 200

// NewTicketID synthesizes a ticket id from the booking id tail and the
// current time in base36. Globally unique in practice; the unique index plus
// bounded regeneration covers the rest.
func NewTicketID(bookingID uuid.UUID, now time.Time) string {
	compact := strings.ReplaceAll(bookingID.String(), "-", "")
	tail := strings.ToUpper(compact[len(compact)-8:])
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("TKT-%s-%s", tail, stamp)
}

// Payload is the verification payload encoded into the scannable code.
type Payload struct {
	BookingID string  `json:"booking_id"`
	TicketID  string  `json:"ticket_id"`
	Movie     string  `json:"movie"`
	Screen    string  `json:"screen"`
	Seats     string  `json:"seats"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
}

// EncodeQR renders the payload as a PNG QR code data URL.
func EncodeQR(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ticket payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, qrSizePixels)
	if err != nil {
		return "", fmt.Errorf("failed to encode ticket qr: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// BuildPayload assembles the payload for a booking's ticket.
func BuildPayload(bookingID uuid.UUID, ticketID, movieTitle, screenName string, seats []string, showTime time.Time, amount float64) Payload {
	return Payload{
		BookingID: bookingID.String(),
		TicketID:  ticketID,
		Movie:     movieTitle,
		Screen:    screenName,
		Seats:     strings.Join(seats, ", "),
		Date:      showTime.UTC().Format(time.RFC3339),
		Amount:    amount,
	}
}
