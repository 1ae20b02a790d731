package notifications

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a booking lifecycle transition worth telling downstream
// consumers about.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is the message published to the notification topic. Rendering
// and delivery (email, push) happen downstream.
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	MovieID    uuid.UUID `json:"movie_id"`
	TicketID   string    `json:"ticket_id,omitempty"`
	Seats      []string  `json:"seats"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
