package bookings

import (
	"time"

	"theatre/internal/tickets"
)

// ReservationRequest is the payload for creating a booking. The client never
// sends an amount; pricing is resolved server-side from the seat catalog.
type ReservationRequest struct {
	MovieID string   `json:"movie_id" binding:"required,uuid"`
	Seats   []string `json:"seats" binding:"required,min=1"`
}

// VerifyPaymentRequest carries the gateway's payment proof back to us.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// TicketView is the ticket slice embedded in booking responses.
type TicketView struct {
	TicketID string `json:"ticket_id"`
	QRCode   string `json:"qr_code"`
	Used     bool   `json:"used"`
}

// BookingResponse is the client-facing booking representation.
type BookingResponse struct {
	ID               string        `json:"id"`
	MovieID          string        `json:"movie_id"`
	ScreenID         string        `json:"screen_id"`
	Seats            []string      `json:"seats"`
	TotalAmount      float64       `json:"total_amount"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	Ticket           *TicketView   `json:"ticket,omitempty"`
}

// ConfirmationResponse is returned by payment verification: the confirmed
// booking plus its ticket.
type ConfirmationResponse struct {
	Booking BookingResponse `json:"booking"`
	Ticket  TicketView      `json:"ticket"`
}

func toBookingResponse(b *Booking, ticket *tickets.Ticket) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID.String(),
		MovieID:          b.MovieID.String(),
		ScreenID:         b.ScreenID.String(),
		Seats:            b.Seats,
		TotalAmount:      b.TotalAmount,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentReference: b.PaymentReference,
		CreatedAt:        b.CreatedAt,
	}
	if ticket != nil {
		resp.Ticket = &TicketView{
			TicketID: ticket.TicketID,
			QRCode:   ticket.QRCode,
			Used:     ticket.Used,
		}
	}
	return resp
}
