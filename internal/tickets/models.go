package tickets

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Ticket is the proof-of-entry artifact, exactly one per confirmed booking.
// Both indexes back that guarantee: ticket ids are globally unique and a
// booking can never hold two tickets.
type Ticket struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	TicketID   string         `gorm:"uniqueIndex;not null" json:"ticket_id"`
	QRCode     string         `gorm:"type:text;not null" json:"qr_code"`
	Used       bool           `gorm:"default:false" json:"used"`
	MovieTitle string         `gorm:"not null" json:"movie_title"`
	ScreenName string         `gorm:"not null" json:"screen_name"`
	Seats      pq.StringArray `gorm:"type:text[];not null" json:"seats"`
	Amount     float64        `gorm:"not null" json:"amount"`
	ShowTime   time.Time      `json:"show_time"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}
