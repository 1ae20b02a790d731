package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Booking is one reservation attempt: the seats, the server-computed amount,
// and the lifecycle state. TotalAmount is recomputed from the seat catalog
// at reservation time and never changes afterwards.
type Booking struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	MovieID          uuid.UUID      `gorm:"type:uuid;index;not null" json:"movie_id"`
	ScreenID         uuid.UUID      `gorm:"type:uuid;not null" json:"screen_id"`
	Seats            pq.StringArray `gorm:"type:text[];not null" json:"seats"`
	TotalAmount      float64        `gorm:"not null" json:"total_amount"`
	Status           Status         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentStatus    PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	PaymentReference string         `json:"payment_reference,omitempty"`
	TicketID         string         `json:"ticket_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks whether the booking can still move.
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsConfirmed checks whether payment went through.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// SeatClaim makes one seat unavailable to other bookings for a movie's
// showing. The unique index on (movie_id, seat_id) is what actually prevents
// double booking; application checks are advisory.
type SeatClaim struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_seat_claims_movie_seat" json:"movie_id"`
	ScreenID  uuid.UUID `gorm:"type:uuid;not null" json:"screen_id"`
	SeatID    string    `gorm:"size:8;not null;uniqueIndex:idx_seat_claims_movie_seat" json:"seat_id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for SeatClaim
func (SeatClaim) TableName() string {
	return "seat_claims"
}

// BookingStats summarizes confirmed bookings for the admin dashboard.
type BookingStats struct {
	TotalConfirmed int64   `json:"total_confirmed"`
	TodayConfirmed int64   `json:"today_confirmed"`
	TotalRevenue   float64 `json:"total_revenue"`
}
