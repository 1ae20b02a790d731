package bookings

// Status is a booking's lifecycle state. pending is the only non-terminal
// state; transitions are validated centrally, never set free-form by callers.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal checks if the status permits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusFailed
}

// CanTransitionTo checks if the transition s -> next is allowed. Only
// pending moves anywhere: pending -> confirmed | cancelled | failed.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending || !next.IsValid() {
		return false
	}
	return next != StatusPending
}

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}
