package apperrors

import (
	"errors"
	"fmt"
)

// The booking engine reports failures through a closed set of error types so
// handlers can map them to HTTP codes in one place and clients can tell a
// retryable seat conflict apart from a genuine failure.

// ValidationError reports malformed input rejected before any state change.
type ValidationError struct {
	Message      string
	InvalidSeats []string
}

func (e *ValidationError) Error() string {
	if len(e.InvalidSeats) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.InvalidSeats)
	}
	return e.Message
}

// NewValidation creates a ValidationError with a plain message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError reports that a requested seat is already claimed. The whole
// reservation has been rolled back; the client should refresh the seat map
// and retry.
type ConflictError struct {
	SeatID string
}

func (e *ConflictError) Error() string {
	if e.SeatID == "" {
		return "one or more seats have already been booked"
	}
	return fmt.Sprintf("seat %s has already been booked", e.SeatID)
}

// NotFoundError reports an unknown movie, screen, booking or ticket. No state
// was changed.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFound creates a NotFoundError for the named resource.
func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// PaymentGatewayError wraps a failure from the external payment gateway. The
// booking stays pending and the operation is retryable.
type PaymentGatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *PaymentGatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

func (e *PaymentGatewayError) Unwrap() error {
	return e.Err
}

// SignatureMismatchError reports an invalid payment proof. It is distinct
// from a definitive payment failure: the booking stays pending and a correct
// proof can still confirm it.
type SignatureMismatchError struct{}

func (e *SignatureMismatchError) Error() string {
	return "invalid payment signature"
}

// PersistenceError reports a storage-level failure that survived bounded
// retries, such as repeated ticket id collisions.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
