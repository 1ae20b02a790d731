package tickets

import (
	"context"
	"errors"
	"time"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxIDAttempts bounds regeneration when a synthesized ticket id collides.
const maxIDAttempts = 3

// IssueInput carries everything the verification payload needs.
type IssueInput struct {
	BookingID  uuid.UUID
	MovieTitle string
	ScreenName string
	Seats      []string
	Amount     float64
	ShowTime   time.Time
}

// Service interface defines the contract for ticket issuance
type Service interface {
	// IssueTx issues the booking's ticket inside the caller's transaction.
	// Idempotent: an existing ticket is returned unchanged.
	IssueTx(tx *gorm.DB, in IssueInput) (*Ticket, error)

	// GetForBooking fetches a booking's ticket, NotFound when none exists.
	GetForBooking(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ticket service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) IssueTx(tx *gorm.DB, in IssueInput) (*Ticket, error) {
	// Lookup-before-create keeps issuance idempotent.
	existing, err := s.repo.GetByBookingIDTx(tx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		ticketID := NewTicketID(in.BookingID, time.Now())
		payload := BuildPayload(in.BookingID, ticketID, in.MovieTitle, in.ScreenName, in.Seats, in.ShowTime, in.Amount)

		qr, err := EncodeQR(payload)
		if err != nil {
			return nil, &apperrors.PersistenceError{Op: "ticket encoding", Err: err}
		}

		ticket := &Ticket{
			BookingID:  in.BookingID,
			TicketID:   ticketID,
			QRCode:     qr,
			MovieTitle: in.MovieTitle,
			ScreenName: in.ScreenName,
			Seats:      in.Seats,
			Amount:     in.Amount,
			ShowTime:   in.ShowTime,
		}

		err = s.repo.CreateTx(tx, ticket)
		if err == nil {
			return ticket, nil
		}

		if !database.IsUniqueViolation(err) {
			return nil, err
		}

		// A booking_id collision means another writer already issued the
		// ticket; return theirs. A ticket_id collision gets a fresh id.
		won, lookupErr := s.repo.GetByBookingIDTx(tx, in.BookingID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if won != nil {
			return won, nil
		}

		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("ticket id generation exhausted")
	}
	return nil, &apperrors.PersistenceError{Op: "ticket issuance", Err: lastErr}
}

func (s *service) GetForBooking(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.NewNotFound("ticket")
	}
	return ticket, nil
}
