package bookings

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"theatre/internal/movies"
	"theatre/internal/notifications"
	"theatre/internal/payments"
	"theatre/internal/screens"
	"theatre/internal/shared/apperrors"
	"theatre/internal/tickets"
	"theatre/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovieCatalog resolves the movie (with its screen) a booking targets.
type MovieCatalog interface {
	GetByIDWithScreen(ctx context.Context, id uuid.UUID) (*movies.Movie, error)
}

// SeatCatalog validates seat selections and prices them, and owns the cached
// seat-map snapshots this package invalidates after claim-affecting writes.
type SeatCatalog interface {
	PriceSeats(screen *screens.Screen, basePrice float64, seatIDs []string) (float64, error)
	InvalidateSeatMap(ctx context.Context, movieID uuid.UUID)
}

// PaymentProvider opens gateway orders and verifies payment proofs.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, in payments.CreateOrderInput) (*payments.OrderResponse, error)
	Verify(orderID, paymentID, signature string) error
}

// TicketIssuer issues and fetches tickets for confirmed bookings.
type TicketIssuer interface {
	IssueTx(tx *gorm.DB, in tickets.IssueInput) (*tickets.Ticket, error)
	GetForBooking(ctx context.Context, bookingID uuid.UUID) (*tickets.Ticket, error)
}

// Service interface defines the contract for booking lifecycle operations
type Service interface {
	Reserve(ctx context.Context, userID uuid.UUID, req ReservationRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	Cancel(ctx context.Context, userID, bookingID uuid.UUID) error
	CreatePaymentOrder(ctx context.Context, userID, bookingID uuid.UUID) (*payments.OrderResponse, error)
	VerifyPayment(ctx context.Context, userID, bookingID uuid.UUID, req VerifyPaymentRequest) (*ConfirmationResponse, error)
	GetTicket(ctx context.Context, userID, bookingID uuid.UUID) (*tickets.Ticket, error)
	Stats(ctx context.Context) (*BookingStats, error)
}

type service struct {
	repo      Repository
	catalog   MovieCatalog
	seats     SeatCatalog
	payments  PaymentProvider
	tickets   TicketIssuer
	publisher notifications.Producer
	log       *logger.Logger
}

// NewService creates a new booking service instance
func NewService(
	repo Repository,
	catalog MovieCatalog,
	seats SeatCatalog,
	paymentSvc PaymentProvider,
	ticketSvc TicketIssuer,
	publisher notifications.Producer,
) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		seats:     seats,
		payments:  paymentSvc,
		tickets:   ticketSvc,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

func (s *service) Reserve(ctx context.Context, userID uuid.UUID, req ReservationRequest) (*BookingResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, apperrors.NewValidation("movie_id must be a valid uuid")
	}

	seatIDs := normalizeSeats(req.Seats)
	if len(seatIDs) == 0 {
		return nil, apperrors.NewValidation("at least one seat must be selected")
	}

	movie, err := s.catalog.GetByIDWithScreen(ctx, movieID)
	if err != nil {
		return nil, err
	}

	total, err := s.seats.PriceSeats(movie.Screen, movie.Price, seatIDs)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:        userID,
		MovieID:       movie.ID,
		ScreenID:      movie.ScreenID,
		Seats:         seatIDs,
		TotalAmount:   total,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.Reserve(ctx, booking); err != nil {
		return nil, err
	}

	s.seats.InvalidateSeatMap(ctx, movie.ID)

	s.log.Info("booking reserved",
		slog.String("booking_id", booking.ID.String()),
		slog.String("movie_id", movie.ID.String()),
		slog.Int("seats", len(seatIDs)),
		slog.Float64("total_amount", total))

	resp := toBookingResponse(booking, nil)
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking, s.ticketFor(ctx, booking))
	return &resp, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(list))
	for i := range list {
		responses = append(responses, toBookingResponse(&list[i], s.ticketFor(ctx, &list[i])))
	}
	return responses, nil
}

// ticketFor attaches a confirmed booking's ticket, best effort.
func (s *service) ticketFor(ctx context.Context, booking *Booking) *tickets.Ticket {
	if !booking.IsConfirmed() {
		return nil
	}
	ticket, err := s.tickets.GetForBooking(ctx, booking.ID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.log.Warn("ticket lookup failed",
				slog.String("booking_id", booking.ID.String()),
				slog.Any("error", err))
		}
		return nil
	}
	return ticket
}

func (s *service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) error {
	cancelled, err := s.repo.CancelPending(ctx, bookingID, userID)
	if err != nil {
		return err
	}

	s.seats.InvalidateSeatMap(ctx, cancelled.MovieID)
	s.publish(ctx, notifications.EventBookingCancelled, cancelled, "")

	s.log.Info("booking cancelled",
		slog.String("booking_id", bookingID.String()),
		slog.Int("seats_released", len(cancelled.Seats)))
	return nil
}

func (s *service) CreatePaymentOrder(ctx context.Context, userID, bookingID uuid.UUID) (*payments.OrderResponse, error) {
	booking, err := s.repo.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !booking.IsPending() {
		return nil, apperrors.NewNotFound("booking")
	}

	return s.payments.CreateOrder(ctx, payments.CreateOrderInput{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		MovieID:   booking.MovieID,
		Amount:    booking.TotalAmount,
	})
}

func (s *service) VerifyPayment(ctx context.Context, userID, bookingID uuid.UUID, req VerifyPaymentRequest) (*ConfirmationResponse, error) {
	booking, err := s.repo.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	// The proof must hold regardless of booking state; a replay with a
	// tampered signature never succeeds just because the booking is done.
	if err := s.payments.Verify(req.OrderID, req.PaymentID, req.Signature); err != nil {
		return nil, err
	}

	// Re-verifying a confirmed booking returns the stored outcome.
	if booking.IsConfirmed() {
		ticket, err := s.tickets.GetForBooking(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		return confirmationResponse(booking, ticket), nil
	}

	if !booking.IsPending() {
		return nil, apperrors.NewNotFound("booking")
	}

	movie, err := s.catalog.GetByIDWithScreen(ctx, booking.MovieID)
	if err != nil {
		return nil, err
	}

	var issued *tickets.Ticket
	confirmed, err := s.repo.Confirm(ctx, booking.ID, req.PaymentID, func(tx *gorm.DB, b *Booking) (string, error) {
		ticket, err := s.tickets.IssueTx(tx, tickets.IssueInput{
			BookingID:  b.ID,
			MovieTitle: movie.Title,
			ScreenName: screenName(movie),
			Seats:      b.Seats,
			Amount:     b.TotalAmount,
			ShowTime:   movie.ShowTime,
		})
		if err != nil {
			return "", err
		}
		issued = ticket
		return ticket.TicketID, nil
	})
	if err != nil {
		return nil, err
	}

	// A concurrent verifier may have confirmed first; issue was then never
	// called and the stored ticket is the one to return.
	if issued == nil {
		issued, err = s.tickets.GetForBooking(ctx, confirmed.ID)
		if err != nil {
			return nil, err
		}
	}

	s.publish(ctx, notifications.EventBookingConfirmed, confirmed, issued.TicketID)

	s.log.Info("booking confirmed",
		slog.String("booking_id", confirmed.ID.String()),
		slog.String("ticket_id", issued.TicketID),
		slog.String("payment_id", req.PaymentID))

	return confirmationResponse(confirmed, issued), nil
}

func (s *service) GetTicket(ctx context.Context, userID, bookingID uuid.UUID) (*tickets.Ticket, error) {
	booking, err := s.repo.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !booking.IsConfirmed() {
		return nil, apperrors.NewNotFound("ticket")
	}
	return s.tickets.GetForBooking(ctx, booking.ID)
}

func (s *service) Stats(ctx context.Context) (*BookingStats, error) {
	return s.repo.Stats(ctx)
}

// publish sends a lifecycle event downstream. Failures are logged, never
// surfaced: the booking outcome is already durable.
func (s *service) publish(ctx context.Context, eventType notifications.EventType, booking *Booking, ticketID string) {
	event := &notifications.BookingEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		MovieID:    booking.MovieID,
		TicketID:   ticketID,
		Seats:      booking.Seats,
		Amount:     booking.TotalAmount,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.Warn("booking event publish failed",
			slog.String("booking_id", booking.ID.String()),
			slog.String("event_type", string(eventType)),
			slog.Any("error", err))
	}
}

func confirmationResponse(booking *Booking, ticket *tickets.Ticket) *ConfirmationResponse {
	resp := toBookingResponse(booking, ticket)
	return &ConfirmationResponse{
		Booking: resp,
		Ticket:  *resp.Ticket,
	}
}

func screenName(movie *movies.Movie) string {
	if movie.Screen != nil {
		return movie.Screen.Name
	}
	return ""
}

// normalizeSeats uppercases, trims and dedupes the requested seat ids while
// preserving request order.
func normalizeSeats(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
