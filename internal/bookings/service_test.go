package bookings

import (
	"context"
	"testing"
	"time"

	"theatre/internal/movies"
	"theatre/internal/notifications"
	"theatre/internal/payments"
	"theatre/internal/screens"
	"theatre/internal/shared/apperrors"
	"theatre/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const fakeSecret = "fake-key-secret"

// fakeRepository keeps bookings and seat claims in memory with the same
// all-or-nothing semantics the SQL implementation gets from its unique index.
type fakeRepository struct {
	bookings map[uuid.UUID]*Booking
	claims   map[string]uuid.UUID // movieID|seatID -> bookingID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookings: make(map[uuid.UUID]*Booking),
		claims:   make(map[string]uuid.UUID),
	}
}

func claimKey(movieID uuid.UUID, seatID string) string {
	return movieID.String() + "|" + seatID
}

func (r *fakeRepository) Reserve(ctx context.Context, booking *Booking) error {
	for _, seatID := range booking.Seats {
		if _, taken := r.claims[claimKey(booking.MovieID, seatID)]; taken {
			return &apperrors.ConflictError{SeatID: seatID}
		}
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now().UTC()
	r.bookings[booking.ID] = booking
	for _, seatID := range booking.Seats {
		r.claims[claimKey(booking.MovieID, seatID)] = booking.ID
	}
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFound("booking")
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok || booking.UserID != userID {
		return nil, apperrors.NewNotFound("booking")
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var list []Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			list = append(list, *booking)
		}
	}
	return list, nil
}

func (r *fakeRepository) CancelPending(ctx context.Context, id, userID uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok || booking.UserID != userID || !booking.Status.CanTransitionTo(StatusCancelled) {
		return nil, apperrors.NewNotFound("booking")
	}

	for _, seatID := range booking.Seats {
		delete(r.claims, claimKey(booking.MovieID, seatID))
	}
	delete(r.bookings, id)

	cancelled := *booking
	cancelled.Status = StatusCancelled
	return &cancelled, nil
}

func (r *fakeRepository) Confirm(ctx context.Context, id uuid.UUID, paymentRef string, issue TicketIssueFunc) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFound("booking")
	}
	if booking.Status == StatusConfirmed {
		copied := *booking
		return &copied, nil
	}
	if !booking.Status.CanTransitionTo(StatusConfirmed) {
		return nil, apperrors.NewNotFound("booking")
	}

	ticketID, err := issue(nil, booking)
	if err != nil {
		return nil, err
	}

	booking.Status = StatusConfirmed
	booking.PaymentStatus = PaymentCompleted
	booking.PaymentReference = paymentRef
	booking.TicketID = ticketID
	copied := *booking
	return &copied, nil
}

func (r *fakeRepository) ClaimedSeatIDs(ctx context.Context, movieID uuid.UUID) ([]string, error) {
	var seats []string
	for key := range r.claims {
		prefix := movieID.String() + "|"
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			seats = append(seats, key[len(prefix):])
		}
	}
	return seats, nil
}

func (r *fakeRepository) Stats(ctx context.Context) (*BookingStats, error) {
	stats := &BookingStats{}
	for _, booking := range r.bookings {
		if booking.Status == StatusConfirmed {
			stats.TotalConfirmed++
			stats.TotalRevenue += booking.TotalAmount
		}
	}
	return stats, nil
}

type fakeMovieCatalog struct {
	movies map[uuid.UUID]*movies.Movie
}

func (c *fakeMovieCatalog) GetByIDWithScreen(ctx context.Context, id uuid.UUID) (*movies.Movie, error) {
	movie, ok := c.movies[id]
	if !ok {
		return nil, apperrors.NewNotFound("movie")
	}
	return movie, nil
}

// fakeSeatCatalog prices from a fixed seat table.
type fakeSeatCatalog struct {
	modifiers     map[string]float64
	invalidations int
}

func (c *fakeSeatCatalog) PriceSeats(screen *screens.Screen, basePrice float64, seatIDs []string) (float64, error) {
	var total float64
	var invalid []string
	for _, id := range seatIDs {
		modifier, ok := c.modifiers[id]
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		total += basePrice + modifier
	}
	if len(invalid) > 0 {
		return 0, &apperrors.ValidationError{Message: "invalid seat selection for this screen", InvalidSeats: invalid}
	}
	return total, nil
}

func (c *fakeSeatCatalog) InvalidateSeatMap(ctx context.Context, movieID uuid.UUID) {
	c.invalidations++
}

type fakePaymentProvider struct {
	orders int
}

func (p *fakePaymentProvider) CreateOrder(ctx context.Context, in payments.CreateOrderInput) (*payments.OrderResponse, error) {
	if in.Amount <= 0 {
		return nil, apperrors.NewValidation("booking amount must be positive")
	}
	p.orders++
	return &payments.OrderResponse{
		OrderID:  "order_test",
		Amount:   int64(in.Amount * 100),
		Currency: "INR",
		KeyID:    "key_test",
	}, nil
}

func (p *fakePaymentProvider) Verify(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || !payments.VerifySignature(fakeSecret, orderID, paymentID, signature) {
		return &apperrors.SignatureMismatchError{}
	}
	return nil
}

type fakeTicketIssuer struct {
	byBooking map[uuid.UUID]*tickets.Ticket
	issued    int
}

func newFakeTicketIssuer() *fakeTicketIssuer {
	return &fakeTicketIssuer{byBooking: make(map[uuid.UUID]*tickets.Ticket)}
}

func (i *fakeTicketIssuer) IssueTx(tx *gorm.DB, in tickets.IssueInput) (*tickets.Ticket, error) {
	if existing, ok := i.byBooking[in.BookingID]; ok {
		return existing, nil
	}
	i.issued++
	ticket := &tickets.Ticket{
		BookingID:  in.BookingID,
		TicketID:   tickets.NewTicketID(in.BookingID, time.Now()),
		QRCode:     "data:image/png;base64,fake",
		MovieTitle: in.MovieTitle,
		ScreenName: in.ScreenName,
		Seats:      in.Seats,
		Amount:     in.Amount,
		ShowTime:   in.ShowTime,
	}
	i.byBooking[in.BookingID] = ticket
	return ticket, nil
}

func (i *fakeTicketIssuer) GetForBooking(ctx context.Context, bookingID uuid.UUID) (*tickets.Ticket, error) {
	ticket, ok := i.byBooking[bookingID]
	if !ok {
		return nil, apperrors.NewNotFound("ticket")
	}
	return ticket, nil
}

type fakePublisher struct {
	events []*notifications.BookingEvent
}

func (p *fakePublisher) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type serviceFixture struct {
	svc       Service
	repo      *fakeRepository
	seats     *fakeSeatCatalog
	gateway   *fakePaymentProvider
	issuer    *fakeTicketIssuer
	publisher *fakePublisher
	movieID   uuid.UUID
	userID    uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	movieID := uuid.New()
	screenID := uuid.New()
	movie := &movies.Movie{
		ID:       movieID,
		Title:    "Interstellar",
		ScreenID: screenID,
		Price:    200,
		ShowTime: time.Now().Add(24 * time.Hour),
		Screen:   &screens.Screen{ID: screenID, Name: "Screen One", Code: "screen1"},
	}

	repo := newFakeRepository()
	seatCatalog := &fakeSeatCatalog{modifiers: map[string]float64{
		"A01": 0, "A02": 0, "A03": 0, "B01": -2,
	}}
	gateway := &fakePaymentProvider{}
	issuer := newFakeTicketIssuer()
	publisher := &fakePublisher{}

	svc := NewService(repo,
		&fakeMovieCatalog{movies: map[uuid.UUID]*movies.Movie{movieID: movie}},
		seatCatalog, gateway, issuer, publisher)

	return &serviceFixture{
		svc:       svc,
		repo:      repo,
		seats:     seatCatalog,
		gateway:   gateway,
		issuer:    issuer,
		publisher: publisher,
		movieID:   movieID,
		userID:    uuid.New(),
	}
}

func (f *serviceFixture) reserve(t *testing.T, seats ...string) *BookingResponse {
	t.Helper()
	resp, err := f.svc.Reserve(context.Background(), f.userID, ReservationRequest{
		MovieID: f.movieID.String(),
		Seats:   seats,
	})
	require.NoError(t, err)
	return resp
}

func (f *serviceFixture) confirm(t *testing.T, bookingID string) *ConfirmationResponse {
	t.Helper()
	id := uuid.MustParse(bookingID)
	signature := payments.Sign(fakeSecret, "order_test", "pay_001")
	resp, err := f.svc.VerifyPayment(context.Background(), f.userID, id, VerifyPaymentRequest{
		OrderID:   "order_test",
		PaymentID: "pay_001",
		Signature: signature,
	})
	require.NoError(t, err)
	return resp
}

func TestReserveComputesAmountServerSide(t *testing.T) {
	f := newServiceFixture(t)

	resp := f.reserve(t, " a01 ", "A02", "a01")

	assert.Equal(t, []string{"A01", "A02"}, []string(resp.Seats))
	assert.Equal(t, 400.0, resp.TotalAmount)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, PaymentPending, resp.PaymentStatus)
	assert.Equal(t, 1, f.seats.invalidations)
}

func TestReserveRejectsEmptySelection(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Reserve(context.Background(), f.userID, ReservationRequest{
		MovieID: f.movieID.String(),
		Seats:   []string{" ", ""},
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestReserveRejectsUnknownSeats(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Reserve(context.Background(), f.userID, ReservationRequest{
		MovieID: f.movieID.String(),
		Seats:   []string{"A01", "Z99"},
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Z99"}, validationErr.InvalidSeats)
	assert.Empty(t, f.repo.bookings)
}

func TestOverlappingReservationsConflict(t *testing.T) {
	f := newServiceFixture(t)

	f.reserve(t, "A01", "A02")

	_, err := f.svc.Reserve(context.Background(), uuid.New(), ReservationRequest{
		MovieID: f.movieID.String(),
		Seats:   []string{"A02", "A03"},
	})

	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "A02", conflict.SeatID)

	// The losing reservation claimed nothing, so A03 stays free.
	claimed, err := f.repo.ClaimedSeatIDs(context.Background(), f.movieID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A01", "A02"}, claimed)
}

func TestVerifyPaymentConfirmsAndIssuesTicket(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01", "A02")
	confirmation := f.confirm(t, booking.ID)

	assert.Equal(t, StatusConfirmed, confirmation.Booking.Status)
	assert.Equal(t, PaymentCompleted, confirmation.Booking.PaymentStatus)
	assert.Equal(t, "pay_001", confirmation.Booking.PaymentReference)
	assert.NotEmpty(t, confirmation.Ticket.TicketID)
	assert.Equal(t, 1, f.issuer.issued)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventBookingConfirmed, f.publisher.events[0].Type)
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01")
	first := f.confirm(t, booking.ID)
	second := f.confirm(t, booking.ID)

	assert.Equal(t, first.Ticket.TicketID, second.Ticket.TicketID)
	assert.Equal(t, 1, f.issuer.issued, "re-verification must not issue a second ticket")
}

func TestVerifyPaymentRejectsTamperedSignature(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01")

	_, err := f.svc.VerifyPayment(context.Background(), f.userID, uuid.MustParse(booking.ID), VerifyPaymentRequest{
		OrderID:   "order_test",
		PaymentID: "pay_001",
		Signature: "deadbeef",
	})

	var mismatch *apperrors.SignatureMismatchError
	require.ErrorAs(t, err, &mismatch)

	// The booking survives the bad proof and stays payable.
	stored, err := f.repo.GetByID(context.Background(), uuid.MustParse(booking.ID))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, 0, f.issuer.issued)
}

func TestCancelReleasesSeats(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "B01")
	require.NoError(t, f.svc.Cancel(context.Background(), f.userID, uuid.MustParse(booking.ID)))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventBookingCancelled, f.publisher.events[0].Type)

	// The seat is bookable again, by anyone.
	other := uuid.New()
	resp, err := f.svc.Reserve(context.Background(), other, ReservationRequest{
		MovieID: f.movieID.String(),
		Seats:   []string{"B01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 198.0, resp.TotalAmount)
}

func TestCancelConfirmedBookingFails(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01")
	f.confirm(t, booking.ID)

	err := f.svc.Cancel(context.Background(), f.userID, uuid.MustParse(booking.ID))
	assert.True(t, apperrors.IsNotFound(err))

	// Confirmed claims are permanent.
	claimed, repoErr := f.repo.ClaimedSeatIDs(context.Background(), f.movieID)
	require.NoError(t, repoErr)
	assert.Contains(t, claimed, "A01")
}

func TestCancelForeignBookingFails(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01")

	err := f.svc.Cancel(context.Background(), uuid.New(), uuid.MustParse(booking.ID))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreatePaymentOrderRequiresPendingBooking(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01", "A02")

	order, err := f.svc.CreatePaymentOrder(context.Background(), f.userID, uuid.MustParse(booking.ID))
	require.NoError(t, err)
	assert.Equal(t, "order_test", order.OrderID)
	assert.Equal(t, int64(40000), order.Amount)

	f.confirm(t, booking.ID)

	_, err = f.svc.CreatePaymentOrder(context.Background(), f.userID, uuid.MustParse(booking.ID))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetTicketRequiresConfirmedBooking(t *testing.T) {
	f := newServiceFixture(t)

	booking := f.reserve(t, "A01")

	_, err := f.svc.GetTicket(context.Background(), f.userID, uuid.MustParse(booking.ID))
	assert.True(t, apperrors.IsNotFound(err))

	confirmation := f.confirm(t, booking.ID)

	ticket, err := f.svc.GetTicket(context.Background(), f.userID, uuid.MustParse(booking.ID))
	require.NoError(t, err)
	assert.Equal(t, confirmation.Ticket.TicketID, ticket.TicketID)
}

func TestStatsCountConfirmedOnly(t *testing.T) {
	f := newServiceFixture(t)

	first := f.reserve(t, "A01")
	f.reserve(t, "A02")
	f.confirm(t, first.ID)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalConfirmed)
	assert.Equal(t, 200.0, stats.TotalRevenue)
}
