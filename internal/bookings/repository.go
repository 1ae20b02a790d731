package bookings

import (
	"context"
	"errors"
	"time"

	"theatre/internal/shared/apperrors"
	"theatre/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketIssueFunc issues the ticket for a booking inside the confirmation
// transaction and returns the printable ticket id.
type TicketIssueFunc func(tx *gorm.DB, booking *Booking) (string, error)

// Repository interface defines the contract for booking data operations
type Repository interface {
	// Reserve atomically persists the booking and claims every requested
	// seat. All-or-nothing: one claimed seat fails the whole reservation
	// with a ConflictError naming the colliding seat.
	Reserve(ctx context.Context, booking *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)

	// CancelPending deletes a pending booking and releases its seat claims
	// in one transaction. Non-pending bookings are reported as NotFound.
	CancelPending(ctx context.Context, id, userID uuid.UUID) (*Booking, error)

	// Confirm moves a pending booking to confirmed under a row lock,
	// running issue inside the same transaction so the status flip and the
	// ticket commit or roll back together. An already confirmed booking is
	// returned as-is without calling issue.
	Confirm(ctx context.Context, id uuid.UUID, paymentRef string, issue TicketIssueFunc) (*Booking, error)

	// ClaimedSeatIDs satisfies screens.ClaimSource.
	ClaimedSeatIDs(ctx context.Context, movieID uuid.UUID) ([]string, error)

	Stats(ctx context.Context) (*BookingStats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Reserve(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Advisory pre-check for a friendly error message. The unique index
		// on (movie_id, seat_id) is the real guard against the race.
		seat, err := firstClaimedSeat(tx, booking.MovieID, booking.Seats)
		if err != nil {
			return err
		}
		if seat != "" {
			return &apperrors.ConflictError{SeatID: seat}
		}

		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		claims := make([]SeatClaim, 0, len(booking.Seats))
		for _, seatID := range booking.Seats {
			claims = append(claims, SeatClaim{
				MovieID:   booking.MovieID,
				ScreenID:  booking.ScreenID,
				SeatID:    seatID,
				BookingID: booking.ID,
			})
		}
		return tx.Create(&claims).Error
	})
	if err == nil {
		return nil
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return conflict
	}

	if database.IsUniqueViolation(err) {
		// Lost the race after the pre-check. Re-query outside the aborted
		// transaction to name a colliding seat for the response.
		seat, lookupErr := firstClaimedSeat(r.db.WithContext(ctx), booking.MovieID, booking.Seats)
		if lookupErr != nil || seat == "" {
			return &apperrors.ConflictError{}
		}
		return &apperrors.ConflictError{SeatID: seat}
	}

	return &apperrors.PersistenceError{Op: "reserve booking", Err: err}
}

// firstClaimedSeat returns the first requested seat (in request order) that
// already has a claim for the movie, or "" when all are free.
func firstClaimedSeat(tx *gorm.DB, movieID uuid.UUID, seats []string) (string, error) {
	var claimed []string
	err := tx.Model(&SeatClaim{}).
		Where("movie_id = ? AND seat_id IN ?", movieID, []string(seats)).
		Pluck("seat_id", &claimed).Error
	if err != nil {
		return "", err
	}

	taken := make(map[string]bool, len(claimed))
	for _, id := range claimed {
		taken[id] = true
	}
	for _, id := range seats {
		if taken[id] {
			return id, nil
		}
	}
	return "", nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("booking")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("booking")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) CancelPending(ctx context.Context, id, userID uuid.UUID) (*Booking, error) {
	var cancelled Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("booking")
			}
			return err
		}

		// Confirmed and otherwise terminal bookings are not cancellable
		// through this path; they look like no pending booking exists.
		if !booking.Status.CanTransitionTo(StatusCancelled) {
			return apperrors.NewNotFound("booking")
		}

		if err := tx.Where("booking_id = ?", id).Delete(&SeatClaim{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Booking{}, "id = ?", id).Error; err != nil {
			return err
		}

		cancelled = booking
		cancelled.Status = StatusCancelled
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Op: "cancel booking", Err: err}
	}
	return &cancelled, nil
}

func (r *repository) Confirm(ctx context.Context, id uuid.UUID, paymentRef string, issue TicketIssueFunc) (*Booking, error) {
	var out Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("booking")
			}
			return err
		}

		// A concurrent verifier already won the row lock race; the stored
		// outcome stands.
		if booking.Status == StatusConfirmed {
			out = booking
			return nil
		}

		if !booking.Status.CanTransitionTo(StatusConfirmed) {
			return apperrors.NewNotFound("booking")
		}

		ticketID, err := issue(tx, &booking)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":            StatusConfirmed,
			"payment_status":    PaymentCompleted,
			"payment_reference": paymentRef,
			"ticket_id":         ticketID,
			"updated_at":        now,
		}
		if err := tx.Model(&Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		booking.Status = StatusConfirmed
		booking.PaymentStatus = PaymentCompleted
		booking.PaymentReference = paymentRef
		booking.TicketID = ticketID
		booking.UpdatedAt = now
		out = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) ClaimedSeatIDs(ctx context.Context, movieID uuid.UUID) ([]string, error) {
	var seats []string
	err := r.db.WithContext(ctx).
		Model(&SeatClaim{}).
		Where("movie_id = ?", movieID).
		Order("seat_id").
		Pluck("seat_id", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) Stats(ctx context.Context) (*BookingStats, error) {
	var stats BookingStats

	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusConfirmed).
		Count(&stats.TotalConfirmed).Error
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	err = r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ? AND created_at >= ?", StatusConfirmed, today).
		Count(&stats.TodayConfirmed).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusConfirmed).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
