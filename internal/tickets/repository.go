package tickets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
	GetByBookingIDTx(tx *gorm.DB, bookingID uuid.UUID) (*Ticket, error)
	CreateTx(tx *gorm.DB, ticket *Ticket) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByBookingIDTx(tx *gorm.DB, bookingID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := tx.Where("booking_id = ?", bookingID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// CreateTx inserts inside the caller's transaction, wrapped in a savepoint so
// a duplicate-key rejection does not poison the enclosing transaction.
func (r *repository) CreateTx(tx *gorm.DB, ticket *Ticket) error {
	return tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(ticket).Error
	})
}
