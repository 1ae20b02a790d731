package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// The unique index on (movie_id, seat_id) is the last line of defense
	// against double booking; application-level checks only make errors nicer.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_seat_claims_movie_seat
		ON seat_claims (movie_id, seat_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability queries by movie
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_claims_movie_id
		ON seat_claims (movie_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for booking history queries
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
