package database

import (
	"gorm.io/gorm"
)

// Migrate auto-migrates the given models and applies the hand-written
// constraints the schema depends on.
func Migrate(db *gorm.DB, models ...interface{}) error {
	// uuid_generate_v4() defaults need the extension present.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return err
		}
	}

	return MigrateConstraints(db)
}
