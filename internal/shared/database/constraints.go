package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints and indexes AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	// dates are stored as YYYY-MM-DD so text order is calendar order
	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_bookings_stay_range') THEN
				ALTER TABLE bookings ADD CONSTRAINT chk_bookings_stay_range CHECK (check_in < check_out);
			END IF;
		END
		$$;
	`).Error
	if err != nil {
		return err
	}

	// only accepted stays feed the unavailable set
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_accepted_stays
		ON bookings (check_in, check_out)
		WHERE status = 'ACCEPTED';
	`).Error
	if err != nil {
		return err
	}

	// admin list is newest first
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_created_at
		ON bookings (created_at DESC);
	`).Error
}
