package database

import (
	"villa/internal/bookings"
	"villa/internal/content"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&bookings.Booking{},
		&content.SiteContent{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
