package db

import (
	"gorm.io/gorm"

	"github.com/careslot/booking-app/models"
)

// Migrate creates or updates the schema, including the unique index on
// bookings.slot_id and the foreign keys that back the booking contract.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Slot{},
		&models.Booking{},
	)
}
