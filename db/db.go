package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/careslot/booking-app/config"
)

// Open connects to the database and returns the handle. The handle is
// passed explicitly to everything that needs it; there is no package
// level connection.
//
// TranslateError is on so constraint violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated — the booking
// service relies on that to resolve slot races.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
}
