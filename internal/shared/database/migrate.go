package database

import (
	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&venues.Venue{},
		&venues.Shift{},
		&venues.PacingRule{},
		&venues.BlackoutDate{},
		&venues.ServiceBuffer{},
		&venues.Table{},
		&reservations.Reservation{},
		&reservations.TableAssignment{},
		&holds.Hold{},
	)
}
