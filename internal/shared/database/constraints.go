package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A reservation may occupy a table at most once
	err := db.Exec(`
		ALTER TABLE table_assignments
		ADD CONSTRAINT IF NOT EXISTS unique_table_per_reservation
		UNIQUE (reservation_id, table_id);
	`).Error
	if err != nil {
		return err
	}

	// Conflict detection scans per venue-local date
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_reservations_venue_date
		ON reservations (venue_id, local_date, status);
	`).Error
	if err != nil {
		return err
	}

	// The expiry sweep selects HELD rows oldest-first
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_holds_status_expires
		ON holds (status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
