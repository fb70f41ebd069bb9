package reservations

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a guest booking at a venue. Occupancy of specific tables
// is expressed through TableAssignments; a reservation without assignments
// still counts against shift capacity and pacing.
type Reservation struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"venue_id"`
	Status          Status     `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'SEATED', 'COMPLETED', 'CANCELLED', 'NO_SHOW');default:'PENDING'" json:"status"`
	LocalDate       string     `gorm:"type:varchar(10);index;not null" json:"local_date"` // venue-local "YYYY-MM-DD"
	LocalTime       string     `gorm:"type:varchar(5);not null" json:"local_time"`        // venue-local "HH:MM"
	StartAt         time.Time  `gorm:"index;not null" json:"start_at"`                    // absolute instant
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	PartySize       int        `gorm:"not null" json:"party_size"`
	PrimaryTableID  *uuid.UUID `gorm:"type:uuid" json:"primary_table_id,omitempty"`
	GuestName       string     `json:"guest_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Assignments []TableAssignment `json:"assignments,omitempty" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE;"`
}

// TableAssignment joins a reservation to one table. Its existence implies
// occupancy of that table for the reservation's full window.
type TableAssignment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;index;not null" json:"reservation_id"`
	TableID       uuid.UUID `gorm:"type:uuid;index;not null" json:"table_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// TableName sets the table name for TableAssignment
func (TableAssignment) TableName() string {
	return "table_assignments"
}

// EffectiveDuration returns the reservation's duration, falling back to the
// venue default when none was recorded.
func (r *Reservation) EffectiveDuration(venueDefaultMinutes int) int {
	if r.DurationMinutes > 0 {
		return r.DurationMinutes
	}
	return venueDefaultMinutes
}

// AssignedTableIDs returns the ids of all assigned tables.
func (r *Reservation) AssignedTableIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		ids = append(ids, a.TableID)
	}
	return ids
}

// IsAssignedTo reports whether the reservation occupies the given table.
func (r *Reservation) IsAssignedTo(tableID uuid.UUID) bool {
	for _, a := range r.Assignments {
		if a.TableID == tableID {
			return true
		}
	}
	return false
}
