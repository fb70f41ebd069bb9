package venues

import (
	"time"

	"github.com/google/uuid"
)

// Venue is the root of a venue's booking policy. Everything under it is
// admin-managed elsewhere; this engine only ever reads it.
type Venue struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                   string    `gorm:"not null" json:"name"`
	Timezone               string    `gorm:"not null" json:"timezone"` // IANA zone name
	TurnTimeMinutes        int       `gorm:"not null;default:90" json:"turn_time_minutes"`
	DefaultDurationMinutes int       `gorm:"not null;default:120" json:"default_duration_minutes"`
	HoldTTLSeconds         int       `gorm:"not null;default:600" json:"hold_ttl_seconds"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	// Relationships
	Shifts        []Shift        `json:"shifts,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
	PacingRules   []PacingRule   `json:"pacing_rules,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
	BlackoutDates []BlackoutDate `json:"blackout_dates,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
	ServiceBuffer *ServiceBuffer `json:"service_buffer,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
	Tables        []Table        `json:"tables,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
}

// Shift is a bookable service window on one weekday. Multiple shifts per
// day may exist and may overlap.
type Shift struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID   uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	DayOfWeek int       `gorm:"not null;check:day_of_week BETWEEN 0 AND 6" json:"day_of_week"` // 0 = Sunday
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`                    // local "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Capacity  int       `gorm:"not null" json:"capacity"` // covers per slot
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PacingRule caps bookings within a rolling window. Rules apply
// independently and simultaneously; the tightest one wins.
type PacingRule struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	WindowMinutes   int       `gorm:"not null" json:"window_minutes"`
	MaxReservations *int      `json:"max_reservations,omitempty"`
	MaxCovers       *int      `json:"max_covers,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BlackoutDate zeroes capacity for an entire local date, overriding shifts.
type BlackoutDate struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID   uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	Date      string    `gorm:"type:varchar(10);not null" json:"date"` // local "YYYY-MM-DD"
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceBuffer adds turnover padding to every reservation's footprint for
// conflict math. It never changes the guest-visible duration.
type ServiceBuffer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"venue_id"`
	BeforeMinutes int       `gorm:"not null;default:0" json:"before_minutes"`
	AfterMinutes  int       `gorm:"not null;default:0" json:"after_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Table is a physical table. Tables sharing a JoinGroup are physically
// adjacent and can be combined into one seating.
type Table struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"venue_id"`
	Label        string     `gorm:"not null" json:"label"`
	Capacity     int        `gorm:"not null" json:"capacity"`
	MinPartySize int        `gorm:"not null;default:1" json:"min_party_size"`
	JoinGroup    *uuid.UUID `gorm:"type:uuid;index" json:"join_group,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// TableName sets the table name for Shift
func (Shift) TableName() string {
	return "shifts"
}

// TableName sets the table name for PacingRule
func (PacingRule) TableName() string {
	return "pacing_rules"
}

// TableName sets the table name for BlackoutDate
func (BlackoutDate) TableName() string {
	return "blackout_dates"
}

// TableName sets the table name for ServiceBuffer
func (ServiceBuffer) TableName() string {
	return "service_buffers"
}

// TableName sets the table name for Table
func (Table) TableName() string {
	return "venue_tables"
}

// BufferMinutes returns the venue's turnover padding, zero when no buffer
// row exists.
func (v *Venue) BufferMinutes() (before, after int) {
	if v.ServiceBuffer == nil {
		return 0, 0
	}
	return v.ServiceBuffer.BeforeMinutes, v.ServiceBuffer.AfterMinutes
}

// IsBlackedOut reports whether the local date is fully blacked out.
func (v *Venue) IsBlackedOut(date string) bool {
	for _, b := range v.BlackoutDates {
		if b.Date == date {
			return true
		}
	}
	return false
}

// CanSeat reports whether a single table accepts the party on its own.
func (t *Table) CanSeat(partySize int) bool {
	return partySize >= t.MinPartySize && partySize <= t.Capacity
}
