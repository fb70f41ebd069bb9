package holds

import (
	"time"

	"github.com/google/uuid"
)

// Hold is a short-lived placeholder that reserves capacity for a slot while
// a guest completes checkout. Only HELD holds block capacity.
type Hold struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"venue_id"`
	TableID   *uuid.UUID `gorm:"type:uuid;index" json:"table_id,omitempty"`
	Status    Status     `gorm:"type:varchar(20);check:status IN ('HELD', 'EXPIRED', 'CANCELLED', 'CONSUMED');default:'HELD'" json:"status"`
	LocalDate string     `gorm:"type:varchar(10);index;not null" json:"local_date"` // venue-local "YYYY-MM-DD"
	LocalTime string     `gorm:"type:varchar(5);not null" json:"local_time"`        // venue-local "HH:MM"
	StartAt   time.Time  `gorm:"not null" json:"start_at"`                          // absolute slot instant
	PartySize int        `gorm:"not null" json:"party_size"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for Hold
func (Hold) TableName() string {
	return "holds"
}

type Status string

const (
	StatusHeld      Status = "HELD"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
	StatusConsumed  Status = "CONSUMED"
)

// IsValid checks if the hold status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusExpired, StatusCancelled, StatusConsumed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the hold can no longer transition.
func (s Status) IsTerminal() bool {
	return s != StatusHeld
}

// IsBlocking reports whether the hold currently reserves capacity.
func (h *Hold) IsBlocking() bool {
	return h.Status == StatusHeld
}
