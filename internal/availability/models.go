package availability

import (
	"time"

	"github.com/google/uuid"
)

// Reason codes for fully blocked slots.
const (
	ReasonBlackout = "blackout"
	ReasonCapacity = "capacity"
	ReasonPacing   = "pacing"
)

// Slot is a discrete local start time with its remaining bookable capacity.
// A repeated wall-clock reading during a DST fold produces two slots with
// the same LocalTime and different StartAt.
type Slot struct {
	LocalDate string    `json:"local_date"`
	LocalTime string    `json:"local_time"`
	StartAt   time.Time `json:"start_at"`
	Capacity  int       `json:"capacity"`
	Remaining int       `json:"remaining"`
	Reason    *string   `json:"reason,omitempty"` // set only when fully blocked
}

// DayAvailability is one evaluated day. PolicyHash fingerprints the venue
// configuration only, never live occupancy, so it is the caching key.
type DayAvailability struct {
	VenueID    uuid.UUID `json:"venue_id"`
	LocalDate  string    `json:"local_date"`
	PolicyHash string    `json:"policy_hash"`
	Slots      []Slot    `json:"slots"`
}
