package holds

import (
	"github.com/google/uuid"
)

// CreateHoldRequest is the payload for placing a hold on a slot. TableID is
// optional; a table-less hold reserves slot capacity without claiming a
// specific table.
type CreateHoldRequest struct {
	VenueID    uuid.UUID  `json:"venue_id" binding:"required"`
	TableID    *uuid.UUID `json:"table_id,omitempty"`
	LocalDate  string     `json:"local_date" binding:"required,localdate"`
	LocalTime  string     `json:"local_time" binding:"required,localclock"`
	PartySize  int        `json:"party_size" binding:"required,min=1"`
	TTLSeconds *int       `json:"ttl_seconds,omitempty"`
	CreatedBy  string     `json:"created_by,omitempty"`
}
