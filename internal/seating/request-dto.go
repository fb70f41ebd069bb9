package seating

import (
	"github.com/google/uuid"
)

// AssignTablesRequest is the commit payload. The first id becomes the
// reservation's primary table.
type AssignTablesRequest struct {
	TableIDs []uuid.UUID `json:"table_ids" binding:"required,min=1"`
}
