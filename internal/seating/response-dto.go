package seating

import (
	"github.com/google/uuid"
)

// Suggestion is one ranked seating option. Lower scores rank first.
type Suggestion struct {
	TableIDs    []uuid.UUID `json:"table_ids"`
	TableLabels []string    `json:"table_labels"`
	Capacity    int         `json:"capacity"`
	Score       int64       `json:"score"`
	Explanation string      `json:"explanation"`

	tie string
}
