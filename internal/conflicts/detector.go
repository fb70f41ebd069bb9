package conflicts

import (
	"context"
	"fmt"
	"time"

	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/venues"

	"github.com/google/uuid"
)

// Query describes a prospective seating to test for conflicts. An empty
// TableIDs list means "any table in the venue".
type Query struct {
	VenueID              uuid.UUID
	TableIDs             []uuid.UUID
	LocalDate            string
	StartAt              time.Time
	DurationMinutes      int // 0 = venue default
	ExcludeReservationID *uuid.UUID
}

// Result lists the blocking rows whose buffer-expanded windows intersect
// the query window.
type Result struct {
	Reservations []reservations.Reservation `json:"reservations"`
	Holds        []holds.Hold               `json:"holds"`
}

// Has reports whether any conflict was found.
func (r *Result) Has() bool {
	return len(r.Reservations) > 0 || len(r.Holds) > 0
}

// Repository loads candidate blocking rows for one venue-local date.
type Repository interface {
	BlockingReservations(ctx context.Context, venueID uuid.UUID, localDate string) ([]reservations.Reservation, error)
	HeldHolds(ctx context.Context, venueID uuid.UUID, localDate string) ([]holds.Hold, error)
}

// VenuePolicy supplies the venue timing configuration the overlap math
// depends on.
type VenuePolicy interface {
	GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
}

// Detector answers "who would I collide with". It never mutates anything;
// the seating allocator re-runs it inside the commit transaction because
// answers go stale between suggestion and commit.
type Detector interface {
	FindConflicts(ctx context.Context, q Query) (*Result, error)
}

type detector struct {
	repo   Repository
	venues VenuePolicy
}

func NewDetector(repo Repository, venuePolicy VenuePolicy) Detector {
	return &detector{repo: repo, venues: venuePolicy}
}

func (d *detector) FindConflicts(ctx context.Context, q Query) (*Result, error) {
	venue, err := d.venues.GetVenue(ctx, q.VenueID)
	if err != nil {
		return nil, err
	}

	before, after := venue.BufferMinutes()
	duration := q.DurationMinutes
	if duration <= 0 {
		duration = venue.DefaultDurationMinutes
	}
	queryWindow := NewWindow(q.StartAt, duration).Expand(before, after)

	tableSet := make(map[uuid.UUID]struct{}, len(q.TableIDs))
	for _, id := range q.TableIDs {
		tableSet[id] = struct{}{}
	}

	blocking, err := d.repo.BlockingReservations(ctx, q.VenueID, q.LocalDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocking reservations: %w", err)
	}

	result := &Result{}
	for _, r := range blocking {
		if q.ExcludeReservationID != nil && r.ID == *q.ExcludeReservationID {
			continue
		}
		if len(tableSet) > 0 && !touchesAnyTable(&r, tableSet) {
			continue
		}
		window := NewWindow(r.StartAt, r.EffectiveDuration(venue.DefaultDurationMinutes)).Expand(before, after)
		if window.Overlaps(queryWindow) {
			result.Reservations = append(result.Reservations, r)
		}
	}

	held, err := d.repo.HeldHolds(ctx, q.VenueID, q.LocalDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	for _, h := range held {
		if len(tableSet) > 0 {
			// A table-less hold reserves slot capacity but claims no
			// specific table, so it never conflicts a table query.
			if h.TableID == nil {
				continue
			}
			if _, ok := tableSet[*h.TableID]; !ok {
				continue
			}
		}
		window := NewWindow(h.StartAt, holdDuration(venue)).Expand(before, after)
		if window.Overlaps(queryWindow) {
			result.Holds = append(result.Holds, h)
		}
	}

	return result, nil
}

// touchesAnyTable reports whether the reservation occupies any of the
// queried tables. A conflict on one member table conflicts a whole joined
// combo, so a single match is enough.
func touchesAnyTable(r *reservations.Reservation, tableSet map[uuid.UUID]struct{}) bool {
	for _, a := range r.Assignments {
		if _, ok := tableSet[a.TableID]; ok {
			return true
		}
	}
	return false
}

// holdDuration is the footprint a hold occupies: one table turn.
func holdDuration(venue *venues.Venue) int {
	if venue.TurnTimeMinutes > 0 {
		return venue.TurnTimeMinutes
	}
	return venue.DefaultDurationMinutes
}
