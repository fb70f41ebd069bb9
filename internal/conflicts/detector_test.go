package conflicts

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/venues"

	"github.com/google/uuid"
)

type fakeRepo struct {
	reservations []reservations.Reservation
	holds        []holds.Hold
}

func (f *fakeRepo) BlockingReservations(ctx context.Context, venueID uuid.UUID, localDate string) ([]reservations.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeRepo) HeldHolds(ctx context.Context, venueID uuid.UUID, localDate string) ([]holds.Hold, error) {
	return f.holds, nil
}

type fakeVenuePolicy struct {
	venue *venues.Venue
}

func (f *fakeVenuePolicy) GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error) {
	return f.venue, nil
}

func testVenue(bufferAfter int) *venues.Venue {
	v := &venues.Venue{
		ID:                     uuid.New(),
		Timezone:               "Europe/Tirane",
		TurnTimeMinutes:        90,
		DefaultDurationMinutes: 120,
	}
	if bufferAfter > 0 {
		v.ServiceBuffer = &venues.ServiceBuffer{AfterMinutes: bufferAfter}
	}
	return v
}

func reservationOn(tableID uuid.UUID, startAt time.Time, duration int) reservations.Reservation {
	return reservations.Reservation{
		ID:              uuid.New(),
		Status:          reservations.StatusConfirmed,
		LocalDate:       "2025-06-15",
		StartAt:         startAt,
		DurationMinutes: duration,
		PartySize:       2,
		Assignments:     []reservations.TableAssignment{{TableID: tableID}},
	}
}

func TestDetectorFindsOverlap(t *testing.T) {
	venue := testVenue(0)
	table := uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{reservations: []reservations.Reservation{
		reservationOn(table, start, 120),
	}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{table},
		LocalDate: "2025-06-15",
		StartAt:   start.Add(60 * time.Minute),
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if !result.Has() {
		t.Fatalf("expected a conflict for an overlapping window")
	}
	if len(result.Reservations) != 1 {
		t.Fatalf("expected 1 conflicting reservation, got %d", len(result.Reservations))
	}
}

func TestDetectorBackToBackIsClean(t *testing.T) {
	venue := testVenue(0)
	table := uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{reservations: []reservations.Reservation{
		reservationOn(table, start, 120),
	}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	// A seating starting exactly when the previous one ends does not
	// conflict without a service buffer.
	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{table},
		LocalDate: "2025-06-15",
		StartAt:   start.Add(120 * time.Minute),
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if result.Has() {
		t.Fatalf("expected no conflict for back-to-back seatings")
	}
}

func TestDetectorBufferMakesBackToBackConflict(t *testing.T) {
	venue := testVenue(10)
	table := uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{reservations: []reservations.Reservation{
		reservationOn(table, start, 120),
	}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{table},
		LocalDate: "2025-06-15",
		StartAt:   start.Add(120 * time.Minute),
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if !result.Has() {
		t.Fatalf("expected the service buffer to make back-to-back seatings conflict")
	}
}

func TestDetectorExcludesOwnReservation(t *testing.T) {
	venue := testVenue(0)
	table := uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	existing := reservationOn(table, start, 120)
	repo := &fakeRepo{reservations: []reservations.Reservation{existing}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:              venue.ID,
		TableIDs:             []uuid.UUID{table},
		LocalDate:            "2025-06-15",
		StartAt:              start,
		ExcludeReservationID: &existing.ID,
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if result.Has() {
		t.Fatalf("a reservation must not conflict with itself")
	}
}

func TestDetectorComboConflictsOnAnyMember(t *testing.T) {
	venue := testVenue(0)
	t1, t2, t3 := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{reservations: []reservations.Reservation{
		reservationOn(t2, start, 120),
	}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	// One occupied member table conflicts the whole joined combo.
	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{t1, t2, t3},
		LocalDate: "2025-06-15",
		StartAt:   start,
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if !result.Has() {
		t.Fatalf("expected combo to conflict when a member table is occupied")
	}
}

func TestDetectorTableLessHold(t *testing.T) {
	venue := testVenue(0)
	table := uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{holds: []holds.Hold{{
		ID:        uuid.New(),
		Status:    holds.StatusHeld,
		LocalDate: "2025-06-15",
		StartAt:   start,
		PartySize: 2,
	}}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	// A hold with no table claims slot capacity, not a specific table.
	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{table},
		LocalDate: "2025-06-15",
		StartAt:   start,
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if result.Has() {
		t.Fatalf("table-less hold must not conflict a table query")
	}

	// But an any-table query sees it.
	result, err = d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		LocalDate: "2025-06-15",
		StartAt:   start,
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if len(result.Holds) != 1 {
		t.Fatalf("expected table-less hold in venue-wide query, got %d holds", len(result.Holds))
	}
}

func TestDetectorHoldOnOtherTable(t *testing.T) {
	venue := testVenue(0)
	queried, other := uuid.New(), uuid.New()
	start := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{holds: []holds.Hold{{
		ID:        uuid.New(),
		TableID:   &other,
		Status:    holds.StatusHeld,
		LocalDate: "2025-06-15",
		StartAt:   start,
		PartySize: 2,
	}}}
	d := NewDetector(repo, &fakeVenuePolicy{venue: venue})

	result, err := d.FindConflicts(context.Background(), Query{
		VenueID:   venue.ID,
		TableIDs:  []uuid.UUID{queried},
		LocalDate: "2025-06-15",
		StartAt:   start,
	})
	if err != nil {
		t.Fatalf("find conflicts: %v", err)
	}
	if result.Has() {
		t.Fatalf("hold on another table must not conflict")
	}
}
