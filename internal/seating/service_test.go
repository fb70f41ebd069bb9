package seating

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/conflicts"
	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/shared/apperrors"
	"tablebook/internal/shared/database"
	"tablebook/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubReservations struct {
	byID map[uuid.UUID]*reservations.Reservation
}

func (s *stubReservations) GetByID(ctx context.Context, id uuid.UUID) (*reservations.Reservation, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("reservation %s not found", id)
	}
	return r, nil
}

func (s *stubReservations) Create(ctx context.Context, r *reservations.Reservation) error {
	s.byID[r.ID] = r
	return nil
}

func (s *stubReservations) ListBlockingByVenueDate(ctx context.Context, venueID uuid.UUID, localDate string) ([]reservations.Reservation, error) {
	return nil, nil
}

type stubVenues struct {
	venue  *venues.Venue
	tables map[uuid.UUID]*venues.Table
}

func (s *stubVenues) GetVenueWithPolicy(ctx context.Context, id uuid.UUID) (*venues.Venue, error) {
	return s.venue, nil
}

func (s *stubVenues) GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error) {
	return s.venue, nil
}

func (s *stubVenues) GetTables(ctx context.Context, venueID uuid.UUID) ([]venues.Table, error) {
	return s.venue.Tables, nil
}

func (s *stubVenues) GetTable(ctx context.Context, id uuid.UUID) (*venues.Table, error) {
	t, ok := s.tables[id]
	if !ok {
		return nil, apperrors.NotFound("table %s not found", id)
	}
	return t, nil
}

type stubBlocking struct {
	reservations []reservations.Reservation
	holds        []holds.Hold
}

func (s *stubBlocking) BlockingReservations(ctx context.Context, venueID uuid.UUID, localDate string) ([]reservations.Reservation, error) {
	return s.reservations, nil
}

func (s *stubBlocking) HeldHolds(ctx context.Context, venueID uuid.UUID, localDate string) ([]holds.Hold, error) {
	return s.holds, nil
}

type stubRepo struct {
	lockKeys     []string
	current      []uuid.UUID
	replaced     [][]uuid.UUID
	primary      *uuid.UUID
	reservation  *reservations.Reservation
	lockAcquires int
}

func (s *stubRepo) InSerializableTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubRepo) AcquireSlotLocks(ctx context.Context, tx *gorm.DB, keys []string) error {
	s.lockAcquires++
	s.lockKeys = database.SortLockKeys(keys)
	return nil
}

func (s *stubRepo) CurrentAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) ([]uuid.UUID, error) {
	return s.current, nil
}

func (s *stubRepo) SetPrimaryTable(ctx context.Context, tx *gorm.DB, reservationID, tableID uuid.UUID) error {
	s.primary = &tableID
	return nil
}

func (s *stubRepo) ReplaceAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID, tableIDs []uuid.UUID) error {
	s.replaced = append(s.replaced, tableIDs)
	s.current = tableIDs
	return nil
}

func (s *stubRepo) GetReservation(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) (*reservations.Reservation, error) {
	return s.reservation, nil
}

type stubDetector struct {
	result *conflicts.Result
	calls  int
}

func (s *stubDetector) FindConflicts(ctx context.Context, q conflicts.Query) (*conflicts.Result, error) {
	s.calls++
	return s.result, nil
}

type fixture struct {
	venue       *venues.Venue
	reservation *reservations.Reservation
	blocking    *stubBlocking
	repo        *stubRepo
	detector    *stubDetector
	svc         *service
}

func newFixture(partySize int, tables []venues.Table) *fixture {
	venue := &venues.Venue{
		ID:                     uuid.MustParse("3f1c8a77-52be-4d0e-9c4c-b6f1d9a2e501"),
		Timezone:               "Europe/Tirane",
		TurnTimeMinutes:        90,
		DefaultDurationMinutes: 120,
		Tables:                 tables,
	}
	for i := range venue.Tables {
		venue.Tables[i].VenueID = venue.ID
	}

	reservation := &reservations.Reservation{
		ID:              uuid.New(),
		VenueID:         venue.ID,
		Status:          reservations.StatusConfirmed,
		LocalDate:       "2025-06-15",
		LocalTime:       "19:00",
		StartAt:         time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		PartySize:       partySize,
	}

	tableMap := make(map[uuid.UUID]*venues.Table, len(venue.Tables))
	for i := range venue.Tables {
		tableMap[venue.Tables[i].ID] = &venue.Tables[i]
	}

	blocking := &stubBlocking{}
	repo := &stubRepo{reservation: reservation}
	detector := &stubDetector{result: &conflicts.Result{}}

	svc := NewService(
		&stubReservations{byID: map[uuid.UUID]*reservations.Reservation{reservation.ID: reservation}},
		&stubVenues{venue: venue, tables: tableMap},
		blocking,
		repo,
		NewWeightedScorer(),
	).(*service)
	svc.newDetector = func(tx *gorm.DB) conflicts.Detector { return detector }

	return &fixture{
		venue:       venue,
		reservation: reservation,
		blocking:    blocking,
		repo:        repo,
		detector:    detector,
		svc:         svc,
	}
}

func joinRow(labels []string, capacity int) []venues.Table {
	group := uuid.New()
	tables := make([]venues.Table, 0, len(labels))
	for _, label := range labels {
		tables = append(tables, venues.Table{
			ID:        uuid.New(),
			Label:     label,
			Capacity:  capacity,
			JoinGroup: &group,
		})
	}
	return tables
}

func TestSuggestJoinCombo(t *testing.T) {
	// Party of 6, four joinable 2-seaters, no single table that fits: the
	// answer is a 3-table combo, never the 4-table one.
	tables := append(joinRow([]string{"J1", "J2", "J3", "J4"}, 2),
		venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1})
	f := newFixture(6, tables)

	suggestions, err := f.svc.Suggest(context.Background(), f.reservation.ID, 0)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	if len(suggestions) != DefaultSuggestionLimit {
		t.Fatalf("expected default limit of %d suggestions, got %d", DefaultSuggestionLimit, len(suggestions))
	}
	for _, s := range suggestions {
		if len(s.TableIDs) != 3 {
			t.Fatalf("expected 3-table combos, got %d tables", len(s.TableIDs))
		}
		if s.Capacity != 6 {
			t.Fatalf("expected capacity 6, got %d", s.Capacity)
		}
		if s.Explanation == "" {
			t.Fatalf("suggestion must carry an explanation")
		}
	}
}

func TestSuggestExcludesOccupiedTables(t *testing.T) {
	free := venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1}
	taken := venues.Table{ID: uuid.New(), Label: "T2", Capacity: 4, MinPartySize: 1}
	f := newFixture(4, []venues.Table{free, taken})

	f.blocking.reservations = []reservations.Reservation{{
		ID:              uuid.New(),
		VenueID:         f.venue.ID,
		Status:          reservations.StatusConfirmed,
		LocalDate:       "2025-06-15",
		StartAt:         f.reservation.StartAt,
		DurationMinutes: 120,
		PartySize:       2,
		Assignments:     []reservations.TableAssignment{{TableID: taken.ID}},
	}}

	suggestions, err := f.svc.Suggest(context.Background(), f.reservation.ID, 0)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].TableIDs[0] != free.ID {
		t.Fatalf("expected the free table, got %v", suggestions[0].TableIDs)
	}
}

func TestSuggestSpreadsWear(t *testing.T) {
	worn := venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1}
	fresh := venues.Table{ID: uuid.New(), Label: "T2", Capacity: 4, MinPartySize: 1}
	f := newFixture(4, []venues.Table{worn, fresh})

	// An earlier, non-overlapping seating leaves wear on T1 but keeps it
	// free for the requested slot.
	f.blocking.reservations = []reservations.Reservation{{
		ID:              uuid.New(),
		VenueID:         f.venue.ID,
		Status:          reservations.StatusConfirmed,
		LocalDate:       "2025-06-15",
		StartAt:         f.reservation.StartAt.Add(-5 * time.Hour),
		DurationMinutes: 120,
		PartySize:       2,
		Assignments:     []reservations.TableAssignment{{TableID: worn.ID}},
	}}

	suggestions, err := f.svc.Suggest(context.Background(), f.reservation.ID, 0)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	if len(suggestions) != 2 {
		t.Fatalf("expected both tables suggested, got %d", len(suggestions))
	}
	if suggestions[0].TableIDs[0] != fresh.ID {
		t.Fatalf("expected the fresh table ranked first")
	}
}

func TestSuggestLimit(t *testing.T) {
	tables := []venues.Table{
		{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1},
		{ID: uuid.New(), Label: "T2", Capacity: 4, MinPartySize: 1},
		{ID: uuid.New(), Label: "T3", Capacity: 4, MinPartySize: 1},
		{ID: uuid.New(), Label: "T4", Capacity: 4, MinPartySize: 1},
	}
	f := newFixture(4, tables)

	suggestions, err := f.svc.Suggest(context.Background(), f.reservation.ID, 1)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	suggestions, err = f.svc.Suggest(context.Background(), f.reservation.ID, 0)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != DefaultSuggestionLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultSuggestionLimit, len(suggestions))
	}
}

func TestSuggestNoTablesIsEmpty(t *testing.T) {
	f := newFixture(4, nil)

	suggestions, err := f.svc.Suggest(context.Background(), f.reservation.ID, 0)
	if err != nil {
		t.Fatalf("suggest must not fail with no tables: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected empty suggestions, got %d", len(suggestions))
	}
}

func TestSuggestUnknownReservation(t *testing.T) {
	f := newFixture(4, nil)

	if _, err := f.svc.Suggest(context.Background(), uuid.New(), 0); !apperrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAssignTablesValidation(t *testing.T) {
	single := venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1}
	loner := venues.Table{ID: uuid.New(), Label: "T2", Capacity: 4, MinPartySize: 1}
	row := joinRow([]string{"J1", "J2"}, 2)
	tables := append([]venues.Table{single, loner}, row...)
	f := newFixture(4, tables)

	tests := []struct {
		name string
		ids  []uuid.UUID
		want func(error) bool
	}{
		{name: "empty list", ids: nil, want: apperrors.IsInvalidRequest},
		{name: "duplicate ids", ids: []uuid.UUID{single.ID, single.ID}, want: apperrors.IsInvalidRequest},
		{name: "unknown table", ids: []uuid.UUID{uuid.New()}, want: apperrors.IsNotFound},
		{name: "unjoinable combo", ids: []uuid.UUID{single.ID, loner.ID}, want: apperrors.IsInvalidRequest},
		{name: "mixed group and loner", ids: []uuid.UUID{row[0].ID, single.ID}, want: apperrors.IsInvalidRequest},
		{name: "capacity below party", ids: []uuid.UUID{row[0].ID}, want: apperrors.IsInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AssignTables(context.Background(), f.reservation.ID, tt.ids)
			if err == nil || !tt.want(err) {
				t.Fatalf("expected classified validation error, got %v", err)
			}
			if f.repo.lockAcquires != 0 {
				t.Fatalf("validation must fail before any lock is taken")
			}
		})
	}
}

func TestAssignTablesConflictAborts(t *testing.T) {
	table := venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1}
	f := newFixture(4, []venues.Table{table})

	f.detector.result = &conflicts.Result{
		Holds: []holds.Hold{{ID: uuid.New(), Status: holds.StatusHeld}},
	}

	_, err := f.svc.AssignTables(context.Background(), f.reservation.ID, []uuid.UUID{table.ID})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if f.detector.calls != 1 {
		t.Fatalf("expected one re-validation under lock, got %d", f.detector.calls)
	}
	if f.repo.primary != nil {
		t.Fatalf("conflict must abort before any write")
	}
	if len(f.repo.replaced) != 0 {
		t.Fatalf("conflict must abort before assignments change")
	}
}

func TestAssignTablesCommit(t *testing.T) {
	row := joinRow([]string{"J1", "J2", "J3"}, 2)
	f := newFixture(6, row)
	ids := []uuid.UUID{row[0].ID, row[1].ID, row[2].ID}

	committed, err := f.svc.AssignTables(context.Background(), f.reservation.ID, ids)
	if err != nil {
		t.Fatalf("assign tables: %v", err)
	}
	if committed == nil {
		t.Fatalf("expected committed reservation")
	}

	if f.repo.primary == nil || *f.repo.primary != ids[0] {
		t.Fatalf("expected primary table %s, got %v", ids[0], f.repo.primary)
	}
	if len(f.repo.replaced) != 1 {
		t.Fatalf("expected one assignment replace, got %d", len(f.repo.replaced))
	}
	if f.detector.calls != 1 {
		t.Fatalf("expected conflict re-validation inside the transaction")
	}

	for i := 1; i < len(f.repo.lockKeys); i++ {
		if f.repo.lockKeys[i-1] > f.repo.lockKeys[i] {
			t.Fatalf("lock keys must be acquired in sorted order: %v", f.repo.lockKeys)
		}
	}
}

func TestAssignTablesLockOrderIsRequestOrderIndependent(t *testing.T) {
	row := joinRow([]string{"J1", "J2", "J3"}, 2)
	ids := []uuid.UUID{row[0].ID, row[1].ID, row[2].ID}
	reversed := []uuid.UUID{row[2].ID, row[1].ID, row[0].ID}

	f1 := newFixture(6, row)
	if _, err := f1.svc.AssignTables(context.Background(), f1.reservation.ID, ids); err != nil {
		t.Fatalf("assign tables: %v", err)
	}

	f2 := newFixture(6, row)
	if _, err := f2.svc.AssignTables(context.Background(), f2.reservation.ID, reversed); err != nil {
		t.Fatalf("assign tables: %v", err)
	}

	if len(f1.repo.lockKeys) != len(f2.repo.lockKeys) {
		t.Fatalf("expected same lock key count")
	}
	for i := range f1.repo.lockKeys {
		if f1.repo.lockKeys[i] != f2.repo.lockKeys[i] {
			t.Fatalf("lock order must not depend on request order:\n%v\n%v", f1.repo.lockKeys, f2.repo.lockKeys)
		}
	}
}

func TestAssignTablesIdempotentReplay(t *testing.T) {
	table := venues.Table{ID: uuid.New(), Label: "T1", Capacity: 4, MinPartySize: 1}
	f := newFixture(4, []venues.Table{table})

	// The requested set is already in place.
	f.repo.current = []uuid.UUID{table.ID}

	_, err := f.svc.AssignTables(context.Background(), f.reservation.ID, []uuid.UUID{table.ID})
	if err != nil {
		t.Fatalf("assign tables: %v", err)
	}

	if len(f.repo.replaced) != 0 {
		t.Fatalf("unchanged set must not rewrite assignments")
	}
	if f.repo.primary == nil || *f.repo.primary != table.ID {
		t.Fatalf("primary table must still be set")
	}
}
