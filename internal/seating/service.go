package seating

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tablebook/internal/conflicts"
	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/shared/apperrors"
	"tablebook/internal/shared/database"
	"tablebook/internal/venues"
	"tablebook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSuggestionLimit = 3

type Service interface {
	// Suggest returns ranked seating options for the reservation's party.
	// An empty list means no option exists; that is not an error.
	Suggest(ctx context.Context, reservationID uuid.UUID, limit int) ([]Suggestion, error)

	// AssignTables commits the requested table set in one serializable
	// transaction, re-validating conflicts under lock.
	AssignTables(ctx context.Context, reservationID uuid.UUID, tableIDs []uuid.UUID) (*reservations.Reservation, error)
}

type service struct {
	reservations reservations.Repository
	venues       venues.Repository
	blocking     conflicts.Repository
	repo         Repository
	scorer       Scorer
	log          *logger.Logger

	// newDetector builds the commit-time detector bound to the transaction
	// handle, so the re-validation reads under the same isolation.
	newDetector func(tx *gorm.DB) conflicts.Detector
}

func NewService(reservationRepo reservations.Repository, venueRepo venues.Repository, blockingRepo conflicts.Repository, repo Repository, scorer Scorer) Service {
	return &service{
		reservations: reservationRepo,
		venues:       venueRepo,
		blocking:     blockingRepo,
		repo:         repo,
		scorer:       scorer,
		log:          logger.GetDefault(),
		newDetector: func(tx *gorm.DB) conflicts.Detector {
			return conflicts.NewDetector(conflicts.NewRepository(tx), venues.NewRepository(tx))
		},
	}
}

func (s *service) Suggest(ctx context.Context, reservationID uuid.UUID, limit int) ([]Suggestion, error) {
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	venue, err := s.venues.GetVenueWithPolicy(ctx, reservation.VenueID)
	if err != nil {
		return nil, err
	}

	blocking, err := s.blocking.BlockingReservations(ctx, venue.ID, reservation.LocalDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocking reservations: %w", err)
	}
	held, err := s.blocking.HeldHolds(ctx, venue.ID, reservation.LocalDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	free := s.freeTables(venue, reservation, blocking, held)
	wear := tableWear(blocking, reservation.ID)

	candidates := EnumerateCandidates(free, reservation.PartySize)

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, Suggestion{
			TableIDs:    c.IDs(),
			TableLabels: c.Labels(),
			Capacity:    c.Capacity(),
			Score:       s.scorer.Score(c, reservation.PartySize, wear),
			Explanation: explain(c, reservation.PartySize),
			tie:         c.tieKey(),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score < suggestions[j].Score
		}
		return suggestions[i].tie < suggestions[j].tie
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// freeTables filters the venue's tables down to those whose buffer-expanded
// window is clear of every other blocking reservation and every HELD hold.
func (s *service) freeTables(venue *venues.Venue, reservation *reservations.Reservation, blocking []reservations.Reservation, held []holds.Hold) []venues.Table {
	before, after := venue.BufferMinutes()
	want := conflicts.NewWindow(reservation.StartAt, reservation.EffectiveDuration(venue.DefaultDurationMinutes)).
		Expand(before, after)

	holdMinutes := venue.TurnTimeMinutes
	if holdMinutes <= 0 {
		holdMinutes = venue.DefaultDurationMinutes
	}

	var free []venues.Table
	for _, t := range venue.Tables {
		occupied := false
		for _, r := range blocking {
			if r.ID == reservation.ID || !r.IsAssignedTo(t.ID) {
				continue
			}
			w := conflicts.NewWindow(r.StartAt, r.EffectiveDuration(venue.DefaultDurationMinutes)).Expand(before, after)
			if w.Overlaps(want) {
				occupied = true
				break
			}
		}
		if !occupied {
			for _, h := range held {
				if h.TableID == nil || *h.TableID != t.ID {
					continue
				}
				w := conflicts.NewWindow(h.StartAt, holdMinutes).Expand(before, after)
				if w.Overlaps(want) {
					occupied = true
					break
				}
			}
		}
		if !occupied {
			free = append(free, t)
		}
	}
	return free
}

// tableWear counts, per table, the other blocking reservations already
// seated on it that local date.
func tableWear(blocking []reservations.Reservation, excludeID uuid.UUID) map[uuid.UUID]int {
	wear := make(map[uuid.UUID]int)
	for _, r := range blocking {
		if r.ID == excludeID {
			continue
		}
		for _, a := range r.Assignments {
			wear[a.TableID]++
		}
	}
	return wear
}

func explain(c Candidate, partySize int) string {
	labels := strings.Join(c.Labels(), "+")
	if len(c.Tables) == 1 {
		return fmt.Sprintf("table %s seats %d for a party of %d", labels, c.Capacity(), partySize)
	}
	return fmt.Sprintf("%d-table join %s seats %d for a party of %d", len(c.Tables), labels, c.Capacity(), partySize)
}

func (s *service) AssignTables(ctx context.Context, reservationID uuid.UUID, tableIDs []uuid.UUID) (*reservations.Reservation, error) {
	if len(tableIDs) == 0 {
		return nil, apperrors.InvalidRequest("at least one table is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		if _, dup := seen[id]; dup {
			return nil, apperrors.InvalidRequest("duplicate table id %s", id)
		}
		seen[id] = struct{}{}
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	tables := make([]venues.Table, 0, len(tableIDs))
	totalCapacity := 0
	for _, id := range tableIDs {
		table, err := s.venues.GetTable(ctx, id)
		if err != nil {
			return nil, err
		}
		if table.VenueID != reservation.VenueID {
			return nil, apperrors.InvalidRequest("table %s does not belong to venue %s", table.ID, reservation.VenueID)
		}
		tables = append(tables, *table)
		totalCapacity += table.Capacity
	}

	if len(tables) > 1 {
		group := tables[0].JoinGroup
		for _, t := range tables {
			if t.JoinGroup == nil || group == nil || *t.JoinGroup != *group {
				return nil, apperrors.InvalidRequest("tables must share one join group to be combined")
			}
		}
	}

	if totalCapacity < reservation.PartySize {
		return nil, apperrors.InvalidRequest("combined capacity %d is below party size %d", totalCapacity, reservation.PartySize)
	}

	var committed *reservations.Reservation
	err = s.repo.InSerializableTx(ctx, func(tx *gorm.DB) error {
		keys := make([]string, 0, len(tableIDs))
		for _, id := range tableIDs {
			keys = append(keys, database.LockKey(
				reservation.VenueID.String(), id.String(),
				reservation.LocalDate, reservation.LocalTime,
			))
		}
		if err := s.repo.AcquireSlotLocks(ctx, tx, keys); err != nil {
			return err
		}

		// Suggestion-time answers are stale by now; the only check that
		// counts is this one, under lock.
		detector := s.newDetector(tx)
		result, err := detector.FindConflicts(ctx, conflicts.Query{
			VenueID:              reservation.VenueID,
			TableIDs:             tableIDs,
			LocalDate:            reservation.LocalDate,
			StartAt:              reservation.StartAt,
			DurationMinutes:      reservation.DurationMinutes,
			ExcludeReservationID: &reservation.ID,
		})
		if err != nil {
			return err
		}
		if result.Has() {
			s.log.LogAssignmentConflict(ctx, reservation.ID.String(), idStrings(tableIDs))
			return apperrors.Conflict("requested tables are no longer free")
		}

		if err := s.repo.SetPrimaryTable(ctx, tx, reservation.ID, tableIDs[0]); err != nil {
			return err
		}

		current, err := s.repo.CurrentAssignments(ctx, tx, reservation.ID)
		if err != nil {
			return err
		}
		if !sameTableSet(current, tableIDs) {
			if err := s.repo.ReplaceAssignments(ctx, tx, reservation.ID, tableIDs); err != nil {
				return err
			}
		}

		committed, err = s.repo.GetReservation(ctx, tx, reservation.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.LogAssignmentCommitted(ctx, committed.ID.String(), idStrings(tableIDs))
	return committed, nil
}

func sameTableSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
