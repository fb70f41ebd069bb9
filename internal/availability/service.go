package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tablebook/internal/conflicts"
	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/shared/apperrors"
	"tablebook/internal/shared/config"
	"tablebook/internal/shared/constants"
	"tablebook/internal/shared/localtime"
	"tablebook/internal/venues"
	"tablebook/pkg/cache"
	"tablebook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	// EvaluateDay computes the bookable slots for one venue-local date.
	EvaluateDay(ctx context.Context, venueID uuid.UUID, localDate string) (*DayAvailability, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	venues       venues.Repository
	blocking     conflicts.Repository
	metrics      Metrics
	cfg          *config.Config
	log          *logger.Logger
	cacheService cache.Service
}

func NewService(venueRepo venues.Repository, blockingRepo conflicts.Repository, metrics Metrics, cfg *config.Config) Service {
	return &service{
		venues:   venueRepo,
		blocking: blockingRepo,
		metrics:  metrics,
		cfg:      cfg,
		log:      logger.GetDefault(),
	}
}

// SetCacheService enables cache-aside on evaluated days. Without it every
// call recomputes from the database.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) EvaluateDay(ctx context.Context, venueID uuid.UUID, localDate string) (*DayAvailability, error) {
	if _, err := localtime.ParseDate(localDate); err != nil {
		return nil, apperrors.InvalidRequest("invalid date %q: expected YYYY-MM-DD", localDate)
	}

	venue, err := s.venues.GetVenueWithPolicy(ctx, venueID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		return nil, apperrors.Config("venue %s has unresolvable timezone %q", venue.ID, venue.Timezone)
	}

	// Counts once per evaluation, cached or not.
	s.metrics.IncrementEvaluation(ctx, venueID)

	policyHash := PolicyHash(venue, localDate)

	if s.cacheService != nil {
		var cached DayAvailability
		cacheKey := constants.BuildAvailabilityDayKey(policyHash)
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	day := &DayAvailability{
		VenueID:    venue.ID,
		LocalDate:  localDate,
		PolicyHash: policyHash,
		Slots:      []Slot{},
	}

	if venue.IsBlackedOut(localDate) {
		day.Slots = append(day.Slots, blackoutSlot(localDate, loc))
		s.finish(ctx, day)
		return day, nil
	}

	seeds, err := s.expandShifts(venue, localDate, loc)
	if err != nil {
		return nil, err
	}

	if len(seeds) > 0 {
		blocking, err := s.blocking.BlockingReservations(ctx, venueID, localDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load blocking reservations: %w", err)
		}
		held, err := s.blocking.HeldHolds(ctx, venueID, localDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load holds: %w", err)
		}

		increment := s.slotIncrementMinutes(venue)
		for _, seed := range seeds {
			day.Slots = append(day.Slots, s.scoreSlot(venue, localDate, seed, increment, blocking, held))
		}
	}

	sort.SliceStable(day.Slots, func(i, j int) bool {
		return day.Slots[i].StartAt.Before(day.Slots[j].StartAt)
	})

	s.finish(ctx, day)
	return day, nil
}

// slotSeed is one resolved start instant inside a shift.
type slotSeed struct {
	localTime string
	startAt   time.Time
	capacity  int
}

// expandShifts walks each active shift for the date's weekday in slot
// increments and resolves every wall-clock reading to absolute instants.
// Readings inside a DST gap resolve to nothing and are skipped; readings
// inside a fold resolve twice and yield two seeds.
func (s *service) expandShifts(venue *venues.Venue, localDate string, loc *time.Location) ([]slotSeed, error) {
	weekday, err := localtime.Weekday(localDate)
	if err != nil {
		return nil, apperrors.InvalidRequest("invalid date %q: expected YYYY-MM-DD", localDate)
	}

	increment := s.slotIncrementMinutes(venue)

	var seeds []slotSeed
	for _, shift := range venue.Shifts {
		if !shift.Active || shift.DayOfWeek != int(weekday) {
			continue
		}

		startH, startM, err := localtime.ParseClock(shift.StartTime)
		if err != nil {
			return nil, apperrors.Config("shift %s has invalid start time %q", shift.ID, shift.StartTime)
		}
		endH, endM, err := localtime.ParseClock(shift.EndTime)
		if err != nil {
			return nil, apperrors.Config("shift %s has invalid end time %q", shift.ID, shift.EndTime)
		}

		start := startH*60 + startM
		end := endH*60 + endM
		for cur := start; cur < end; cur += increment {
			hour, minute := cur/60, cur%60
			instants, err := localtime.Resolve(localDate, hour, minute, loc)
			if err != nil {
				return nil, err
			}
			wall := fmt.Sprintf("%02d:%02d", hour, minute)
			for _, at := range instants {
				seeds = append(seeds, slotSeed{
					localTime: wall,
					startAt:   at,
					capacity:  shift.Capacity,
				})
			}
		}
	}
	return seeds, nil
}

// slotIncrementMinutes is the smallest pacing window, or the configured
// default when the venue has no pacing rules.
func (s *service) slotIncrementMinutes(venue *venues.Venue) int {
	increment := 0
	for _, rule := range venue.PacingRules {
		if rule.WindowMinutes <= 0 {
			continue
		}
		if increment == 0 || rule.WindowMinutes < increment {
			increment = rule.WindowMinutes
		}
	}
	if increment == 0 {
		increment = int(s.cfg.Availability.DefaultSlotIncrement.Minutes())
	}
	if increment <= 0 {
		increment = 15
	}
	return increment
}

// scoreSlot computes remaining capacity for one slot against current
// occupancy: shift capacity minus overlapping covers, then the tightest
// applicable pacing rule, floored at zero.
func (s *service) scoreSlot(venue *venues.Venue, localDate string, seed slotSeed, incrementMinutes int, blocking []reservations.Reservation, held []holds.Hold) Slot {
	before, after := venue.BufferMinutes()
	slotWindow := conflicts.NewWindow(seed.startAt, incrementMinutes)

	usage := 0
	for _, r := range blocking {
		w := conflicts.NewWindow(r.StartAt, r.EffectiveDuration(venue.DefaultDurationMinutes)).Expand(before, after)
		if w.Overlaps(slotWindow) {
			usage += r.PartySize
		}
	}
	holdMinutes := venue.TurnTimeMinutes
	if holdMinutes <= 0 {
		holdMinutes = venue.DefaultDurationMinutes
	}
	for _, h := range held {
		w := conflicts.NewWindow(h.StartAt, holdMinutes).Expand(before, after)
		if w.Overlaps(slotWindow) {
			usage += h.PartySize
		}
	}

	remaining := seed.capacity - usage
	pacingBound := false
	for _, rule := range venue.PacingRules {
		if ruleRemaining, bounded := s.applyPacingRule(rule, seed.startAt, blocking, held); bounded && ruleRemaining < remaining {
			remaining = ruleRemaining
			pacingBound = true
		}
	}

	slot := Slot{
		LocalDate: localDate,
		LocalTime: seed.localTime,
		StartAt:   seed.startAt,
		Capacity:  seed.capacity,
		Remaining: remaining,
	}
	if slot.Remaining <= 0 {
		slot.Remaining = 0
		reason := ReasonCapacity
		if seed.capacity-usage > 0 && pacingBound {
			reason = ReasonPacing
		}
		slot.Reason = &reason
	}
	return slot
}

// applyPacingRule returns the covers still admissible under one rule within
// the half-open window [slot start, slot start + rule window). A reservation
// starting exactly at the window's end boundary is outside it.
func (s *service) applyPacingRule(rule venues.PacingRule, slotStart time.Time, blocking []reservations.Reservation, held []holds.Hold) (int, bool) {
	if rule.WindowMinutes <= 0 || (rule.MaxReservations == nil && rule.MaxCovers == nil) {
		return 0, false
	}
	windowEnd := slotStart.Add(time.Duration(rule.WindowMinutes) * time.Minute)

	count, covers := 0, 0
	for _, r := range blocking {
		if !r.StartAt.Before(slotStart) && r.StartAt.Before(windowEnd) {
			count++
			covers += r.PartySize
		}
	}
	for _, h := range held {
		if !h.StartAt.Before(slotStart) && h.StartAt.Before(windowEnd) {
			count++
			covers += h.PartySize
		}
	}

	if rule.MaxReservations != nil && count >= *rule.MaxReservations {
		return 0, true
	}
	if rule.MaxCovers != nil {
		return *rule.MaxCovers - covers, true
	}
	return 0, false
}

// blackoutSlot is the single marker slot returned for a blacked out date.
func blackoutSlot(localDate string, loc *time.Location) Slot {
	d, _ := localtime.ParseDate(localDate)
	year, month, dayOfMonth := d.Date()
	reason := ReasonBlackout
	return Slot{
		LocalDate: localDate,
		LocalTime: "00:00",
		StartAt:   time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc),
		Capacity:  0,
		Remaining: 0,
		Reason:    &reason,
	}
}

func (s *service) finish(ctx context.Context, day *DayAvailability) {
	if s.cacheService != nil {
		cacheKey := constants.BuildAvailabilityDayKey(day.PolicyHash)
		if err := s.cacheService.Set(ctx, cacheKey, day, s.cfg.Redis.AvailabilityCacheTTL); err != nil {
			s.log.WarnContext(ctx, "failed to cache availability day",
				"key", cacheKey,
				"error", err.Error(),
			)
		}
	}
	s.log.LogDayEvaluated(ctx, day.VenueID.String(), day.LocalDate, day.PolicyHash, len(day.Slots))
}
