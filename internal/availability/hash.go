package availability

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"tablebook/internal/venues"
)

// policyFingerprint is the canonical encoding hashed into PolicyHash.
// Fields are value-only (no row ids or timestamps) and slices are sorted,
// so the hash is stable across loads and changes exactly when the rule set
// changes.
type policyFingerprint struct {
	VenueID                string        `json:"venue_id"`
	Date                   string        `json:"date"`
	Timezone               string        `json:"timezone"`
	TurnTimeMinutes        int           `json:"turn_time_minutes"`
	DefaultDurationMinutes int           `json:"default_duration_minutes"`
	HoldTTLSeconds         int           `json:"hold_ttl_seconds"`
	BufferBefore           int           `json:"buffer_before"`
	BufferAfter            int           `json:"buffer_after"`
	Shifts                 []shiftPrint  `json:"shifts"`
	PacingRules            []pacingPrint `json:"pacing_rules"`
	BlackoutDates          []string      `json:"blackout_dates"`
}

type shiftPrint struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Active    bool   `json:"active"`
}

type pacingPrint struct {
	WindowMinutes   int  `json:"window_minutes"`
	MaxReservations *int `json:"max_reservations"`
	MaxCovers       *int `json:"max_covers"`
}

// PolicyHash fingerprints venue id + date + the full rule set. Usage is
// deliberately excluded: the hash answers "did configuration change", not
// "did occupancy change".
func PolicyHash(venue *venues.Venue, localDate string) string {
	fp := policyFingerprint{
		VenueID:                venue.ID.String(),
		Date:                   localDate,
		Timezone:               venue.Timezone,
		TurnTimeMinutes:        venue.TurnTimeMinutes,
		DefaultDurationMinutes: venue.DefaultDurationMinutes,
		HoldTTLSeconds:         venue.HoldTTLSeconds,
	}

	if venue.ServiceBuffer != nil {
		fp.BufferBefore = venue.ServiceBuffer.BeforeMinutes
		fp.BufferAfter = venue.ServiceBuffer.AfterMinutes
	}

	for _, s := range venue.Shifts {
		fp.Shifts = append(fp.Shifts, shiftPrint{
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Capacity:  s.Capacity,
			Active:    s.Active,
		})
	}
	sort.Slice(fp.Shifts, func(i, j int) bool {
		a, b := fp.Shifts[i], fp.Shifts[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.EndTime < b.EndTime
	})

	for _, p := range venue.PacingRules {
		fp.PacingRules = append(fp.PacingRules, pacingPrint{
			WindowMinutes:   p.WindowMinutes,
			MaxReservations: p.MaxReservations,
			MaxCovers:       p.MaxCovers,
		})
	}
	sort.Slice(fp.PacingRules, func(i, j int) bool {
		a, b := fp.PacingRules[i], fp.PacingRules[j]
		if a.WindowMinutes != b.WindowMinutes {
			return a.WindowMinutes < b.WindowMinutes
		}
		return intOrZero(a.MaxCovers) < intOrZero(b.MaxCovers)
	})

	for _, b := range venue.BlackoutDates {
		fp.BlackoutDates = append(fp.BlackoutDates, b.Date)
	}
	sort.Strings(fp.BlackoutDates)

	data, _ := json.Marshal(fp)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
