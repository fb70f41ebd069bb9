package localtime

import (
	"fmt"
	"sort"
	"time"
)

// Layouts for the venue-local date and wall-clock values stored on
// reservations, holds and shift definitions.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate validates a local calendar date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseClock splits an "HH:MM" wall-clock string into hour and minute.
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Weekday returns the day of week (0=Sunday) for a local calendar date.
func Weekday(date string) (time.Weekday, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// Resolve maps a wall-clock time on a local date to the absolute instants at
// which that wall-clock reading actually occurs in the given zone.
//
// Most of the year this is exactly one instant. During a spring-forward gap
// the wall-clock reading never occurs and the result is empty. During a
// fall-back fold the reading occurs twice and both instants are returned,
// ordered by absolute time (the earlier UTC offset first).
func Resolve(date string, hour, minute int, loc *time.Location) ([]time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	year, month, day := d.Date()

	// The wall-clock reading expressed as if it were UTC; subtracting a
	// candidate zone offset from it yields a candidate absolute instant.
	wall := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)

	// Collect the distinct UTC offsets in effect around the target date.
	// A zone transition inside the date contributes two offsets; only the
	// offset(s) that round-trip back to the requested wall clock are real.
	probe := time.Date(year, month, day, hour, minute, 0, 0, loc)
	offsets := make(map[int]struct{}, 2)
	for _, delta := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, off := probe.Add(delta).Zone()
		offsets[off] = struct{}{}
	}

	var instants []time.Time
	for off := range offsets {
		candidate := wall.Add(-time.Duration(off) * time.Second)
		local := candidate.In(loc)
		ly, lm, ld := local.Date()
		if ly == year && lm == month && ld == day &&
			local.Hour() == hour && local.Minute() == minute {
			instants = append(instants, candidate)
		}
	}

	sort.Slice(instants, func(i, j int) bool {
		return instants[i].Before(instants[j])
	})
	return instants, nil
}
