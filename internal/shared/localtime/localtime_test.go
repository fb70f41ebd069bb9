package localtime

import (
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestResolveOrdinaryDay(t *testing.T) {
	loc := mustZone(t, "Europe/Tirane")

	instants, err := Resolve("2025-06-15", 19, 0, loc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(instants) != 1 {
		t.Fatalf("expected 1 instant, got %d", len(instants))
	}

	// 19:00 CEST is 17:00 UTC.
	want := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)
	if !instants[0].Equal(want) {
		t.Fatalf("expected %v, got %v", want, instants[0])
	}
}

func TestResolveSpringForwardGap(t *testing.T) {
	loc := mustZone(t, "Europe/Tirane")

	// Clocks jump from 02:00 to 03:00 on 2025-03-30; 02:30 never happens.
	instants, err := Resolve("2025-03-30", 2, 30, loc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(instants) != 0 {
		t.Fatalf("expected no instants inside the gap, got %d", len(instants))
	}
}

func TestResolveFallBackFold(t *testing.T) {
	loc := mustZone(t, "Europe/Tirane")

	// Clocks fall back from 03:00 to 02:00 on 2025-10-26; 02:30 happens
	// twice, first in CEST then in CET.
	instants, err := Resolve("2025-10-26", 2, 30, loc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(instants) != 2 {
		t.Fatalf("expected 2 instants inside the fold, got %d", len(instants))
	}

	first := time.Date(2025, 10, 26, 0, 30, 0, 0, time.UTC)
	second := time.Date(2025, 10, 26, 1, 30, 0, 0, time.UTC)
	if !instants[0].Equal(first) {
		t.Fatalf("expected first occurrence %v, got %v", first, instants[0])
	}
	if !instants[1].Equal(second) {
		t.Fatalf("expected second occurrence %v, got %v", second, instants[1])
	}
	if !instants[0].Before(instants[1]) {
		t.Fatalf("fold instants must be ordered by absolute time")
	}
}

func TestResolveTimeOutsideTransition(t *testing.T) {
	loc := mustZone(t, "Europe/Tirane")

	// Same transition day, but a reading far from the fold resolves once.
	instants, err := Resolve("2025-10-26", 19, 0, loc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(instants) != 1 {
		t.Fatalf("expected 1 instant, got %d", len(instants))
	}
}

func TestResolveInvalidDate(t *testing.T) {
	loc := mustZone(t, "Europe/Tirane")

	if _, err := Resolve("2025-13-40", 12, 0, loc); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("17:45")
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	if hour != 17 || minute != 45 {
		t.Fatalf("expected 17:45, got %02d:%02d", hour, minute)
	}

	if _, _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for out-of-range hour")
	}
}

func TestWeekday(t *testing.T) {
	day, err := Weekday("2025-10-26")
	if err != nil {
		t.Fatalf("weekday: %v", err)
	}
	if day != time.Sunday {
		t.Fatalf("expected Sunday, got %v", day)
	}
}
