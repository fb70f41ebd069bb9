package availability

import (
	"testing"

	"tablebook/internal/venues"

	"github.com/google/uuid"
)

func policyVenue() *venues.Venue {
	maxCovers := 24
	return &venues.Venue{
		ID:                     uuid.MustParse("8b9f3f52-0c4e-4d9b-9f57-2d8b9a1c6e01"),
		Timezone:               "Europe/Tirane",
		TurnTimeMinutes:        90,
		DefaultDurationMinutes: 120,
		HoldTTLSeconds:         600,
		Shifts: []venues.Shift{
			{DayOfWeek: 0, StartTime: "17:00", EndTime: "22:00", Capacity: 40, Active: true},
			{DayOfWeek: 6, StartTime: "11:30", EndTime: "14:30", Capacity: 30, Active: true},
		},
		PacingRules: []venues.PacingRule{
			{WindowMinutes: 30, MaxCovers: &maxCovers},
		},
		BlackoutDates: []venues.BlackoutDate{{Date: "2025-12-24"}},
		ServiceBuffer: &venues.ServiceBuffer{AfterMinutes: 10},
	}
}

func TestPolicyHashStableUnderReordering(t *testing.T) {
	a := policyVenue()
	b := policyVenue()
	b.Shifts[0], b.Shifts[1] = b.Shifts[1], b.Shifts[0]

	if PolicyHash(a, "2025-06-15") != PolicyHash(b, "2025-06-15") {
		t.Fatalf("hash must not depend on relation load order")
	}
}

func TestPolicyHashChangesWithRuleSet(t *testing.T) {
	a := policyVenue()
	b := policyVenue()
	b.Shifts[0].Capacity = 50

	if PolicyHash(a, "2025-06-15") == PolicyHash(b, "2025-06-15") {
		t.Fatalf("hash must change when a shift changes")
	}

	c := policyVenue()
	c.ServiceBuffer.AfterMinutes = 15
	if PolicyHash(a, "2025-06-15") == PolicyHash(c, "2025-06-15") {
		t.Fatalf("hash must change when the buffer changes")
	}
}

func TestPolicyHashChangesWithDate(t *testing.T) {
	v := policyVenue()

	if PolicyHash(v, "2025-06-15") == PolicyHash(v, "2025-06-16") {
		t.Fatalf("hash must change with the evaluated date")
	}
}
