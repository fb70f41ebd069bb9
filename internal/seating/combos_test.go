package seating

import (
	"testing"

	"tablebook/internal/venues"

	"github.com/google/uuid"
)

func table(label string, capacity, minParty int, joinGroup *uuid.UUID) venues.Table {
	return venues.Table{
		ID:           uuid.New(),
		Label:        label,
		Capacity:     capacity,
		MinPartySize: minParty,
		JoinGroup:    joinGroup,
	}
}

func TestEnumerateCandidatesSingles(t *testing.T) {
	tables := []venues.Table{
		table("T1", 2, 1, nil),
		table("T2", 4, 1, nil),
		table("T3", 6, 4, nil),
	}

	candidates := EnumerateCandidates(tables, 4)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 single candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		if len(c.Tables) != 1 {
			t.Fatalf("expected singles only, got %d tables", len(c.Tables))
		}
		if c.Tables[0].Label == "T1" {
			t.Fatalf("2-seat table must not seat a party of 4")
		}
	}
}

func TestEnumerateCandidatesMinPartySize(t *testing.T) {
	tables := []venues.Table{
		table("T1", 8, 6, nil),
	}

	// A party of 2 at an 8-top is below the table's minimum.
	if got := EnumerateCandidates(tables, 2); len(got) != 0 {
		t.Fatalf("expected no candidates below min party size, got %d", len(got))
	}
	if got := EnumerateCandidates(tables, 6); len(got) != 1 {
		t.Fatalf("expected 1 candidate at min party size, got %d", len(got))
	}
}

func TestEnumerateCandidatesSmallestComboSizeOnly(t *testing.T) {
	group := uuid.New()
	tables := []venues.Table{
		table("J1", 2, 1, &group),
		table("J2", 2, 1, &group),
		table("J3", 2, 1, &group),
		table("J4", 2, 1, &group),
	}

	// Party of 6 needs three 2-seaters; four-table combos must not appear
	// once the three-table size qualifies.
	candidates := EnumerateCandidates(tables, 6)

	if len(candidates) != 4 {
		t.Fatalf("expected the 4 three-table combos, got %d candidates", len(candidates))
	}
	for _, c := range candidates {
		if len(c.Tables) != 3 {
			t.Fatalf("expected only 3-table combos, got one with %d tables", len(c.Tables))
		}
		if c.Capacity() != 6 {
			t.Fatalf("expected combo capacity 6, got %d", c.Capacity())
		}
	}
}

func TestEnumerateCandidatesPairBeatsTriple(t *testing.T) {
	group := uuid.New()
	tables := []venues.Table{
		table("J1", 2, 1, &group),
		table("J2", 4, 1, &group),
		table("J3", 2, 1, &group),
	}

	// A party of 6 is reachable at size 2 (J2+J1 or J2+J3); size 3 is
	// never generated.
	candidates := EnumerateCandidates(tables, 6)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 pair combos, got %d", len(candidates))
	}
	for _, c := range candidates {
		if len(c.Tables) != 2 {
			t.Fatalf("expected pairs only, got %d tables", len(c.Tables))
		}
	}
}

func TestEnumerateCandidatesSeparateGroups(t *testing.T) {
	groupA, groupB := uuid.New(), uuid.New()
	tables := []venues.Table{
		table("A1", 2, 1, &groupA),
		table("A2", 2, 1, &groupA),
		table("B1", 2, 1, &groupB),
		table("B2", 2, 1, &groupB),
	}

	// Tables never join across groups: a party of 6 cannot be seated.
	if got := EnumerateCandidates(tables, 6); len(got) != 0 {
		t.Fatalf("expected no cross-group combos, got %d", len(got))
	}

	// A party of 4 gets one pair per group.
	candidates := EnumerateCandidates(tables, 4)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 in-group pairs, got %d", len(candidates))
	}
}

func TestEnumerateCandidatesLoneGroupMember(t *testing.T) {
	group := uuid.New()
	tables := []venues.Table{
		table("J1", 4, 1, &group),
	}

	// A single group member still qualifies as a single, never as a combo.
	candidates := EnumerateCandidates(tables, 4)
	if len(candidates) != 1 || len(candidates[0].Tables) != 1 {
		t.Fatalf("expected one single candidate, got %v", candidates)
	}
}

func TestEnumerateCandidatesNoTables(t *testing.T) {
	if got := EnumerateCandidates(nil, 2); len(got) != 0 {
		t.Fatalf("expected empty result for no tables, got %d", len(got))
	}
}
