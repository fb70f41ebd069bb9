package seating

import (
	"testing"

	"tablebook/internal/venues"

	"github.com/google/uuid"
)

func TestWeightedScorerExactValue(t *testing.T) {
	scorer := NewWeightedScorer()
	t1 := table("T1", 4, 1, nil)
	t2 := table("T2", 4, 1, nil)
	wear := map[uuid.UUID]int{t1.ID: 2, t2.ID: 1}

	c := Candidate{Tables: []venues.Table{t1, t2}}

	// wearMax 2, wearTotal 3, splitCount 2, excess 8-6=2.
	want := int64(2*100000 + 3*1000 + 2*100 + 2)
	if got := scorer.Score(c, 6, wear); got != want {
		t.Fatalf("expected score %d, got %d", want, got)
	}
}

func TestWeightedScorerPrefersFreshTables(t *testing.T) {
	scorer := NewWeightedScorer()
	worn := table("T1", 4, 1, nil)
	fresh := table("T2", 4, 1, nil)
	wear := map[uuid.UUID]int{worn.ID: 1}

	wornScore := scorer.Score(Candidate{Tables: []venues.Table{worn}}, 4, wear)
	freshScore := scorer.Score(Candidate{Tables: []venues.Table{fresh}}, 4, wear)

	if freshScore >= wornScore {
		t.Fatalf("fresh table must outrank worn table: %d vs %d", freshScore, wornScore)
	}
}

func TestWeightedScorerPrefersFewerTables(t *testing.T) {
	scorer := NewWeightedScorer()
	single := Candidate{Tables: []venues.Table{table("T1", 6, 1, nil)}}
	pair := Candidate{Tables: []venues.Table{
		table("J1", 4, 1, nil),
		table("J2", 2, 1, nil),
	}}
	wear := map[uuid.UUID]int{}

	// Same capacity, same wear: the single must win on split count.
	if s, p := scorer.Score(single, 6, wear), scorer.Score(pair, 6, wear); s >= p {
		t.Fatalf("single must outrank pair at equal capacity: %d vs %d", s, p)
	}
}

func TestWeightedScorerPrefersTighterFit(t *testing.T) {
	scorer := NewWeightedScorer()
	snug := Candidate{Tables: []venues.Table{table("T1", 4, 1, nil)}}
	roomy := Candidate{Tables: []venues.Table{table("T2", 8, 1, nil)}}
	wear := map[uuid.UUID]int{}

	if s, r := scorer.Score(snug, 4, wear), scorer.Score(roomy, 4, wear); s >= r {
		t.Fatalf("snug table must outrank roomy table: %d vs %d", s, r)
	}
}

func TestWeightedScorerWearDominatesSplit(t *testing.T) {
	scorer := NewWeightedScorer()
	wornSingle := table("T1", 6, 1, nil)
	pairA := table("J1", 4, 1, nil)
	pairB := table("J2", 2, 1, nil)
	wear := map[uuid.UUID]int{wornSingle.ID: 1}

	single := scorer.Score(Candidate{Tables: []venues.Table{wornSingle}}, 6, wear)
	pair := scorer.Score(Candidate{Tables: []venues.Table{pairA, pairB}}, 6, wear)

	// One unit of wear outweighs any split or excess penalty.
	if pair >= single {
		t.Fatalf("unworn pair must outrank worn single: %d vs %d", pair, single)
	}
}
