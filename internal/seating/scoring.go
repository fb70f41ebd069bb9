package seating

import (
	"github.com/google/uuid"
)

// Scorer ranks a candidate for a party. Lower scores rank first. Wear is the
// count of other blocking reservations already seated on each table that
// local date; spreading wear keeps table usage even across a night.
type Scorer interface {
	Score(candidate Candidate, partySize int, wear map[uuid.UUID]int) int64
}

// WeightedScorer is the default ranking: avoid worn tables first, prefer
// fewer tables, then waste as few seats as possible.
type WeightedScorer struct {
	WearMaxWeight   int64
	WearTotalWeight int64
	SplitWeight     int64
	ExcessWeight    int64
}

func NewWeightedScorer() *WeightedScorer {
	return &WeightedScorer{
		WearMaxWeight:   100000,
		WearTotalWeight: 1000,
		SplitWeight:     100,
		ExcessWeight:    1,
	}
}

func (w *WeightedScorer) Score(candidate Candidate, partySize int, wear map[uuid.UUID]int) int64 {
	var wearMax, wearTotal int64
	for _, t := range candidate.Tables {
		v := int64(wear[t.ID])
		wearTotal += v
		if v > wearMax {
			wearMax = v
		}
	}

	splitCount := int64(len(candidate.Tables))
	excess := int64(candidate.Capacity() - partySize)

	return wearMax*w.WearMaxWeight +
		wearTotal*w.WearTotalWeight +
		splitCount*w.SplitWeight +
		excess*w.ExcessWeight
}
