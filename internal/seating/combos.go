package seating

import (
	"sort"
	"strings"

	"tablebook/internal/venues"

	"github.com/google/uuid"
)

// Candidate is one seatable option: a single table or a joined combination
// from one join group.
type Candidate struct {
	Tables []venues.Table
}

// Capacity is the summed seat count of all member tables.
func (c Candidate) Capacity() int {
	total := 0
	for _, t := range c.Tables {
		total += t.Capacity
	}
	return total
}

// IDs returns member table ids sorted lexicographically. The sorted list is
// also the deterministic tie breaker between equally scored candidates.
func (c Candidate) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Tables))
	for _, t := range c.Tables {
		ids = append(ids, t.ID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Labels returns member table labels, sorted.
func (c Candidate) Labels() []string {
	labels := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		labels = append(labels, t.Label)
	}
	sort.Strings(labels)
	return labels
}

// tieKey is the canonical ordering key between equally scored candidates.
func (c Candidate) tieKey() string {
	ids := c.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

// EnumerateCandidates builds every seatable option from the free tables:
// single tables that accept the party on their own, plus joined combos per
// join group. Combos are generated only at the smallest member count whose
// summed capacity reaches the party size; once a size qualifies, larger
// combinations from that group are skipped.
func EnumerateCandidates(freeTables []venues.Table, partySize int) []Candidate {
	var candidates []Candidate

	groups := make(map[uuid.UUID][]venues.Table)
	for _, t := range freeTables {
		if t.CanSeat(partySize) {
			candidates = append(candidates, Candidate{Tables: []venues.Table{t}})
		}
		if t.JoinGroup != nil {
			groups[*t.JoinGroup] = append(groups[*t.JoinGroup], t)
		}
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for size := 2; size <= len(group); size++ {
			qualifying := combinations(group, size, partySize)
			if len(qualifying) > 0 {
				candidates = append(candidates, qualifying...)
				break
			}
		}
	}

	return candidates
}

// combinations enumerates all size-k subsets of the group whose summed
// capacity reaches the party size. Join groups are physically adjacent
// tables, so the group is always small.
func combinations(group []venues.Table, size, partySize int) []Candidate {
	var out []Candidate
	pick := make([]venues.Table, 0, size)

	var walk func(start int)
	walk = func(start int) {
		if len(pick) == size {
			c := Candidate{Tables: append([]venues.Table(nil), pick...)}
			if c.Capacity() >= partySize {
				out = append(out, c)
			}
			return
		}
		for i := start; i <= len(group)-(size-len(pick)); i++ {
			pick = append(pick, group[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)
	return out
}
