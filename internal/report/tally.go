package report

import (
	"sort"

	"tfa/internal/domain"
)

// Tally accumulates per-test occurrence counts across jobs. It is a
// plain value owned by the caller; the aggregation loop threads it
// through explicitly rather than mutating shared state.
type Tally struct {
	counts map[string]int
}

// NewTally creates an empty Tally
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments the count for each named test.
func (t *Tally) Add(tests ...string) {
	for _, test := range tests {
		t.counts[test]++
	}
}

// Sorted returns the tallied tests ordered by descending count, ties
// broken by ascending test name.
func (t *Tally) Sorted() []domain.TestCount {
	entries := make([]domain.TestCount, 0, len(t.counts))
	for test, count := range t.counts {
		entries = append(entries, domain.TestCount{Test: test, Count: count})
	}
	sort.Slice(entries, func(i, k int) bool {
		if entries[i].Count != entries[k].Count {
			return entries[i].Count > entries[k].Count
		}
		return entries[i].Test < entries[k].Test
	})
	return entries
}
