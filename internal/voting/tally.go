package voting

import (
	"sort"

	"bindery/internal/author"
)

// VoteCount is one canonical identity with its vote total, for reporting.
type VoteCount struct {
	Name  string
	Votes int
}

// Tally accumulates metadata author votes keyed by canonical identity. The
// display form is the canonicalization of the first raw string seen for a
// key.
type Tally struct {
	counts  map[string]int
	display map[string]string
	total   int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		counts:  map[string]int{},
		display: map[string]string{},
	}
}

// Add records one vote for a raw author string. Strings that canonicalize to
// the unknown fallback carry no identity evidence and are not counted.
func (t *Tally) Add(raw string) {
	canonical := author.Canonicalize(raw)
	if canonical == author.Unknown {
		return
	}
	key := author.Key(canonical)
	if _, ok := t.display[key]; !ok {
		t.display[key] = canonical
	}
	t.counts[key]++
	t.total++
}

// Total returns the number of counted votes.
func (t *Tally) Total() int {
	return t.total
}

// Distinct returns the number of distinct identities seen.
func (t *Tally) Distinct() int {
	return len(t.counts)
}

// Winner returns the plurality identity and its vote count. Ties break by
// canonical key order so the result is deterministic.
func (t *Tally) Winner() (string, int) {
	var (
		bestKey   string
		bestVotes int
	)
	for _, key := range t.sortedKeys() {
		if t.counts[key] > bestVotes {
			bestKey = key
			bestVotes = t.counts[key]
		}
	}
	if bestKey == "" {
		return "", 0
	}
	return t.display[bestKey], bestVotes
}

// Counts returns all identities ordered by descending votes, then key.
func (t *Tally) Counts() []VoteCount {
	keys := t.sortedKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	out := make([]VoteCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, VoteCount{Name: t.display[key], Votes: t.counts[key]})
	}
	return out
}

func (t *Tally) sortedKeys() []string {
	keys := make([]string, 0, len(t.counts))
	for key := range t.counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
