package identity

import (
	"sort"
	"strings"

	"bindery/internal/author"
)

// Pair is the normalized (left, right) token pair of a comma-form directory
// name. Two directories are a reversed pair when one's Pair equals the
// other's transposed Pair.
type Pair struct {
	Left  string
	Right string
}

// Reversed returns the transposed pair.
func (p Pair) Reversed() Pair {
	return Pair{Left: p.Right, Right: p.Left}
}

// SplitName derives the comparison pair for a directory name. Collective
// categories and names without exactly one comma are not candidates.
func SplitName(name string) (Pair, bool) {
	if author.IsCollective(name) {
		return Pair{}, false
	}
	if strings.Count(name, ",") != 1 {
		return Pair{}, false
	}
	left, right, _ := strings.Cut(name, ",")
	p := Pair{Left: author.Key(left), Right: author.Key(right)}
	if p.Left == "" || p.Right == "" {
		return Pair{}, false
	}
	return p, true
}

// ReversedPair names two directories whose name tokens are transposed
// versions of each other. A sorts before B.
type ReversedPair struct {
	A string
	B string
}

// FindReversedPairs scans directory names and returns every reversed pair in
// deterministic order. Names sharing an identical pair key are ignored here;
// same-key duplicates are the sanitation pass's concern.
func FindReversedPairs(names []string) []ReversedPair {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	byPair := make(map[Pair]string, len(sorted))
	for _, name := range sorted {
		pair, ok := SplitName(name)
		if !ok {
			continue
		}
		if _, dup := byPair[pair]; dup {
			continue
		}
		byPair[pair] = name
	}

	var pairs []ReversedPair
	seen := make(map[Pair]struct{}, len(byPair))
	for _, name := range sorted {
		pair, ok := SplitName(name)
		if !ok {
			continue
		}
		if _, done := seen[pair]; done {
			continue
		}
		other, found := byPair[pair.Reversed()]
		if !found || other == name {
			continue
		}
		a, b := name, other
		if b < a {
			a, b = b, a
		}
		pairs = append(pairs, ReversedPair{A: a, B: b})
		seen[pair] = struct{}{}
		seen[pair.Reversed()] = struct{}{}
	}
	return pairs
}

// DuplicateGroups buckets directory names by canonical key and returns the
// groups holding more than one directory, keyed by the shared CanonicalKey.
func DuplicateGroups(names []string) map[string][]string {
	groups := make(map[string][]string)
	for _, name := range names {
		key := author.Key(name)
		groups[key] = append(groups[key], name)
	}
	for key, members := range groups {
		if len(members) <= 1 {
			delete(groups, key)
			continue
		}
		sort.Strings(members)
	}
	return groups
}
