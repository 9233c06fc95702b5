package author

import (
	"regexp"
	"strings"
)

// OutlierPrefix marks a directory whose name failed canonicalization. The
// original name is preserved after the marker for later resolution.
const OutlierPrefix = "__OUTLIER__ "

var (
	// Single-token names: one capitalized word, latin accents allowed.
	singleTokenPattern = regexp.MustCompile(`^[A-ZÀ-ÖØ-Þ][a-zà-öø-ÿ'’.\-]*$`)
	// Last-name side of a comma form: upper case letters plus separators.
	lastSidePattern = regexp.MustCompile(`^[A-Z0-9À-ÖØ-Þ '’.\-]+$`)
	// First-name side must open with an upper-case letter; lower-case
	// particles may follow inside.
	firstSidePattern = regexp.MustCompile(`^[A-ZÀ-ÖØ-ß]`)
)

// IsOutlier reports whether name carries the outlier marker.
func IsOutlier(name string) bool {
	return strings.HasPrefix(name, OutlierPrefix)
}

// MarkOutlier prepends the outlier marker to a (sanitized) directory name.
func MarkOutlier(name string) string {
	return OutlierPrefix + name
}

// IsCanonical reports whether a directory name conforms to the canonical
// author grammar: a collective category, "LASTNAME, Firstname", or a single
// capitalized token. Outlier-marked names never conform.
func IsCanonical(name string) bool {
	if IsCollective(name) {
		return true
	}
	if IsOutlier(name) {
		return false
	}
	if !strings.Contains(name, ",") {
		if strings.Contains(name, " ") {
			return false
		}
		return singleTokenPattern.MatchString(name)
	}
	if strings.Count(name, ",") != 1 {
		return false
	}
	left, right, _ := strings.Cut(name, ",")
	last := strings.TrimSpace(left)
	first := strings.TrimSpace(right)
	if last == "" || first == "" {
		return false
	}
	return lastSidePattern.MatchString(last) && firstSidePattern.MatchString(first)
}
