package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	forbiddenPattern  = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	underscoreRuns    = regexp.MustCompile(`__+`)

	// Piracy-site markers that commonly pollute filename stems.
	bokMarkerPattern     = regexp.MustCompile(`(?i)\s*[\[(]b-ok\.[^)\]]*[)\]]\s*`)
	gratuitMarkerPattern = regexp.MustCompile(`(?i)\s*\(Ebook-Gratuit\.[^)]+\)\s*`)
	spacedDashPattern    = regexp.MustCompile(`\s+-\s+`)
)

// SafeName converts a string into a filesystem-safe name. Unicode is composed
// to NFC, zero-width spaces are dropped, forbidden characters become
// underscores, and whitespace/underscore runs are collapsed. Returns
// "Untitled" when nothing usable remains.
func SafeName(name string) string {
	return SafeNameOr(name, "Untitled")
}

// SafeNameOr is SafeName with a caller-provided fallback for empty results.
func SafeNameOr(name, fallback string) string {
	name = norm.NFC.String(name)
	name = strings.ReplaceAll(name, "\u200b", "")
	name = strings.TrimSpace(name)
	name = forbiddenPattern.ReplaceAllString(name, "_")
	name = whitespacePattern.ReplaceAllString(name, " ")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, " ._")
	if name == "" {
		return fallback
	}
	return name
}

// HasForbidden reports whether name contains characters that SafeName would
// rewrite.
func HasForbidden(name string) bool {
	return forbiddenPattern.MatchString(name)
}

// CleanTitle tidies a title candidate extracted from a filename stem:
// underscores become spaces, download-site markers are scrubbed, and dashes
// and whitespace are normalized.
func CleanTitle(raw string) string {
	title := strings.ReplaceAll(raw, "_", " ")
	title = bokMarkerPattern.ReplaceAllString(title, "")
	title = gratuitMarkerPattern.ReplaceAllString(title, "")
	title = spacedDashPattern.ReplaceAllString(title, " - ")
	return CollapseWhitespace(title)
}

// CollapseWhitespace trims the string and squeezes internal whitespace runs
// into single spaces.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// UppercaseRatio returns the fraction of letters in s that are upper case.
// Non-letter runes are ignored; a string without letters scores zero.
func UppercaseRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
