package hints

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"bindery/internal/textutil"
)

// Hint source labels recorded in the inventory and echoed into manifest
// reason codes.
const (
	SourceFilename  = "filename"
	SourceParentDir = "parent_dir"
)

// Hint is an author/title guess extracted from untrusted filename evidence.
// A zero Hint means no rule matched; that is a valid outcome, not an error.
type Hint struct {
	Title  string
	Author string
	Source string
}

// Empty reports whether no rule produced a hint.
func (h Hint) Empty() bool {
	return h.Author == "" && h.Title == "" && h.Source == ""
}

var (
	bracketPrefixPattern = regexp.MustCompile(`^\[([^\]]+)\][ _-]+(.+)$`)
	parenSuffixPattern   = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	byAuthorPattern      = regexp.MustCompile(`(?i)^(.+?)[ _-]+by[ _-]+(.+)$`)
)

// Tokens that indicate a series segment rather than an author name.
var seriesMarkers = map[string]struct{}{
	"tome":   {},
	"vol":    {},
	"volume": {},
	"partie": {},
	"part":   {},
	"livre":  {},
}

type matcher func(stem string) (title, author string, ok bool)

// Matchers are tried in order; the first hit wins.
var matchers = []matcher{
	matchBracketPrefix,
	matchDashSeparated,
	matchParenSuffix,
	matchByAuthor,
}

// Extract derives an author/title hint from a filename stem, falling back to
// the parent directory name when it looks like an author. Pure function; no
// filesystem access.
func Extract(stem, parentDir string) Hint {
	for _, m := range matchers {
		if title, auth, ok := m(stem); ok {
			return Hint{Title: title, Author: auth, Source: SourceFilename}
		}
	}
	if LooksLikeAuthor(parentDir) {
		return Hint{Title: textutil.CleanTitle(stem), Author: strings.TrimSpace(parentDir), Source: SourceParentDir}
	}
	return Hint{}
}

// LooksLikeAuthor applies the author-likeness heuristic: a comma is a strong
// signal; otherwise the string needs at least two capitalized words, at most
// five words total, and no series-marker tokens.
func LooksLikeAuthor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.Contains(s, ",") {
		return true
	}
	words := strings.Fields(s)
	capitalized := 0
	for _, w := range words {
		if _, blocked := seriesMarkers[strings.ToLower(w)]; blocked {
			return false
		}
		if r, _ := utf8.DecodeRuneInString(w); unicode.IsUpper(r) {
			capitalized++
		}
	}
	return capitalized >= 2 && len(words) <= 5
}

// "[Jules Verne]_Vingt mille lieues sous les mers"
func matchBracketPrefix(stem string) (string, string, bool) {
	m := bracketPrefixPattern.FindStringSubmatch(stem)
	if m == nil {
		return "", "", false
	}
	auth := strings.TrimSpace(strings.ReplaceAll(m[1], "_", " "))
	return textutil.CleanTitle(m[2]), auth, true
}

// "Title - Author" or "Author - Title", author side picked by heuristic.
func matchDashSeparated(stem string) (string, string, bool) {
	parts := strings.Split(stem, " - ")
	if len(parts) < 2 {
		return "", "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	last := parts[len(parts)-1]
	first := parts[0]
	if LooksLikeAuthor(last) {
		return textutil.CleanTitle(strings.Join(parts[:len(parts)-1], " - ")), last, true
	}
	if LooksLikeAuthor(first) {
		return textutil.CleanTitle(strings.Join(parts[1:], " - ")), first, true
	}
	return "", "", false
}

// "Title (Author)"
func matchParenSuffix(stem string) (string, string, bool) {
	m := parenSuffixPattern.FindStringSubmatch(stem)
	if m == nil || !LooksLikeAuthor(m[2]) {
		return "", "", false
	}
	return textutil.CleanTitle(m[1]), strings.TrimSpace(m[2]), true
}

// "Title by Author"
func matchByAuthor(stem string) (string, string, bool) {
	m := byAuthorPattern.FindStringSubmatch(stem)
	if m == nil {
		return "", "", false
	}
	return textutil.CleanTitle(m[1]), strings.TrimSpace(m[2]), true
}
