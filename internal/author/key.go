package author

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"bindery/internal/textutil"
)

// stripMarks decomposes to NFKD and removes combining marks, so "Émile" and
// "Emile" produce the same key.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Key derives the case-, diacritic-, and whitespace-insensitive comparison
// key for a canonical author name. Keys are for equality checks only, never
// for display.
func Key(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}
	return textutil.CollapseWhitespace(strings.ToLower(stripped))
}
