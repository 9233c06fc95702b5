package author

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"bindery/internal/textutil"
)

// The four collective categories. These are terminal canonical names: they
// are never split into last/first parts and never participate in merges.
const (
	Collectif  = "Collectif"
	Anonyme    = "Anonyme"
	Anthologie = "Anthologie"
	Unknown    = "Unknown Author"
)

var collectiveSynonyms = map[string]string{
	"collectif":       Collectif,
	"collective":      Collectif,
	"various":         Collectif,
	"various authors": Collectif,
	"anonyme":         Anonyme,
	"anonymous":       Anonyme,
	"anthologie":      Anthologie,
	"anthology":       Anthologie,
	"unknown":         Unknown,
	"unknown author":  Unknown,
}

// Name particles kept lower case inside first names and recognized as the
// head of compound last names ("Jean de la Fontaine").
var particles = map[string]struct{}{
	"de":    {},
	"du":    {},
	"des":   {},
	"van":   {},
	"von":   {},
	"le":    {},
	"la":    {},
	"del":   {},
	"della": {},
	"di":    {},
}

// Canonicalize turns a raw author string into its canonical display form:
// one of the collective categories, "LASTNAME, Firstname", or a single
// capitalized token. The result is filesystem safe and the function is
// idempotent: Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(raw string) string {
	a := strings.TrimSpace(norm.NFKC.String(raw))
	if a == "" {
		return Unknown
	}
	if canon, ok := collectiveSynonyms[strings.ToLower(a)]; ok {
		return canon
	}

	if i := strings.Index(a, ","); i >= 0 {
		last := strings.ToUpper(strings.TrimSpace(a[:i]))
		first := titlecaseFirstName(strings.TrimSpace(a[i+1:]))
		if first == "" {
			return textutil.SafeNameOr(last, Unknown)
		}
		return textutil.SafeNameOr(last+", "+first, Unknown)
	}

	tokens := strings.Fields(a)
	if len(tokens) >= 2 {
		var last, first string
		if len(tokens) >= 3 && isParticle(tokens[len(tokens)-2]) {
			last = strings.Join(tokens[len(tokens)-2:], " ")
			first = strings.Join(tokens[:len(tokens)-2], " ")
		} else {
			last = tokens[len(tokens)-1]
			first = strings.Join(tokens[:len(tokens)-1], " ")
		}
		return textutil.SafeNameOr(strings.ToUpper(last)+", "+titlecaseFirstName(first), Unknown)
	}

	return textutil.SafeNameOr(capitalizeToken(tokens[0]), Unknown)
}

// titlecaseFirstName capitalizes each word of a first name while keeping
// known particles lower case. The tail of each word is left untouched so
// interior capitals ("McCoy") survive.
func titlecaseFirstName(first string) string {
	words := strings.Fields(first)
	for i, w := range words {
		if isParticle(w) {
			words[i] = strings.ToLower(w)
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// capitalizeToken upper-cases the first rune and lower-cases the rest.
func capitalizeToken(tok string) string {
	r, size := utf8.DecodeRuneInString(tok)
	return string(unicode.ToUpper(r)) + strings.ToLower(tok[size:])
}

func isParticle(tok string) bool {
	_, ok := particles[strings.ToLower(tok)]
	return ok
}

// IsCollective reports whether name is one of the collective categories.
func IsCollective(name string) bool {
	switch name {
	case Collectif, Anonyme, Anthologie, Unknown:
		return true
	}
	return false
}
