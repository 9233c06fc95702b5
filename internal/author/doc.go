// Package author implements the identity model for the library: turning raw,
// free-text author strings into canonical display names, deriving comparison
// keys for duplicate detection, and checking directory names against the
// canonical grammar.
//
// The canonical form is either one of four collective categories (Collectif,
// Anonyme, Anthologie, Unknown Author), "LASTNAME, Firstname" with particles
// preserved lower case, or a single capitalized token. Display names and
// comparison keys are deliberately separate: keys are stripped of case,
// diacritics, and whitespace and must never be shown to users.
package author
