// Package hints extracts author and title candidates from filename stems and
// parent directory names. Extraction is an ordered cascade of pure matcher
// functions; the absence of a match is a normal result.
package hints
