// Package validate performs the read-only invariant checks run after any
// mutation phase: no loose root files, canonical grammar and unique keys for
// author directories, policy-conforming safe filenames, and the raw-vs-library
// book count comparison.
package validate
