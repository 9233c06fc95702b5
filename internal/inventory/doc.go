// Package inventory performs the read-only audit of the raw source tree: a
// policy-filtered walk that records per-file hints and sizes and persists
// them as the artifacts later phases consume.
package inventory
