// Package identity detects author directories that plausibly refer to the
// same person: exact duplicates under the canonical comparison key and
// reversed pairs where the comma-separated name halves are transposed.
// Detection only surfaces candidates; consolidation decisions belong to the
// metadata voting resolver.
package identity
