// Package textutil provides string cleanup helpers shared across the
// consolidation pipeline: filesystem-safe name filtering, title scrubbing,
// and small heuristics over character classes.
package textutil
