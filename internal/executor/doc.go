// Package executor performs the planned transfers: it drains the manifest
// store's planned entries, copies each source into its author directory with
// collision-safe suffixing, and records terminal outcomes so interrupted runs
// resume where they stopped. Sources are never deleted; the raw tree stays
// intact as the recovery copy.
package executor
