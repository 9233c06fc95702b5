// Package planner computes the full source→target mapping for a consolidation
// run without touching the filesystem. Its output is the manifest: one entry
// per raw file with the resolved canonical author, the planned target path,
// and reason codes explaining each decision.
package planner
