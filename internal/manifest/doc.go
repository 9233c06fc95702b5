// Package manifest persists planned and executed file transfers in a SQLite
// database under the report directory.
//
// The store is the bridge between plan and execute: plan writes rows in the
// planned state, execute consumes them and records terminal outcomes, and an
// interrupted run resumes from whatever is still planned. Source paths are
// unique, so re-planning refreshes pending rows without clobbering finished
// ones.
package manifest
