// Package logging assembles the structured slog loggers used across bindery
// phases.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers plus a no-op logger for tests and
// wiring code that cannot fail. Log output goes to stderr and the log file so
// stdout stays clean for reports.
package logging
