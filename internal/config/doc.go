// Package config loads, normalizes, and validates bindery's TOML
// configuration. Paths are tilde/env expanded to absolute form during Load so
// the rest of the pipeline never deals with relative locations.
package config
