// Command bindery consolidates an ebook collection into a one-directory-per-
// author library. The pipeline runs as separate subcommands (audit, plan,
// execute) followed by maintenance passes over the library tree (sanitize,
// outliers, reversed, validate).
package main
