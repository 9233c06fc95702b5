// Package library mutates the consolidated library tree after ingestion:
// collision-safe merges between author directories, the outlier flag/resolve
// loop, reversed-pair consolidation, and the sanitation pass. These are the
// only mutations performed outside the executor, and all of them honor
// dry-run.
package library
