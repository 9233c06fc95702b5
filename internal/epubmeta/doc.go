// Package epubmeta reads identity metadata (Dublin Core title and creators)
// from EPUB containers. The voting resolver consumes it through the Reader
// interface and treats every failure as absent evidence.
package epubmeta
