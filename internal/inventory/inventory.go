package inventory

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/hints"
	"bindery/internal/logging"
)

// Policy decides which files belong to the audit. Extensions and names are
// matched lower case, with the dot included for extensions.
type Policy struct {
	Extensions     map[string]struct{}
	SkipNames      map[string]struct{}
	SkipExtensions map[string]struct{}
}

// NewPolicy builds a Policy from configured slices.
func NewPolicy(extensions, skipNames, skipExtensions []string) Policy {
	return Policy{
		Extensions:     toSet(extensions),
		SkipNames:      toSet(skipNames),
		SkipExtensions: toSet(skipExtensions),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

// Include reports whether a file with the given base name is a book under
// this policy.
func (p Policy) Include(name string) bool {
	lowered := strings.ToLower(name)
	if _, skip := p.SkipNames[lowered]; skip {
		return false
	}
	ext := filepath.Ext(lowered)
	if _, skip := p.SkipExtensions[ext]; skip {
		return false
	}
	_, ok := p.Extensions[ext]
	return ok
}

// Entry is one raw book file with its extracted hints. Produced read-only
// from the untouched source tree and never mutated afterwards.
type Entry struct {
	SourcePath string `json:"source_path"`
	RelPath    string `json:"rel_path"`
	Extension  string `json:"ext"`
	Size       int64  `json:"size"`
	AuthorHint string `json:"author_hint,omitempty"`
	TitleHint  string `json:"title_hint,omitempty"`
	HintSource string `json:"hint_source,omitempty"`
}

// Scan walks the source tree and produces one Entry per in-policy file,
// sorted by source path. Unreadable subtrees are logged and skipped so one
// bad mount point does not abort the audit.
func Scan(ctx context.Context, root string, policy Policy, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skipping unreadable path",
				logging.String(logging.FieldPath, path),
				logging.Error(walkErr),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !policy.Include(name) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping unstattable file",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		hint := hints.Extract(stem, filepath.Base(filepath.Dir(path)))

		entries = append(entries, Entry{
			SourcePath: path,
			RelPath:    rel,
			Extension:  strings.ToLower(filepath.Ext(name)),
			Size:       info.Size(),
			AuthorHint: hint.Author,
			TitleHint:  hint.Title,
			HintSource: hint.Source,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SourcePath < entries[j].SourcePath
	})
	return entries, nil
}

// CountBooks walks a tree counting in-policy files without building entries.
// Used by the validator's raw-vs-library comparison.
func CountBooks(root string, policy Policy) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && policy.Include(d.Name()) {
			count++
		}
		return nil
	})
	return count, err
}
