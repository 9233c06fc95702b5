package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/author"
	"bindery/internal/fileutil"
	"bindery/internal/identity"
	"bindery/internal/logging"
	"bindery/internal/textutil"
)

// SanitizeResult summarizes a sanitation pass.
type SanitizeResult struct {
	MergedItems  int
	NameFixes    int
	FileFixes    int
	FilesRemoved int
}

// Sanitize repairs the library tree in place: merges author directories that
// share a canonical key, renames non-normalized directory names (merging when
// the target exists), fixes unsafe book filenames, and removes files outside
// the extension policy.
func (s *Service) Sanitize() (SanitizeResult, error) {
	var result SanitizeResult

	merged, err := s.mergeDuplicateAuthors()
	if err != nil {
		return result, err
	}
	result.MergedItems = merged

	nameFixes, err := s.normalizeDirNames()
	if err != nil {
		return result, err
	}
	result.NameFixes = nameFixes

	fileFixes, removed, err := s.sanitizeBookFiles()
	if err != nil {
		return result, err
	}
	result.FileFixes = fileFixes
	result.FilesRemoved = removed
	return result, nil
}

// mergeDuplicateAuthors folds directories sharing a canonical key into one
// directory named by canonicalizing the group's first member.
func (s *Service) mergeDuplicateAuthors() (int, error) {
	names, err := s.authorDirs()
	if err != nil {
		return 0, fmt.Errorf("list author directories: %w", err)
	}

	candidates := names[:0:0]
	for _, name := range names {
		if !author.IsOutlier(name) {
			candidates = append(candidates, name)
		}
	}
	groups := identity.DuplicateGroups(candidates)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	moved := 0
	for _, key := range keys {
		dirs := groups[key]
		canonical := author.Canonicalize(dirs[0])
		dest := filepath.Join(s.root, canonical)
		for _, name := range dirs {
			src := filepath.Join(s.root, name)
			if src == dest {
				continue
			}
			n, err := s.MergeInto(src, dest)
			if err != nil {
				return moved, fmt.Errorf("merge duplicate %s: %w", name, err)
			}
			moved += n
		}
		s.logger.Info("duplicate authors merged",
			logging.String(logging.FieldAuthor, canonical),
			logging.Int(logging.FieldCount, len(dirs)),
		)
	}
	return moved, nil
}

// normalizeDirNames renames author directories whose name differs from its
// canonical form, merging into an existing target.
func (s *Service) normalizeDirNames() (int, error) {
	names, err := s.authorDirs()
	if err != nil {
		return 0, fmt.Errorf("list author directories: %w", err)
	}

	fixes := 0
	for _, name := range names {
		if author.IsOutlier(name) {
			continue
		}
		canonical := author.Canonicalize(name)
		if canonical == name {
			continue
		}
		src := filepath.Join(s.root, name)
		dst := filepath.Join(s.root, canonical)
		if s.dryRun {
			fixes++
			continue
		}
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			if err := os.Rename(src, dst); err != nil {
				return fixes, fmt.Errorf("rename %s: %w", name, err)
			}
		} else if _, err := s.MergeInto(src, dst); err != nil {
			return fixes, fmt.Errorf("merge %s: %w", name, err)
		}
		fixes++
	}
	return fixes, nil
}

// sanitizeBookFiles fixes unsafe filenames inside each author directory and
// removes files outside the extension policy.
func (s *Service) sanitizeBookFiles() (fixes, removed int, err error) {
	names, err := s.authorDirs()
	if err != nil {
		return 0, 0, fmt.Errorf("list author directories: %w", err)
	}

	for _, name := range names {
		dir := filepath.Join(s.root, name)
		items, err := os.ReadDir(dir)
		if err != nil {
			return fixes, removed, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, item := range items {
			if item.IsDir() {
				continue
			}
			path := filepath.Join(dir, item.Name())
			if !s.policy.Include(item.Name()) {
				if !s.dryRun {
					if err := os.Remove(path); err != nil {
						s.logger.Warn("out-of-policy file not removed",
							logging.String(logging.FieldPath, path),
							logging.Error(err),
						)
						continue
					}
				}
				removed++
				continue
			}

			ext := filepath.Ext(item.Name())
			stem := strings.TrimSuffix(item.Name(), ext)
			safe := textutil.SafeNameOr(stem, "Untitled") + strings.ToLower(ext)
			if safe == item.Name() {
				continue
			}
			if !s.dryRun {
				target := fileutil.EnsureUniquePath(filepath.Join(dir, safe))
				if err := os.Rename(path, target); err != nil {
					return fixes, removed, fmt.Errorf("rename %s: %w", path, err)
				}
			}
			fixes++
		}
	}
	return fixes, removed, nil
}
