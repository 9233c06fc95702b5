package library

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/inventory"
	"bindery/internal/logging"
)

// Service operates on a consolidated library tree: one directory per author
// directly under root, book files inside. All mutating operations honor
// dryRun by reporting what they would do without touching the tree.
type Service struct {
	root   string
	policy inventory.Policy
	dryRun bool
	logger *slog.Logger
}

// New constructs a Service rooted at the library directory.
func New(root string, policy inventory.Policy, dryRun bool, logger *slog.Logger) *Service {
	return &Service{
		root:   root,
		policy: policy,
		dryRun: dryRun,
		logger: logging.NewComponentLogger(logger, "library"),
	}
}

// Root returns the library root path.
func (s *Service) Root() string {
	return s.root
}

// authorDirs lists the base names of all directories directly under the
// root, sorted case-insensitively.
func (s *Service) authorDirs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// booksIn returns every in-policy book file under dir, recursively, sorted.
func (s *Service) booksIn(dir string) ([]string, error) {
	var books []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && s.policy.Include(d.Name()) {
			books = append(books, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(books)
	return books, nil
}

// pruneEmptyDirs removes empty subdirectories bottom-up, then dir itself if
// it ended up empty. Leftover stray files make removal fail, which is
// deliberately non-fatal: the directory stays for manual review.
func (s *Service) pruneEmptyDirs(dir string) {
	var subdirs []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			subdirs = append(subdirs, path)
		}
		return nil
	})
	sort.Slice(subdirs, func(i, j int) bool {
		return strings.Count(subdirs[i], string(os.PathSeparator)) > strings.Count(subdirs[j], string(os.PathSeparator))
	})
	for _, sub := range subdirs {
		if err := os.Remove(sub); err != nil {
			s.logger.Debug("directory not removed",
				logging.String(logging.FieldPath, sub),
				logging.Error(err),
			)
		}
	}
}
