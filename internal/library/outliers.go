package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/author"
	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/textutil"
	"bindery/internal/voting"
)

// FlagResult summarizes a flagging pass. Lines holds one report line per
// directory (OK, FIX, or FLAG).
type FlagResult struct {
	Conforming int
	Fixed      int
	Flagged    int
	Lines      []string
}

// FlagOutliers walks every author directory: conforming names are left
// untouched, normalizable names are renamed (merging when the canonical
// directory already exists), and the rest are renamed with the outlier
// prefix. Directories already carrying the prefix are left alone so the pass
// is idempotent.
func (s *Service) FlagOutliers() (FlagResult, error) {
	var result FlagResult

	names, err := s.authorDirs()
	if err != nil {
		return result, fmt.Errorf("list author directories: %w", err)
	}

	for _, name := range names {
		if author.IsOutlier(name) {
			result.Lines = append(result.Lines, "FLAGGED | "+name)
			continue
		}
		if author.IsCanonical(name) {
			result.Conforming++
			result.Lines = append(result.Lines, "OK   | "+name)
			continue
		}

		canon := author.Canonicalize(name)
		if author.IsCanonical(canon) {
			result.Lines = append(result.Lines, fmt.Sprintf("FIX  | %s -> %s", name, canon))
			if !s.dryRun {
				src := filepath.Join(s.root, name)
				dst := filepath.Join(s.root, canon)
				if _, err := os.Stat(dst); os.IsNotExist(err) {
					if err := os.Rename(src, dst); err != nil {
						return result, fmt.Errorf("rename %s: %w", name, err)
					}
				} else if _, err := s.MergeInto(src, dst); err != nil {
					return result, fmt.Errorf("merge %s: %w", name, err)
				}
			}
			result.Fixed++
			continue
		}

		marked := author.MarkOutlier(textutil.SafeName(name))
		result.Lines = append(result.Lines, fmt.Sprintf("FLAG | %s -> %s", name, marked))
		if !s.dryRun {
			dst := fileutil.EnsureUniqueDir(filepath.Join(s.root, marked))
			if err := os.Rename(filepath.Join(s.root, name), dst); err != nil {
				return result, fmt.Errorf("flag %s: %w", name, err)
			}
		}
		result.Flagged++
	}
	return result, nil
}

// Outcome strings recorded per outlier directory by ResolveOutliers.
const (
	actionNoBooks    = "no_epubs_found"
	actionNoEvidence = "no_authors_in_metadata"
)

// ResolveResult summarizes a resolution pass over outlier directories.
type ResolveResult struct {
	Outliers  int
	Resolved  int
	Ambiguous int
	Lines     []string
}

// ResolveOutliers re-examines every outlier-prefixed directory with a
// metadata vote. A confident winner moves the books into the canonical
// directory and removes the outlier; everything else stays marked with the
// outcome recorded for follow-up.
func (s *Service) ResolveOutliers(ctx context.Context, resolver *voting.Resolver) (ResolveResult, error) {
	var result ResolveResult

	names, err := s.authorDirs()
	if err != nil {
		return result, fmt.Errorf("list author directories: %w", err)
	}

	for _, name := range names {
		if !author.IsOutlier(name) {
			continue
		}
		result.Outliers++
		dir := filepath.Join(s.root, name)

		action, err := s.resolveOutlierDir(ctx, resolver, dir)
		if err != nil {
			return result, err
		}
		result.Lines = append(result.Lines, name+"\t"+action)
		if strings.HasPrefix(action, "moved_to:") {
			result.Resolved++
		} else if strings.HasPrefix(action, "ambiguous_authors:") {
			result.Ambiguous++
		}
	}
	return result, nil
}

func (s *Service) resolveOutlierDir(ctx context.Context, resolver *voting.Resolver, dir string) (string, error) {
	books, err := s.booksIn(dir)
	if err != nil {
		return "", fmt.Errorf("list books in %s: %w", dir, err)
	}
	if len(books) == 0 {
		return actionNoBooks, nil
	}

	decision, err := resolver.DecideOutlier(ctx, books)
	if err != nil {
		return "", fmt.Errorf("vote for %s: %w", dir, err)
	}

	switch decision.Outcome {
	case voting.OutcomeNoEvidence:
		return actionNoEvidence, nil
	case voting.OutcomeAmbiguous:
		return "ambiguous_authors:" + formatCounts(decision.Counts), nil
	}

	dest := filepath.Join(s.root, decision.Canonical)
	moved := 0
	if !s.dryRun {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", fmt.Errorf("create canonical directory %s: %w", dest, err)
		}
	}
	for _, book := range books {
		target := fileutil.EnsureUniquePath(filepath.Join(dest, filepath.Base(book)))
		if !s.dryRun {
			if err := fileutil.MoveFile(book, target); err != nil {
				return "", fmt.Errorf("move %s: %w", book, err)
			}
		}
		moved++
	}
	if !s.dryRun {
		s.pruneEmptyDirs(dir)
	}
	s.logger.Info("outlier resolved",
		logging.String(logging.FieldPath, dir),
		logging.String(logging.FieldAuthor, decision.Canonical),
		logging.Int(logging.FieldCount, moved),
	)
	return fmt.Sprintf("moved_to:%s:%d", decision.Canonical, moved), nil
}

func formatCounts(counts []voting.VoteCount) string {
	parts := make([]string, 0, len(counts))
	for _, vc := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", vc.Name, vc.Votes))
	}
	return strings.Join(parts, ",")
}
