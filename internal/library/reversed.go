package library

import (
	"context"
	"fmt"
	"path/filepath"

	"bindery/internal/identity"
	"bindery/internal/logging"
	"bindery/internal/voting"
)

// ReversedPairs finds author directories whose comma-separated name tokens
// are transpositions of each other. Pair order is deterministic.
func (s *Service) ReversedPairs() ([]identity.ReversedPair, error) {
	names, err := s.authorDirs()
	if err != nil {
		return nil, fmt.Errorf("list author directories: %w", err)
	}
	return identity.FindReversedPairs(names), nil
}

// MergeResult summarizes a reversed-pair consolidation pass.
type MergeResult struct {
	Pairs  int
	Merged int
	Lines  []string
}

// MergeReversedPairs consolidates every reversed pair into the identity the
// metadata vote picks. The winner is unconditional for pairs; with no
// metadata at all, the name heuristic decides.
func (s *Service) MergeReversedPairs(ctx context.Context, resolver *voting.Resolver) (MergeResult, error) {
	var result MergeResult

	pairs, err := s.ReversedPairs()
	if err != nil {
		return result, err
	}
	result.Pairs = len(pairs)

	for _, pair := range pairs {
		dirA := filepath.Join(s.root, pair.A)
		dirB := filepath.Join(s.root, pair.B)

		booksA, err := s.booksIn(dirA)
		if err != nil {
			return result, fmt.Errorf("list books in %s: %w", dirA, err)
		}
		booksB, err := s.booksIn(dirB)
		if err != nil {
			return result, fmt.Errorf("list books in %s: %w", dirB, err)
		}

		decision, err := resolver.DecidePair(ctx,
			voting.Candidate{Path: dirA, Name: pair.A, Files: booksA},
			voting.Candidate{Path: dirB, Name: pair.B, Files: booksB},
		)
		if err != nil {
			return result, fmt.Errorf("vote for pair %s / %s: %w", pair.A, pair.B, err)
		}

		dest := filepath.Join(s.root, decision.Canonical)
		moved := 0
		for _, dir := range []string{dirA, dirB} {
			if dir == dest {
				continue
			}
			n, err := s.MergeInto(dir, dest)
			if err != nil {
				return result, fmt.Errorf("merge %s into %s: %w", dir, dest, err)
			}
			moved += n
		}

		result.Merged++
		result.Lines = append(result.Lines,
			fmt.Sprintf("%s + %s -> %s (%d items)", pair.A, pair.B, decision.Canonical, moved))
		s.logger.Info("reversed pair merged",
			logging.String(logging.FieldAuthor, decision.Canonical),
			logging.Int(logging.FieldCount, moved),
		)
	}
	return result, nil
}
