package voting

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"bindery/internal/author"
	"bindery/internal/epubmeta"
	"bindery/internal/logging"
	"bindery/internal/textutil"
)

// Outcome classifies a voting decision.
type Outcome string

const (
	OutcomeResolved   Outcome = "resolved"
	OutcomeAmbiguous  Outcome = "ambiguous"
	OutcomeNoEvidence Outcome = "no_authors_in_metadata"
)

// Decision is the result of one vote.
type Decision struct {
	Outcome   Outcome
	Canonical string
	Votes     int
	Total     int
	Counts    []VoteCount
}

// Candidate is one directory competing in a pair vote.
type Candidate struct {
	Path  string
	Name  string
	Files []string
}

// Resolver runs metadata votes over candidate book files. Reads are
// parallelized with a bounded pool; the tally itself is built sequentially
// from the collected results.
type Resolver struct {
	reader    epubmeta.Reader
	workers   int
	threshold float64
	logger    *slog.Logger
}

// NewResolver constructs a Resolver. A nil reader panics early since every
// vote depends on it.
func NewResolver(reader epubmeta.Reader, workers int, threshold float64, logger *slog.Logger) *Resolver {
	if reader == nil {
		panic("voting: nil metadata reader")
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{reader: reader, workers: workers, threshold: threshold, logger: logger}
}

// Collect reads metadata from every file and tallies the author votes.
// Per-file read failures are logged and excluded from the vote.
func (r *Resolver) Collect(ctx context.Context, files []string) (*Tally, error) {
	results := make([][]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		g.Go(func() error {
			meta, err := r.reader.ReadMetadata(gctx, path)
			if err != nil {
				r.logger.Debug("metadata read failed, excluded from vote",
					logging.String(logging.FieldPath, path),
					logging.Error(err),
				)
				return nil
			}
			results[i] = meta.Authors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := NewTally()
	for _, authors := range results {
		for _, raw := range authors {
			tally.Add(raw)
		}
	}
	return tally, nil
}

// DecideOutlier votes over the files of a single outlier directory. The
// plurality winner is accepted only when it is the sole distinct identity or
// reaches the majority threshold; otherwise the directory stays ambiguous.
func (r *Resolver) DecideOutlier(ctx context.Context, files []string) (Decision, error) {
	tally, err := r.Collect(ctx, files)
	if err != nil {
		return Decision{}, err
	}
	if tally.Total() == 0 {
		return Decision{Outcome: OutcomeNoEvidence}, nil
	}

	winner, votes := tally.Winner()
	decision := Decision{
		Canonical: winner,
		Votes:     votes,
		Total:     tally.Total(),
		Counts:    tally.Counts(),
	}
	ratio := float64(votes) / float64(tally.Total())
	if tally.Distinct() == 1 || ratio >= r.threshold {
		decision.Outcome = OutcomeResolved
	} else {
		decision.Outcome = OutcomeAmbiguous
	}
	return decision, nil
}

// DecidePair votes over both candidates of a duplicate or reversed pair. The
// plurality winner is unconditional: both directories already agree
// structurally, so any metadata plurality settles the display form. With no
// metadata evidence at all, a deterministic name heuristic picks one of the
// two variants.
func (r *Resolver) DecidePair(ctx context.Context, a, b Candidate) (Decision, error) {
	files := make([]string, 0, len(a.Files)+len(b.Files))
	files = append(files, a.Files...)
	files = append(files, b.Files...)

	tally, err := r.Collect(ctx, files)
	if err != nil {
		return Decision{}, err
	}

	if tally.Total() == 0 {
		return Decision{
			Outcome:   OutcomeResolved,
			Canonical: author.Canonicalize(pickVariant(a, b).Name),
		}, nil
	}

	winner, votes := tally.Winner()
	return Decision{
		Outcome:   OutcomeResolved,
		Canonical: winner,
		Votes:     votes,
		Total:     tally.Total(),
		Counts:    tally.Counts(),
	}, nil
}

// pickVariant chooses between two name variants without metadata: the one
// whose left comma segment has the higher upper-case ratio (heuristically the
// true last name), then the one holding more files, then the first.
func pickVariant(a, b Candidate) Candidate {
	ra := leftUppercaseRatio(a.Name)
	rb := leftUppercaseRatio(b.Name)
	if ra > rb {
		return a
	}
	if rb > ra {
		return b
	}
	if len(b.Files) > len(a.Files) {
		return b
	}
	return a
}

func leftUppercaseRatio(name string) float64 {
	left := name
	if i := strings.Index(name, ","); i >= 0 {
		left = name[:i]
	}
	return textutil.UppercaseRatio(left)
}
