package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/manifest"
)

// Options configures one execution run.
type Options struct {
	VerifyHash bool
	DryRun     bool
}

// Result summarizes an execution run.
type Result struct {
	RunID          string
	Copied         int
	Skipped        int
	Missing        int
	Failed         int
	AuthorsCreated int
}

// Executor consumes planned manifest entries and performs the collision-safe
// transfers. It is the only component that mutates the library tree during
// ingestion.
type Executor struct {
	store  *manifest.Store
	opts   Options
	logger *slog.Logger
}

// New constructs an Executor.
func New(store *manifest.Store, opts Options, logger *slog.Logger) *Executor {
	return &Executor{
		store:  store,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "executor"),
	}
}

// Run processes every planned entry, writing one transfer log line per entry
// plus a terminating summary. Per-item filesystem failures are recorded and
// the batch continues.
func (e *Executor) Run(ctx context.Context, transferLog io.Writer) (Result, error) {
	entries, err := e.store.Pending(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load pending entries: %w", err)
	}

	result := Result{RunID: uuid.NewString()}
	e.logger.Info("execution started",
		logging.String(logging.FieldRunID, result.RunID),
		logging.Int(logging.FieldCount, len(entries)),
		logging.Bool("dry_run", e.opts.DryRun),
	)

	createdAuthors := map[string]struct{}{}
	reserved := map[string]struct{}{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		status, finalPath, itemErr := e.processEntry(entry, createdAuthors, reserved)

		logLine(transferLog, string(status), entry.SourcePath, finalPath)
		switch status {
		case manifest.StatusCopied:
			result.Copied++
		case manifest.StatusSkipped:
			result.Skipped++
		case manifest.StatusMissing:
			result.Missing++
		case manifest.StatusFailed:
			result.Failed++
			e.logger.Warn("transfer failed",
				logging.String(logging.FieldPath, entry.SourcePath),
				logging.Error(itemErr),
			)
		}

		if e.opts.DryRun {
			continue
		}
		errMsg := ""
		if itemErr != nil {
			errMsg = itemErr.Error()
		}
		if err := e.store.MarkResult(ctx, entry.ID, status, finalPath, errMsg); err != nil {
			return result, fmt.Errorf("record result for %s: %w", entry.SourcePath, err)
		}
	}

	result.AuthorsCreated = len(createdAuthors)
	fmt.Fprintf(transferLog, "SUMMARY\tcopied=%d\tskipped=%d\tauthors_created=%d\n",
		result.Copied, result.Skipped, result.AuthorsCreated)

	e.logger.Info("execution finished",
		logging.String(logging.FieldRunID, result.RunID),
		logging.Int("copied", result.Copied),
		logging.Int("skipped", result.Skipped),
		logging.Int("missing", result.Missing),
		logging.Int("failed", result.Failed),
	)
	return result, nil
}

// processEntry executes a single transfer and reports its terminal status.
// reserved tracks final paths already claimed during this run, so dry runs
// predict the same suffixed names a real run would produce when several
// planned entries share a target.
func (e *Executor) processEntry(entry manifest.Entry, createdAuthors, reserved map[string]struct{}) (manifest.Status, string, error) {
	srcInfo, err := os.Stat(entry.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return manifest.StatusMissing, "", nil
		}
		return manifest.StatusFailed, "", fmt.Errorf("stat source: %w", err)
	}

	target := entry.TargetPath
	if _, err := os.Stat(target); err == nil {
		same, cmpErr := fileutil.SameContent(entry.SourcePath, target, e.opts.VerifyHash)
		if cmpErr != nil {
			return manifest.StatusFailed, "", fmt.Errorf("compare with existing target: %w", cmpErr)
		}
		if same {
			return manifest.StatusSkipped, target, nil
		}
	}
	target = freeTarget(target, reserved)
	reserved[target] = struct{}{}

	if e.opts.DryRun {
		return manifest.StatusCopied, target, nil
	}

	authorDir := filepath.Dir(target)
	if _, err := os.Stat(authorDir); os.IsNotExist(err) {
		createdAuthors[authorDir] = struct{}{}
	}
	if err := os.MkdirAll(authorDir, 0o755); err != nil {
		return manifest.StatusFailed, "", fmt.Errorf("create author directory: %w", err)
	}

	copyFn := fileutil.CopyFile
	if e.opts.VerifyHash {
		copyFn = fileutil.CopyFileVerified
	}
	if err := copyFn(entry.SourcePath, target); err != nil {
		return manifest.StatusFailed, "", fmt.Errorf("copy: %w", err)
	}
	if err := fileutil.CopyTimestamps(srcInfo, target); err != nil {
		e.logger.Debug("timestamp copy failed",
			logging.String(logging.FieldPath, target),
			logging.Error(err),
		)
	}
	return manifest.StatusCopied, target, nil
}

// freeTarget returns the first suffixed candidate that neither exists on
// disk nor has been claimed earlier in this run.
func freeTarget(path string, reserved map[string]struct{}) string {
	taken := func(p string) bool {
		if _, ok := reserved[p]; ok {
			return true
		}
		_, err := os.Stat(p)
		return err == nil
	}
	if !taken(path) {
		return path
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for counter := 2; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if !taken(candidate) {
			return candidate
		}
	}
}

func logLine(w io.Writer, status, source, final string) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", status, source, final)
}

// OpenTransferLog opens the append-only transfer log inside logDir.
func OpenTransferLog(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(logDir, "transfer.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transfer log: %w", err)
	}
	return file, nil
}
