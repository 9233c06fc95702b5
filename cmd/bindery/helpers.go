package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/epubmeta"
	"bindery/internal/library"
	"bindery/internal/runlock"
	"bindery/internal/voting"
)

// newResolver builds a metadata voting resolver from the loaded config.
func newResolver(ctx *commandContext) (*voting.Resolver, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return voting.NewResolver(
		epubmeta.NewReader(),
		cfg.Resolver.MetadataWorkers,
		cfg.Resolver.MajorityThreshold,
		logger,
	), nil
}

// newLibraryService builds the library mutation service.
func newLibraryService(ctx *commandContext, dryRun bool) (*library.Service, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return library.New(cfg.Paths.LibraryDir, ctx.policy(), dryRun, logger), nil
}

// withLibraryLock runs fn holding the library lock. Dry runs read the tree
// without mutating, so they skip locking and never block on a live run. The
// lock file sits in the report directory; the library root stays free of
// pipeline artifacts.
func withLibraryLock(ctx *commandContext, dryRun bool, fn func() error) error {
	if dryRun {
		return fn()
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := runlock.Acquire(cfg.Paths.ReportDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	return fn()
}

// writeReportLines writes one report line per element into the report dir.
func writeReportLines(ctx *commandContext, name string, lines []string) (string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	path := filepath.Join(cfg.Paths.ReportDir, name)
	body := strings.Join(lines, "\n")
	if body != "" {
		body += "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
