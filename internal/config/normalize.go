package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeResolver()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.AliasFile, err = expandPath(c.Paths.AliasFile); err != nil {
		return fmt.Errorf("paths.alias_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	c.Library.Extensions = normalizeExtensions(c.Library.Extensions, []string{".epub"})
	c.Library.SkipExtensions = normalizeExtensions(c.Library.SkipExtensions, nil)
	names := make([]string, 0, len(c.Library.SkipNames))
	for _, name := range c.Library.SkipNames {
		if trimmed := strings.ToLower(strings.TrimSpace(name)); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	c.Library.SkipNames = names
}

func (c *Config) normalizeResolver() {
	if c.Resolver.MajorityThreshold <= 0 {
		c.Resolver.MajorityThreshold = defaultMajorityThreshold
	}
	if c.Resolver.MetadataWorkers <= 0 {
		c.Resolver.MetadataWorkers = defaultMetadataWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExtensions(values []string, fallback []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
