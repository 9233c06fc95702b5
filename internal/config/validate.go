package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.LibraryDir {
		return errors.New("paths.source_dir and paths.library_dir must differ")
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.MajorityThreshold <= 0 || c.Resolver.MajorityThreshold > 1 {
		return fmt.Errorf("resolver.majority_threshold must be in (0, 1], got %v", c.Resolver.MajorityThreshold)
	}
	if c.Resolver.MetadataWorkers < 1 {
		return fmt.Errorf("resolver.metadata_workers must be positive, got %d", c.Resolver.MetadataWorkers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
