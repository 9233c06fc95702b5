package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bindery/internal/config"
	"bindery/internal/inventory"
	"bindery/internal/logging"
)

// commandContext lazily loads configuration once per invocation and applies
// the path override flags on top of the file values.
type commandContext struct {
	configFlag  *string
	sourceFlag  *string
	libraryFlag *string
	outFlag     *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, sourceFlag, libraryFlag, outFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		sourceFlag:  sourceFlag,
		libraryFlag: libraryFlag,
		outFlag:     outFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	overrides := []struct {
		flag *string
		dst  *string
	}{
		{c.sourceFlag, &cfg.Paths.SourceDir},
		{c.libraryFlag, &cfg.Paths.LibraryDir},
		{c.outFlag, &cfg.Paths.ReportDir},
	}
	for _, o := range overrides {
		if o.flag == nil || strings.TrimSpace(*o.flag) == "" {
			continue
		}
		expanded, err := config.ExpandPath(*o.flag)
		if err != nil {
			return err
		}
		*o.dst = expanded
	}
	return cfg.Validate()
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) policy() inventory.Policy {
	cfg, err := c.ensureConfig()
	if err != nil {
		return inventory.NewPolicy([]string{".epub"}, nil, nil)
	}
	return inventory.NewPolicy(cfg.Library.Extensions, cfg.Library.SkipNames, cfg.Library.SkipExtensions)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
