package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for the pipeline.
type Paths struct {
	SourceDir  string `toml:"source_dir"`
	LibraryDir string `toml:"library_dir"`
	ReportDir  string `toml:"report_dir"`
	LogDir     string `toml:"log_dir"`
	AliasFile  string `toml:"alias_file"`
}

// Library contains the book file policy applied during scans and sanitation.
type Library struct {
	Extensions     []string `toml:"extensions"`
	SkipNames      []string `toml:"skip_names"`
	SkipExtensions []string `toml:"skip_extensions"`
}

// Resolver contains the metadata voting parameters.
type Resolver struct {
	// MajorityThreshold is the vote ratio required to resolve an outlier
	// directory. Heuristic constant carried from field use; tune against
	// real libraries rather than trusting it.
	MajorityThreshold float64 `toml:"majority_threshold"`
	MetadataWorkers   int     `toml:"metadata_workers"`
}

// Executor contains transfer behavior settings.
type Executor struct {
	// VerifyHash compares SHA256 digests instead of sizes when deciding
	// whether a target file is already present. Slower, safer.
	VerifyHash bool `toml:"verify_hash"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bindery.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Library  Library  `toml:"library"`
	Resolver Resolver `toml:"resolver"`
	Executor Executor `toml:"executor"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/bindery/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bindery.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the report and log directories. The library
// directory is created best-effort so read-only phases can run while the
// target volume is absent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if c.Paths.LibraryDir != "" {
		_ = os.MkdirAll(c.Paths.LibraryDir, 0o755)
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// BookExtension reports whether ext (including the dot, any case) is within
// the configured book file policy.
func (c *Config) BookExtension(ext string) bool {
	lowered := strings.ToLower(ext)
	for _, allowed := range c.Library.Extensions {
		if lowered == allowed {
			return true
		}
	}
	return false
}

// ExpandPath resolves ~ and environment variables inside a path value.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	expanded := os.ExpandEnv(trimmed)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if expanded == "~" {
			expanded = home
		} else {
			expanded = filepath.Join(home, expanded[2:])
		}
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
