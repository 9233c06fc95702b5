package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for %s", path)
	}
	if cfg.Resolver.MajorityThreshold != defaultMajorityThreshold {
		t.Fatalf("unexpected threshold %v", cfg.Resolver.MajorityThreshold)
	}
	if len(cfg.Library.Extensions) != 1 || cfg.Library.Extensions[0] != ".epub" {
		t.Fatalf("unexpected extensions %v", cfg.Library.Extensions)
	}
	if !filepath.IsAbs(cfg.Paths.SourceDir) {
		t.Fatalf("source dir not expanded: %s", cfg.Paths.SourceDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
source_dir = "` + filepath.Join(dir, "raw") + `"
library_dir = "` + filepath.Join(dir, "library") + `"

[library]
extensions = ["EPUB", " .azw3 "]

[resolver]
majority_threshold = 0.9

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if got := cfg.Library.Extensions; len(got) != 2 || got[0] != ".epub" || got[1] != ".azw3" {
		t.Fatalf("extensions not normalized: %v", got)
	}
	if cfg.Resolver.MajorityThreshold != 0.9 {
		t.Fatalf("threshold not applied: %v", cfg.Resolver.MajorityThreshold)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format not lowered: %q", cfg.Logging.Format)
	}
	if !cfg.BookExtension(".EPUB") {
		t.Fatal("BookExtension should be case-insensitive")
	}
	if cfg.BookExtension(".pdf") {
		t.Fatal(".pdf should not be a book extension")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "same source and library",
			body: "[paths]\nsource_dir = \"/tmp/same\"\nlibrary_dir = \"/tmp/same\"\n",
			want: "must differ",
		},
		{
			name: "threshold out of range",
			body: "[resolver]\nmajority_threshold = 1.5\n",
			want: "majority_threshold",
		},
		{
			name: "bad logging format",
			body: "[logging]\nformat = \"xml\"\n",
			want: "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error on second write")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[resolver]") {
		t.Fatal("sample missing resolver section")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/books")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "books") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	empty, err := ExpandPath("  ")
	if err != nil || empty != "" {
		t.Fatalf("blank path should expand to empty, got %q err %v", empty, err)
	}
}
