package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	manifestFile   = "manifest.tsv"
	mappingFile    = "author_mapping.tsv"
	collisionsFile = "collisions.tsv"
)

// WriteReports persists the plan's human-facing artifacts into outDir. The
// binding copy of the plan lives in the manifest store; these files exist for
// review before execute.
func WriteReports(outDir string, plan Plan) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	var m strings.Builder
	m.WriteString("source_path\ttarget_path\tauthor\treasons\n")
	for _, entry := range plan.Entries {
		fmt.Fprintf(&m, "%s\t%s\t%s\t%s\n",
			entry.SourcePath, entry.TargetPath, entry.Author, strings.Join(entry.Reasons, ","))
	}
	if err := os.WriteFile(filepath.Join(outDir, manifestFile), []byte(m.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest report: %w", err)
	}

	var a strings.Builder
	a.WriteString("raw\tcanonical\tsource\n")
	for _, mapping := range plan.Authors {
		fmt.Fprintf(&a, "%s\t%s\t%s\n", mapping.Raw, mapping.Canonical, mapping.Source)
	}
	if err := os.WriteFile(filepath.Join(outDir, mappingFile), []byte(a.String()), 0o644); err != nil {
		return fmt.Errorf("write author mapping: %w", err)
	}

	var c strings.Builder
	c.WriteString("target_path\tsources\n")
	for _, collision := range plan.Collisions {
		fmt.Fprintf(&c, "%s\t%s\n", collision.TargetPath, strings.Join(collision.Sources, ","))
	}
	if err := os.WriteFile(filepath.Join(outDir, collisionsFile), []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("write collision report: %w", err)
	}
	return nil
}
