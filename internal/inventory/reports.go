package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	inventoryFile = "raw_inventory.json"
	authorsFile   = "raw_authors_raw.txt"
	summaryFile   = "raw_inventory_summary.txt"
)

// WriteReports persists the audit artifacts into outDir: the full inventory
// as JSON, the distinct raw author hints, and a human-readable summary.
func WriteReports(outDir string, entries []Entry) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, inventoryFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, authorsFile), []byte(authorsReport(entries)), 0o644); err != nil {
		return fmt.Errorf("write authors report: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, summaryFile), []byte(summaryReport(entries)), 0o644); err != nil {
		return fmt.Errorf("write summary report: %w", err)
	}
	return nil
}

func authorsReport(entries []Entry) string {
	counts := map[string]int{}
	for _, entry := range entries {
		if entry.AuthorHint != "" {
			counts[entry.AuthorHint]++
		}
	}
	authors := make([]string, 0, len(counts))
	for a := range counts {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	var b strings.Builder
	for _, a := range authors {
		fmt.Fprintf(&b, "%d\t%s\n", counts[a], a)
	}
	return b.String()
}

func summaryReport(entries []Entry) string {
	var totalSize int64
	bySource := map[string]int{}
	byExt := map[string]int{}
	hinted := 0
	for _, entry := range entries {
		totalSize += entry.Size
		byExt[entry.Extension]++
		if entry.HintSource != "" {
			hinted++
			bySource[entry.HintSource]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "files\t%d\n", len(entries))
	fmt.Fprintf(&b, "total_bytes\t%d\n", totalSize)
	fmt.Fprintf(&b, "with_author_hint\t%d\n", hinted)
	fmt.Fprintf(&b, "without_author_hint\t%d\n", len(entries)-hinted)
	for _, key := range sortedKeys(bySource) {
		fmt.Fprintf(&b, "hint_source\t%s\t%d\n", key, bySource[key])
	}
	for _, key := range sortedKeys(byExt) {
		fmt.Fprintf(&b, "extension\t%s\t%d\n", key, byExt[key])
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadEntries reads a previously written inventory back for planning.
func LoadEntries(outDir string) ([]Entry, error) {
	path := filepath.Join(outDir, inventoryFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory (run audit first): %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode inventory %s: %w", path, err)
	}
	return entries, nil
}
