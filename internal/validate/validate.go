package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"bindery/internal/author"
	"bindery/internal/inventory"
	"bindery/internal/textutil"
)

// Report is the read-only result of a validation run. Issues non-empty means
// at least one invariant is violated; the CLI exits non-zero in that case.
type Report struct {
	RawBooks     int
	LibraryBooks int
	Authors      int
	Outliers     int
	Letters      map[rune]int
	Issues       []string
}

// Options configures a validation run. RawRoot is optional; when set, the
// raw-vs-library book count comparison is included.
type Options struct {
	LibraryRoot string
	RawRoot     string
	Policy      inventory.Policy
}

// Run checks every library invariant without mutating anything.
func Run(opts Options) (Report, error) {
	report := Report{Letters: newLetterCounts()}

	entries, err := os.ReadDir(opts.LibraryRoot)
	if err != nil {
		return report, fmt.Errorf("read library root: %w", err)
	}

	var authorDirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			authorDirs = append(authorDirs, entry.Name())
		} else {
			report.Issues = append(report.Issues,
				fmt.Sprintf("unexpected file at library root: %s", entry.Name()))
		}
	}
	sort.Strings(authorDirs)
	report.Authors = len(authorDirs)

	report.checkAuthorDirs(authorDirs)

	for _, name := range authorDirs {
		count, err := report.checkBooks(opts, name)
		if err != nil {
			return report, err
		}
		report.LibraryBooks += count
	}

	if opts.RawRoot != "" {
		rawCount, err := inventory.CountBooks(opts.RawRoot, opts.Policy)
		if err != nil {
			return report, fmt.Errorf("count raw books: %w", err)
		}
		report.RawBooks = rawCount
		if report.LibraryBooks < rawCount {
			report.Issues = append(report.Issues,
				fmt.Sprintf("library holds fewer books than raw tree: %d < %d",
					report.LibraryBooks, rawCount))
		}
	}

	return report, nil
}

// checkAuthorDirs verifies the grammar, duplicate-key, and forbidden-char
// invariants over directory names and accumulates letter coverage.
func (r *Report) checkAuthorDirs(names []string) {
	groups := map[string][]string{}
	for _, name := range names {
		if author.IsOutlier(name) {
			r.Outliers++
		} else {
			if !author.IsCanonical(name) {
				r.Issues = append(r.Issues,
					fmt.Sprintf("author directory fails canonical grammar: %s", name))
			}
			groups[author.Key(name)] = append(groups[author.Key(name)], name)
		}
		if textutil.HasForbidden(name) {
			r.Issues = append(r.Issues,
				fmt.Sprintf("forbidden character in author directory: %s", name))
		}
		r.countInitial(name)
	}

	keys := make([]string, 0, len(groups))
	for key, dirs := range groups {
		if len(dirs) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.Issues = append(r.Issues,
			fmt.Sprintf("duplicate canonical key %q: %s", key, strings.Join(groups[key], ", ")))
	}
}

// checkBooks validates the files of one author directory and returns how
// many in-policy books it holds.
func (r *Report) checkBooks(opts Options, dirName string) (int, error) {
	dir := filepath.Join(opts.LibraryRoot, dirName)
	items, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read author directory %s: %w", dirName, err)
	}

	count := 0
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		if !opts.Policy.Include(name) {
			r.Issues = append(r.Issues,
				fmt.Sprintf("file outside extension policy: %s", filepath.Join(dirName, name)))
			continue
		}
		if textutil.HasForbidden(name) {
			r.Issues = append(r.Issues,
				fmt.Sprintf("forbidden character in filename: %s", filepath.Join(dirName, name)))
		}
		count++
	}
	return count, nil
}

// countInitial records the A-Z initial of the last-name segment for the
// coverage table.
func (r *Report) countInitial(name string) {
	last := name
	if i := strings.Index(name, ","); i >= 0 {
		last = name[:i]
	} else if fields := strings.Fields(name); len(fields) > 0 {
		last = fields[0]
	}
	last = strings.TrimSpace(last)
	if last == "" {
		return
	}
	decomposed := norm.NFKD.String(last)
	for _, ch := range decomposed {
		upper := unicode.ToUpper(ch)
		if upper >= 'A' && upper <= 'Z' {
			r.Letters[upper]++
		}
		break
	}
}

func newLetterCounts() map[rune]int {
	counts := make(map[rune]int, 26)
	for ch := 'A'; ch <= 'Z'; ch++ {
		counts[ch] = 0
	}
	return counts
}

// Coverage renders the per-letter counts as a stable "A:0, B:3, …" line.
func (r Report) Coverage() string {
	parts := make([]string, 0, 26)
	for ch := 'A'; ch <= 'Z'; ch++ {
		parts = append(parts, fmt.Sprintf("%c:%d", ch, r.Letters[ch]))
	}
	return strings.Join(parts, ", ")
}

// WriteReport persists the detailed validation report.
func WriteReport(outDir string, report Report) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	var b strings.Builder
	if report.RawBooks > 0 {
		fmt.Fprintf(&b, "RAW ebooks: %d\n", report.RawBooks)
	}
	fmt.Fprintf(&b, "Authors: %d\n", report.Authors)
	fmt.Fprintf(&b, "Outliers: %d\n", report.Outliers)
	fmt.Fprintf(&b, "Library ebooks: %d\n", report.LibraryBooks)
	b.WriteString("Author last-name initial coverage:\n")
	b.WriteString(report.Coverage())
	b.WriteByte('\n')
	if len(report.Issues) > 0 {
		b.WriteString("\nIssues:\n")
		for _, issue := range report.Issues {
			b.WriteString(issue)
			b.WriteByte('\n')
		}
	}

	path := filepath.Join(outDir, "validation_report.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write validation report: %w", err)
	}
	return nil
}
