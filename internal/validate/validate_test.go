package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindery/internal/inventory"
)

func testPolicy() inventory.Policy {
	return inventory.NewPolicy(
		[]string{".epub"},
		[]string{"metadata.opf", "cover.jpg", "cover.png"},
		[]string{".opf", ".nfo", ".html", ".jpg", ".jpeg", ".png", ".mobi", ".pdf"},
	)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCleanLibrary(t *testing.T) {
	library := t.TempDir()
	writeFile(t, filepath.Join(library, "VERNE, Jules", "Vingt mille lieues.epub"))
	writeFile(t, filepath.Join(library, "ZOLA, Émile", "Germinal.epub"))
	writeFile(t, filepath.Join(library, "__OUTLIER__ Mystery", "book.epub"))

	report, err := Run(Options{LibraryRoot: library, Policy: testPolicy()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("clean library reported issues: %v", report.Issues)
	}
	if report.Authors != 3 || report.Outliers != 1 || report.LibraryBooks != 3 {
		t.Fatalf("report = %+v", report)
	}
	if report.Letters['V'] != 1 {
		t.Fatalf("V coverage = %d", report.Letters['V'])
	}
	// É decomposes to E for coverage purposes.
	if report.Letters['Z'] != 1 {
		t.Fatalf("Z coverage = %d", report.Letters['Z'])
	}
}

func TestRunDetectsViolations(t *testing.T) {
	library := t.TempDir()
	writeFile(t, filepath.Join(library, "loose.epub"))
	writeFile(t, filepath.Join(library, "not canonical at all", "a.epub"))
	writeFile(t, filepath.Join(library, "VERNE, Jules", "a.epub"))
	writeFile(t, filepath.Join(library, "verne, jules", "b.epub"))
	writeFile(t, filepath.Join(library, "DUMAS, Alexandre", "notes.pdf"))

	report, err := Run(Options{LibraryRoot: library, Policy: testPolicy()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantFragments := []string{
		"unexpected file at library root",
		"fails canonical grammar",
		"duplicate canonical key",
		"outside extension policy",
	}
	joined := strings.Join(report.Issues, "\n")
	for _, fragment := range wantFragments {
		if !strings.Contains(joined, fragment) {
			t.Errorf("missing issue %q in:\n%s", fragment, joined)
		}
	}
}

func TestRunRawComparison(t *testing.T) {
	raw := t.TempDir()
	writeFile(t, filepath.Join(raw, "a", "one.epub"))
	writeFile(t, filepath.Join(raw, "b", "two.epub"))

	library := t.TempDir()
	writeFile(t, filepath.Join(library, "VERNE, Jules", "one.epub"))

	report, err := Run(Options{LibraryRoot: library, RawRoot: raw, Policy: testPolicy()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.RawBooks != 2 || report.LibraryBooks != 1 {
		t.Fatalf("counts = %+v", report)
	}
	if !strings.Contains(strings.Join(report.Issues, "\n"), "fewer books than raw tree") {
		t.Fatalf("count mismatch not reported: %v", report.Issues)
	}
}

func TestWriteReport(t *testing.T) {
	library := t.TempDir()
	writeFile(t, filepath.Join(library, "VERNE, Jules", "a.epub"))

	report, err := Run(Options{LibraryRoot: library, Policy: testPolicy()})
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	if err := WriteReport(out, report); err != nil {
		t.Fatalf("write report: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "validation_report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "V:1") {
		t.Fatalf("coverage missing: %q", data)
	}
}
