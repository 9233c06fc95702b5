package inventory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPolicy() Policy {
	return NewPolicy(
		[]string{".epub"},
		[]string{"metadata.opf", "cover.jpg", "cover.png"},
		[]string{".opf", ".nfo", ".html", ".jpg", ".jpeg", ".png", ".mobi", ".pdf"},
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPolicyInclude(t *testing.T) {
	policy := testPolicy()
	tests := []struct {
		name string
		want bool
	}{
		{"Germinal.epub", true},
		{"Germinal.EPUB", true},
		{"cover.jpg", false},
		{"metadata.opf", false},
		{"notes.pdf", false},
		{"readme.txt", false},
	}
	for _, tc := range tests {
		if got := policy.Include(tc.name); got != tc.want {
			t.Errorf("Include(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScanExtractsHints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Jules Verne", "[Jules Verne]_Vingt mille lieues sous les mers.epub"), "a")
	writeFile(t, filepath.Join(root, "misc", "Germinal - Zola, Emile.epub"), "bb")
	writeFile(t, filepath.Join(root, "misc", "cover.jpg"), "x")
	writeFile(t, filepath.Join(root, "misc", "book.pdf"), "x")

	entries, err := Scan(context.Background(), root, testPolicy(), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	verne := entries[0]
	if verne.AuthorHint != "Jules Verne" {
		t.Fatalf("bracket hint not extracted: %+v", verne)
	}
	if verne.TitleHint != "Vingt mille lieues sous les mers" {
		t.Fatalf("title hint wrong: %q", verne.TitleHint)
	}
	if verne.HintSource != "filename" {
		t.Fatalf("hint source wrong: %q", verne.HintSource)
	}
	if verne.Extension != ".epub" || verne.Size != 1 {
		t.Fatalf("file attributes wrong: %+v", verne)
	}

	zola := entries[1]
	if zola.AuthorHint != "Zola, Emile" {
		t.Fatalf("dash hint not extracted: %+v", zola)
	}
}

func TestScanSortedAndRelative(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "z.epub"), "z")
	writeFile(t, filepath.Join(root, "a", "y.epub"), "y")

	entries, err := Scan(context.Background(), root, testPolicy(), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RelPath != filepath.Join("a", "y.epub") {
		t.Fatalf("entries not sorted: %+v", entries)
	}
}

func TestWriteAndLoadReports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hugo, Victor", "Les Miserables.epub"), "abc")
	writeFile(t, filepath.Join(root, "Hugo, Victor", "Notre-Dame.epub"), "de")

	entries, err := Scan(context.Background(), root, testPolicy(), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	out := t.TempDir()
	if err := WriteReports(out, entries); err != nil {
		t.Fatalf("write reports: %v", err)
	}

	loaded, err := LoadEntries(out)
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(loaded) != len(entries) {
		t.Fatalf("round trip lost entries: %d != %d", len(loaded), len(entries))
	}
	if loaded[0].AuthorHint != "Hugo, Victor" {
		t.Fatalf("parent dir hint lost: %+v", loaded[0])
	}

	authors, err := os.ReadFile(filepath.Join(out, "raw_authors_raw.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(authors), "2\tHugo, Victor") {
		t.Fatalf("authors report wrong: %q", authors)
	}

	summary, err := os.ReadFile(filepath.Join(out, "raw_inventory_summary.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(summary), "files\t2") {
		t.Fatalf("summary wrong: %q", summary)
	}
}

func TestLoadEntriesMissing(t *testing.T) {
	if _, err := LoadEntries(t.TempDir()); err == nil {
		t.Fatal("expected error when inventory missing")
	}
}

func TestCountBooks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "x.epub"), "x")
	writeFile(t, filepath.Join(root, "a", "cover.jpg"), "x")
	writeFile(t, filepath.Join(root, "b", "y.epub"), "y")

	n, err := CountBooks(root, testPolicy())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 books, got %d", n)
	}
}
