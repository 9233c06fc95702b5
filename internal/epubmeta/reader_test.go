package epubmeta

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const packageOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Vingt mille lieues sous les mers</dc:title>
    <dc:creator>Jules Verne</dc:creator>
    <dc:creator>  </dc:creator>
  </metadata>
</package>`

func writeEPUB(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write epub: %v", err)
	}
}

func TestReadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	writeEPUB(t, path, map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": containerXML,
		"OEBPS/content.opf":      packageOPF,
	})

	meta, err := NewReader().ReadMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta.Title != "Vingt mille lieues sous les mers" {
		t.Fatalf("title = %q", meta.Title)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Jules Verne" {
		t.Fatalf("authors = %v", meta.Authors)
	}
}

func TestReadMetadataWithoutContainerXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	writeEPUB(t, path, map[string]string{
		"OEBPS/content.opf": packageOPF,
	})

	meta, err := NewReader().ReadMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Jules Verne" {
		t.Fatalf("authors = %v", meta.Authors)
	}
}

func TestReadMetadataNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader().ReadMetadata(context.Background(), path); err == nil {
		t.Fatal("expected error for a non-zip file")
	}
}

func TestReadMetadataMissingPackage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.epub")
	writeEPUB(t, path, map[string]string{
		"mimetype": "application/epub+zip",
	})
	if _, err := NewReader().ReadMetadata(context.Background(), path); err == nil {
		t.Fatal("expected error when no package document exists")
	}
}
