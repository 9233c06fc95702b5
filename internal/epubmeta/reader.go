package epubmeta

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Metadata carries the identity fields read from a book file. Authors may be
// empty; the resolver treats missing evidence as a valid outcome.
type Metadata struct {
	Title   string
	Authors []string
}

// Reader extracts identity metadata from a book file. Implementations must
// treat unreadable files as errors, not panics; callers exclude failures
// from voting rather than aborting.
type Reader interface {
	ReadMetadata(ctx context.Context, path string) (Metadata, error)
}

// OPFReader reads EPUB metadata from the OPF package document inside the
// zip container.
type OPFReader struct{}

// NewReader returns the default EPUB metadata reader.
func NewReader() *OPFReader {
	return &OPFReader{}
}

type containerDoc struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
	} `xml:"metadata"`
}

// ReadMetadata opens the EPUB at p and returns its Dublin Core title and
// creator entries.
func (r *OPFReader) ReadMetadata(ctx context.Context, p string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	zr, err := zip.OpenReader(p)
	if err != nil {
		return Metadata{}, fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	opfPath, err := findPackagePath(&zr.Reader)
	if err != nil {
		return Metadata{}, err
	}
	doc, err := readPackage(&zr.Reader, opfPath)
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{}
	for _, t := range doc.Metadata.Titles {
		if title := strings.TrimSpace(t); title != "" {
			meta.Title = title
			break
		}
	}
	for _, c := range doc.Metadata.Creators {
		if creator := strings.TrimSpace(c); creator != "" {
			meta.Authors = append(meta.Authors, creator)
		}
	}
	return meta, nil
}

// findPackagePath resolves the OPF location from META-INF/container.xml,
// falling back to the first .opf entry for containers that omit it.
func findPackagePath(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if f.Name != "META-INF/container.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		var c containerDoc
		decodeErr := xml.NewDecoder(rc).Decode(&c)
		rc.Close()
		if decodeErr == nil {
			for _, rf := range c.Rootfiles {
				if strings.TrimSpace(rf.FullPath) != "" {
					return path.Clean(rf.FullPath), nil
				}
			}
		}
		break
	}
	for _, f := range zr.File {
		if strings.EqualFold(path.Ext(f.Name), ".opf") {
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("no package document found")
}

func readPackage(zr *zip.Reader, opfPath string) (packageDoc, error) {
	var doc packageDoc
	for _, f := range zr.File {
		if path.Clean(f.Name) != opfPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return doc, fmt.Errorf("open package document: %w", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return doc, fmt.Errorf("read package document: %w", err)
		}
		if err := xml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("parse package document: %w", err)
		}
		return doc, nil
	}
	return doc, fmt.Errorf("package document %s missing from container", opfPath)
}
