// Package manifest provides documents described by a JSON manifest file, in
// place of a live CAD application binding.
//
//	{
//	  "documents": [
//	    {
//	      "path": "C:\\Projects\\Shaft.cdw",
//	      "type": "drawing",
//	      "sheets": [{"height": 297, "width": 210}]
//	    }
//	  ]
//	}
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"cadtools/internal/domain"
	"cadtools/internal/port"
	"cadtools/internal/sheetsize"
)

type manifestFile struct {
	Documents []Document `json:"documents"`
}

// Document is one manifest entry. Sheets carry raw dimensions only; their
// format is classified when the entry is turned into a record.
type Document struct {
	Path     string          `json:"path"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Dirty    bool            `json:"dirty"`
	Material domain.Material `json:"material"`
	Sheets   []Sheet         `json:"sheets"`
}

// Sheet is a drawing sheet entry in millimeters.
type Sheet struct {
	Height float64       `json:"height"`
	Width  float64       `json:"width"`
	Views  []domain.View `json:"views"`
}

// Record validates the entry and builds a record with classified sheets. The
// path is the collection key and is kept exactly as supplied, so a blank path
// or one with surrounding whitespace is rejected.
func (d Document) Record() (*domain.Record, error) {
	path := d.Path
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: document has no path", domain.ErrInvalidDocument)
	}
	if strings.TrimSpace(path) != path {
		return nil, fmt.Errorf("%w: path %q has surrounding whitespace", domain.ErrInvalidDocument, path)
	}
	rec := &domain.Record{
		FullPath: path,
		Name:     d.Name,
		Type:     ParseType(d.Type, path),
		Dirty:    d.Dirty,
		Material: d.Material,
	}
	for i, s := range d.Sheets {
		if s.Height <= 0 || s.Width <= 0 {
			return nil, fmt.Errorf("%w: %s sheet %d", domain.ErrInvalidDimensions, path, i+1)
		}
		rec.Sheets = append(rec.Sheets, sheetsize.NewSheet(s.Height, s.Width, s.Views...))
	}
	return rec, nil
}

// Provider reads documents from a manifest on disk. The file is re-read on
// every call so edits are picked up without a restart.
type Provider struct {
	path string
}

var _ port.DocumentProvider = (*Provider)(nil)

// New creates a Provider for the manifest at path.
func New(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Documents(ctx context.Context) ([]*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrManifestReadFailed, err)
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrManifestReadFailed, p.path, err)
	}
	return records, nil
}

// Decode parses a manifest. Sheets are classified as they are read; a document
// without a path or a sheet with non-positive dimensions rejects the manifest.
// Malformed JSON is reported as domain.ErrInvalidManifest.
func Decode(r io.Reader) ([]*domain.Record, error) {
	var m manifestFile
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}

	records := make([]*domain.Record, 0, len(m.Documents))
	for i, d := range m.Documents {
		rec, err := d.Record()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseType resolves a document type, falling back to the file extension used
// by the CAD application when the manifest leaves the type out.
func ParseType(typ, path string) domain.DocumentType {
	if t := domain.ParseDocumentType(typ); t != domain.DocumentTypeUnknown {
		return t
	}
	name := strings.ToLower(domain.BaseName(path))
	switch {
	case strings.HasSuffix(name, ".cdw"):
		return domain.DocumentTypeDrawing
	case strings.HasSuffix(name, ".m3d"):
		return domain.DocumentTypePart
	case strings.HasSuffix(name, ".a3d"):
		return domain.DocumentTypeAssembly
	default:
		return domain.DocumentTypeUnknown
	}
}
