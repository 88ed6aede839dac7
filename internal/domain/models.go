package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is the capability set a CAD binding exposes for a single document.
type Document interface {
	FullFileName() string
	DisplayName() string
	DocumentType() DocumentType
	IsDirty() bool
	PartMaterial() Material
}

// DrawingDocument is a Document that carries drawing sheets.
type DrawingDocument interface {
	Document
	DrawingSheets() []*Sheet
}

// Material describes a part material. FullName joins name, assortment size and standard.
type Material struct {
	Name           string `json:"name"`
	AssortmentSize string `json:"assortment_size,omitempty"`
	Standard       string `json:"standard,omitempty"`
	Separator      string `json:"separator,omitempty"`
}

// NewMaterial creates a Material.
func NewMaterial(name, assortmentSize, standard, separator string) Material {
	return Material{Name: name, AssortmentSize: assortmentSize, Standard: standard, Separator: separator}
}

// FullName returns Name, AssortmentSize and Standard joined by Separator.
func (m Material) FullName() string {
	return m.Name + m.Separator + m.AssortmentSize + m.Separator + m.Standard
}

func (m Material) String() string {
	return m.FullName()
}

// View is a single view placed on a drawing sheet.
type View struct {
	Type        ViewType `json:"type"`
	Label       string   `json:"label,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Rotated     bool     `json:"rotated,omitempty"`
	FlatPattern bool     `json:"flat_pattern,omitempty"`
}

// Sheet is a drawing sheet as reported by the CAD binding. Dimensions are in millimeters.
// Size is classified once when the sheet is built and never changes.
type Sheet struct {
	Height    float64   `json:"height"`
	Width     float64   `json:"width"`
	Size      SheetSize `json:"size"`
	Landscape bool      `json:"landscape"`
	Views     []View    `json:"views,omitempty"`
}

// Record is the concrete document value used by adapters and the API.
type Record struct {
	FullPath string       `json:"full_file_name"`
	Name     string       `json:"display_name,omitempty"`
	Type     DocumentType `json:"type"`
	Dirty    bool         `json:"dirty,omitempty"`
	Material Material     `json:"material"`
	Sheets   []*Sheet     `json:"sheets,omitempty"`
}

func (r *Record) FullFileName() string { return r.FullPath }

// DisplayName falls back to the file name when no display name was reported.
func (r *Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return BaseName(r.FullPath)
}

func (r *Record) DocumentType() DocumentType { return r.Type }
func (r *Record) IsDirty() bool              { return r.Dirty }
func (r *Record) PartMaterial() Material     { return r.Material }
func (r *Record) DrawingSheets() []*Sheet    { return r.Sheets }

// BaseName returns the last element of a path, accepting both '/' and '\' separators.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SheetSizeEntry is one non-empty row of a sheet size tally.
type SheetSizeEntry struct {
	Size         SheetSize `json:"size"`
	Height       int       `json:"height"`
	Width        int       `json:"width"`
	Count        int       `json:"count"`
	A4Equivalent int       `json:"a4_equivalent"`
}

// SheetSizeReport is a persisted snapshot of a sheet size count.
type SheetSizeReport struct {
	ID            uuid.UUID        `json:"id"`
	DocumentCount int              `json:"document_count"`
	TotalSheets   int              `json:"total_sheets"`
	SummaryA4     int              `json:"summary_a4"`
	Entries       []SheetSizeEntry `json:"entries"`
	CreatedAt     time.Time        `json:"created_at"`
}
