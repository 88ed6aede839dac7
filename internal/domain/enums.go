package domain

import (
	"fmt"
	"strings"
)

// DocumentType is the closed set of CAD document kinds.
type DocumentType string

const (
	DocumentTypePart     DocumentType = "part"
	DocumentTypeAssembly DocumentType = "assembly"
	DocumentTypeDrawing  DocumentType = "drawing"
	DocumentTypeUnknown  DocumentType = "unknown"
)

// ParseDocumentType maps a string to a DocumentType. Unrecognized values map to DocumentTypeUnknown.
func ParseDocumentType(s string) DocumentType {
	switch DocumentType(strings.ToLower(strings.TrimSpace(s))) {
	case DocumentTypePart:
		return DocumentTypePart
	case DocumentTypeAssembly:
		return DocumentTypeAssembly
	case DocumentTypeDrawing:
		return DocumentTypeDrawing
	default:
		return DocumentTypeUnknown
	}
}

// In reports whether t is one of types.
func (t DocumentType) In(types ...DocumentType) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}

// ViewType identifies the kind of a drawing view.
type ViewType string

const (
	ViewTypeStandard  ViewType = "standard"
	ViewTypeProjected ViewType = "projected"
	ViewTypeAuxiliary ViewType = "auxiliary"
	ViewTypeSection   ViewType = "section"
	ViewTypeDetail    ViewType = "detail"
)

// SheetSize is a GOST 2.301 drawing sheet format. The ordinal order is the
// reference table order used by the classifier.
type SheetSize int

const (
	SheetSizeA0 SheetSize = iota
	SheetSizeA1
	SheetSizeA2
	SheetSizeA3
	SheetSizeA4
	SheetSizeA5
	SheetSizeA0x2
	SheetSizeA0x3
	SheetSizeA1x3
	SheetSizeA1x4
	SheetSizeA2x3
	SheetSizeA2x4
	SheetSizeA2x5
	SheetSizeA3x3
	SheetSizeA3x4
	SheetSizeA3x5
	SheetSizeA3x6
	SheetSizeA3x7
	SheetSizeA4x3
	SheetSizeA4x4
	SheetSizeA4x5
	SheetSizeA4x6
	SheetSizeA4x7
	SheetSizeA4x8
	SheetSizeA4x9
	SheetSizeNonStandard
)

// StandardSheetSizeCount is the number of standard formats, excluding SheetSizeNonStandard.
const StandardSheetSizeCount = int(SheetSizeNonStandard)

var sheetSizeNames = [...]string{
	"A0", "A1", "A2", "A3", "A4", "A5",
	"A0x2", "A0x3",
	"A1x3", "A1x4",
	"A2x3", "A2x4", "A2x5",
	"A3x3", "A3x4", "A3x5", "A3x6", "A3x7",
	"A4x3", "A4x4", "A4x5", "A4x6", "A4x7", "A4x8", "A4x9",
	"NonStandard",
}

// String returns the format name, e.g. "A4" or "A2x3".
func (s SheetSize) String() string {
	if !s.Valid() {
		return fmt.Sprintf("SheetSize(%d)", int(s))
	}
	return sheetSizeNames[s]
}

// Valid reports whether s is one of the declared formats, including SheetSizeNonStandard.
func (s SheetSize) Valid() bool {
	return s >= SheetSizeA0 && s <= SheetSizeNonStandard
}

// ParseSheetSize resolves a format name case-insensitively.
func ParseSheetSize(name string) (SheetSize, bool) {
	name = strings.TrimSpace(name)
	for i, n := range sheetSizeNames {
		if strings.EqualFold(n, name) {
			return SheetSize(i), true
		}
	}
	return SheetSizeNonStandard, false
}

// MarshalText encodes the format by name.
func (s SheetSize) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sheet size %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a format name.
func (s *SheetSize) UnmarshalText(text []byte) error {
	size, ok := ParseSheetSize(string(text))
	if !ok {
		return fmt.Errorf("unknown sheet size %q", string(text))
	}
	*s = size
	return nil
}
