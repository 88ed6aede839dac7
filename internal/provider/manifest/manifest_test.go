package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadtools/internal/domain"
)

const sample = `{
  "documents": [
    {
      "path": "C:\\Projects\\Shaft.cdw",
      "sheets": [
        {"height": 297, "width": 210},
        {"height": 297, "width": 420, "views": [{"type": "section", "label": "A-A"}]}
      ]
    },
    {
      "path": "/projects/shaft.m3d",
      "material": {"name": "Steel 45", "standard": "GOST 1050", "separator": " "}
    },
    {"path": "/projects/notes.txt", "type": "Assembly"}
  ]
}`

func TestDecode(t *testing.T) {
	records, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, records, 3)

	drawing := records[0]
	assert.Equal(t, domain.DocumentTypeDrawing, drawing.Type)
	assert.Equal(t, "Shaft.cdw", drawing.DisplayName())
	require.Len(t, drawing.Sheets, 2)
	assert.Equal(t, domain.SheetSizeA4, drawing.Sheets[0].Size)
	assert.False(t, drawing.Sheets[0].Landscape)
	assert.Equal(t, domain.SheetSizeA3, drawing.Sheets[1].Size)
	assert.True(t, drawing.Sheets[1].Landscape)
	require.Len(t, drawing.Sheets[1].Views, 1)
	assert.Equal(t, domain.ViewTypeSection, drawing.Sheets[1].Views[0].Type)

	part := records[1]
	assert.Equal(t, domain.DocumentTypePart, part.Type)
	assert.Equal(t, "Steel 45  GOST 1050", part.PartMaterial().FullName())

	assert.Equal(t, domain.DocumentTypeAssembly, records[2].Type)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"malformed", `{"documents": [`, domain.ErrInvalidManifest},
		{"not json", `{not json`, domain.ErrInvalidManifest},
		{"missing path", `{"documents": [{"path": "  "}]}`, domain.ErrInvalidDocument},
		{"padded path", `{"documents": [{"path": " /p/a.cdw"}]}`, domain.ErrInvalidDocument},
		{"zero width", `{"documents": [{"path": "a.cdw", "sheets": [{"height": 297, "width": 0}]}]}`, domain.ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProvider_Documents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	records, err := New(path).Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestProvider_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := New(path).Documents(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
	assert.NotErrorIs(t, err, domain.ErrInvalidManifest)
}

func TestProvider_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.json")).Documents(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestParseType(t *testing.T) {
	assert.Equal(t, domain.DocumentTypeDrawing, ParseType("", "x/Plate.CDW"))
	assert.Equal(t, domain.DocumentTypeAssembly, ParseType("", `C:\a\Unit.a3d`))
	assert.Equal(t, domain.DocumentTypePart, ParseType("part", "whatever.cdw"))
	assert.Equal(t, domain.DocumentTypeUnknown, ParseType("", "readme.md"))
}

func TestDocument_Record(t *testing.T) {
	rec, err := Document{
		Path:   "/p/Plate.cdw",
		Sheets: []Sheet{{Height: 594, Width: 841}},
	}.Record()
	require.NoError(t, err)
	assert.Equal(t, "/p/Plate.cdw", rec.FullPath)
	assert.Equal(t, domain.DocumentTypeDrawing, rec.Type)
	assert.Equal(t, domain.SheetSizeA1, rec.Sheets[0].Size)

	_, err = Document{Path: "/p/plate.cdw", Sheets: []Sheet{{Height: -1, Width: 10}}}.Record()
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = Document{Path: " /p/plate.cdw "}.Record()
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}
