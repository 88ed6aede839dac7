package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cadtools/internal/provider/manifest"
	"cadtools/internal/service"
)

const docs = `{"documents": [
	{"path": "/p/shaft.cdw", "sheets": [{"height": 297, "width": 210}, {"height": 297, "width": 420}]},
	{"path": "/p/cover.cdw", "sheets": [{"height": 297, "width": 210}]},
	{"path": "/p/shaft.m3d"}
]}`

func TestCountAndPrint(t *testing.T) {
	records, err := manifest.Decode(strings.NewReader(docs))
	require.NoError(t, err)

	report := count(records, zap.NewNop())
	assert.Equal(t, 2, report.DocumentCount)
	assert.Equal(t, 3, report.TotalSheets)
	assert.Equal(t, 4, report.SummaryA4)

	var out bytes.Buffer
	require.NoError(t, printReport(&out, report))
	assert.Equal(t, "A3: 1\nA4: 2\nDrawings: 2, sheets: 3, A4 equivalent: 4\n", out.String())
}

func TestWriteExport(t *testing.T) {
	records, err := manifest.Decode(strings.NewReader(docs))
	require.NoError(t, err)
	report := count(records, zap.NewNop())

	path := filepath.Join(t.TempDir(), "sheets.csv")
	require.NoError(t, writeExport(path, report, service.FormatCSV))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Total,,,3,4")
}

func TestExportTargets(t *testing.T) {
	targets, err := exportTargets(options{csvPath: "out/sheets.csv", xlsxPath: "out/sheets.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []exportTarget{
		{"out/sheets.xlsx", service.FormatXLSX},
		{"out/sheets.csv", service.FormatCSV},
	}, targets)

	targets, err = exportTargets(options{csvPath: "sheets.csv"})
	require.NoError(t, err)
	assert.Equal(t, []exportTarget{{"sheets.csv", service.FormatCSV}}, targets)

	targets, err = exportTargets(options{})
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestExportTargets_SamePath(t *testing.T) {
	_, err := exportTargets(options{xlsxPath: "out/sheets", csvPath: "out/./sheets"})
	assert.Error(t, err)
}
