package service

import (
	"bytes"
	"fmt"
	"strings"

	"cadtools/internal/csvexport"
	"cadtools/internal/datatable"
	"cadtools/internal/domain"
	"cadtools/internal/xlsxexport"
)

// ExportFormat selects the file type of an export.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts "xlsx" and "csv" case-insensitively. An empty value selects xlsx.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// ExportFile is a rendered export ready to be downloaded or uploaded.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RenderReport renders a sheet size report in the given format.
func RenderReport(report *domain.SheetSizeReport, format ExportFormat) (*ExportFile, error) {
	var buf bytes.Buffer
	var contentType string

	switch format {
	case FormatXLSX:
		if err := xlsxexport.WriteReport(&buf, report); err != nil {
			return nil, err
		}
		contentType = xlsxexport.ContentType
	case FormatCSV:
		if err := csvexport.WriteBOM(&buf); err != nil {
			return nil, err
		}
		w := csvexport.NewWriter(&buf)
		if err := w.WriteReportHeader(); err != nil {
			return nil, err
		}
		if err := w.WriteReport(report); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		contentType = csvexport.ContentType
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	return &ExportFile{
		Filename:    csvexport.BuildFilename("sheet_sizes_"+report.ID.String()[:8], string(format)),
		ContentType: contentType,
		Body:        buf.Bytes(),
	}, nil
}

// RenderTable renders a data table in the given format.
func RenderTable(t *datatable.Table, format ExportFormat) (*ExportFile, error) {
	var buf bytes.Buffer
	var contentType string

	switch format {
	case FormatXLSX:
		if err := xlsxexport.WriteTable(&buf, t); err != nil {
			return nil, err
		}
		contentType = xlsxexport.ContentType
	case FormatCSV:
		if err := csvexport.WriteBOM(&buf); err != nil {
			return nil, err
		}
		w := csvexport.NewWriter(&buf)
		if err := w.WriteTable(t); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		contentType = csvexport.ContentType
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	return &ExportFile{
		Filename:    csvexport.BuildFilename(t.Name, string(format)),
		ContentType: contentType,
		Body:        buf.Bytes(),
	}, nil
}
