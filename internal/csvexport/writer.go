package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cadtools/internal/datatable"
	"cadtools/internal/domain"
)

// ContentType is the media type of every file this package writes.
const ContentType = "text/csv; charset=utf-8"

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// reportColumns defines the header row of a sheet size report.
var reportColumns = []string{
	"Size",
	"Height, mm",
	"Width, mm",
	"Count",
	"A4 equivalent",
}

// Writer wraps csv.Writer for exporting reports and tables as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteBOM writes the UTF-8 byte order mark directly to w.
func WriteBOM(w io.Writer) error {
	_, err := w.Write(BOM)
	return err
}

// WriteReportHeader writes the 5-column report header row.
func (w *Writer) WriteReportHeader() error {
	return w.csv.Write(reportColumns)
}

// WriteReport writes one row per entry followed by a Total row.
func (w *Writer) WriteReport(report *domain.SheetSizeReport) error {
	for _, e := range report.Entries {
		row := []string{
			e.Size.String(),
			strconv.Itoa(e.Height),
			strconv.Itoa(e.Width),
			strconv.Itoa(e.Count),
			strconv.Itoa(e.A4Equivalent),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return w.csv.Write([]string{
		"Total", "", "",
		strconv.Itoa(report.TotalSheets),
		strconv.Itoa(report.SummaryA4),
	})
}

// WriteTable writes the column names and then every row of t.
func (w *Writer) WriteTable(t *datatable.Table) error {
	if err := w.csv.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "export"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, strings.TrimPrefix(ext, "."))
}
