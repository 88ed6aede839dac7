// Command importtable converts a worksheet of an Excel workbook into an XML
// data table in the table store directory.
// Usage: go run ./cmd/importtable --xlsx materials.xlsx --name Materials
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/datatable"
	"cadtools/internal/logging"
)

type options struct {
	xlsxPath  string
	sheet     string
	name      string
	headerRow int
	dataDir   string
	trim      bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.Must(cfg.Log)
	defer func() { _ = logger.Sync() }()

	opts := options{}
	fs := pflag.NewFlagSet("importtable", pflag.ContinueOnError)
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "workbook to import (required)")
	fs.StringVar(&opts.sheet, "sheet", "", "worksheet name (default: first sheet)")
	fs.StringVar(&opts.name, "name", "", "table name (default: worksheet name)")
	fs.IntVar(&opts.headerRow, "header-row", 1, "1-based row holding the column names")
	fs.StringVar(&opts.dataDir, "dir", cfg.Tables.DataDir, "table store directory")
	fs.BoolVar(&opts.trim, "trim", true, "trim whitespace around cell values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.xlsxPath == "" {
		return fmt.Errorf("--xlsx is required")
	}
	if opts.headerRow < 1 {
		return fmt.Errorf("--header-row must be at least 1")
	}

	f, err := excelize.OpenFile(opts.xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := readSheet(f, opts)
	if err != nil {
		return err
	}

	store, err := datatable.NewFileStore(opts.dataDir)
	if err != nil {
		return fmt.Errorf("open table store: %w", err)
	}
	if err := store.Save(context.Background(), t); err != nil {
		return fmt.Errorf("save table: %w", err)
	}

	logger.Info("table imported",
		zap.String("table", t.Name),
		zap.Int("columns", len(t.Columns)),
		zap.Int("rows", len(t.Rows)),
		zap.String("dir", opts.dataDir),
	)
	return nil
}

// readSheet reads the header row as column names and every following non-blank
// row as data. Blank header cells and rows wider than the header get auto-named
// columns; repeated header names are rejected.
func readSheet(f *excelize.File, opts options) (*datatable.Table, error) {
	sheet := opts.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < opts.headerRow {
		return nil, fmt.Errorf("sheet %q has no header row %d", sheet, opts.headerRow)
	}

	name := opts.name
	if name == "" {
		name = strings.ReplaceAll(sheet, " ", "_")
	}

	header := clean(rows[opts.headerRow-1], opts.trim)
	var data [][]string
	for _, row := range rows[opts.headerRow:] {
		row = clean(row, opts.trim)
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}
	if data == nil {
		data = [][]string{}
	}
	t := datatable.FromRowValues(data, header, name)
	t.NameBlankColumns()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return t, nil
}

func clean(row []string, trim bool) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if trim {
			v = strings.TrimSpace(v)
		}
		out[i] = v
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
