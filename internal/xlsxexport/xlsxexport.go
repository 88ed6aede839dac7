// Package xlsxexport writes sheet size tallies and data tables as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"cadtools/internal/datatable"
	"cadtools/internal/domain"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheet = "Sheet1"
	tallySheet   = "Sheet sizes"
	maxSheetName = 31
)

var tallyHeader = []interface{}{"Size", "Height, mm", "Width, mm", "Count", "A4 equivalent"}

// WriteReport writes a single-sheet workbook listing the non-zero formats of a
// report, followed by a totals row.
func WriteReport(w io.Writer, report *domain.SheetSizeReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, tallySheet); err != nil {
		return fmt.Errorf("xlsxexport.WriteReport: %w", err)
	}
	if err := setRow(f, tallySheet, 1, tallyHeader); err != nil {
		return err
	}

	row := 2
	for _, e := range report.Entries {
		values := []interface{}{e.Size.String(), e.Height, e.Width, e.Count, e.A4Equivalent}
		if err := setRow(f, tallySheet, row, values); err != nil {
			return err
		}
		row++
	}
	totals := []interface{}{"Total", nil, nil, report.TotalSheets, report.SummaryA4}
	if err := setRow(f, tallySheet, row, totals); err != nil {
		return err
	}

	if err := boldRow(f, tallySheet, 1, len(tallyHeader)); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport.WriteReport: %w", err)
	}
	return nil
}

// WriteTable writes a data table as a workbook with one sheet named after the table.
func WriteTable(w io.Writer, t *datatable.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := sheetName(t.Name)
	if err := f.SetSheetName(defaultSheet, name); err != nil {
		return fmt.Errorf("xlsxexport.WriteTable: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i, r := range t.Rows {
		values := make([]interface{}, len(r))
		for j, v := range r {
			values[j] = v
		}
		if err := setRow(f, name, i+2, values); err != nil {
			return err
		}
	}
	if len(t.Columns) > 0 {
		if err := boldRow(f, name, 1, len(t.Columns)); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport.WriteTable: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsxexport: row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsxexport: row %d: %w", row, err)
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(columns, row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	return nil
}

// sheetName makes a table name usable as a worksheet name.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = datatable.DefaultName
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}
