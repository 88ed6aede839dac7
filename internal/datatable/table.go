// Package datatable implements a small string table with row editing and
// persistence in the DataTable XML layout used by the desktop tools.
package datatable

import (
	"fmt"
	"slices"
	"strings"

	"cadtools/internal/domain"
)

// DefaultName is used when a table is written without a name.
const DefaultName = "Table"

// Table is an in-memory string table. Every row holds exactly len(Columns) cells.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New creates an empty table with the given columns.
func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: slices.Clone(columns), Rows: [][]string{}}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: slices.Clone(t.Columns), Rows: make([][]string, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = slices.Clone(r)
	}
	return out
}

// AddColumn appends a column. An empty name is replaced by the next "ColumnN" name.
func (t *Table) AddColumn(name string) {
	if name == "" {
		name = t.nextColumnName()
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// AppendRow adds a row, padding or truncating values to the column count.
func (t *Table) AppendRow(values ...string) {
	t.Rows = append(t.Rows, t.fit(values))
}

func (t *Table) fit(values []string) []string {
	row := make([]string, len(t.Columns))
	copy(row, values)
	return row
}

// NameBlankColumns replaces every empty column name with the next "ColumnN" name.
func (t *Table) NameBlankColumns() {
	for i, name := range t.Columns {
		if name == "" {
			t.Columns[i] = t.nextColumnName()
		}
	}
}

// Validate checks that column names are non-empty and unique. Names are
// compared case-insensitively, matching Editor.ColumnIndex.
func (t *Table) Validate() error {
	seen := make(map[string]string, len(t.Columns))
	for i, name := range t.Columns {
		if name == "" {
			return fmt.Errorf("%w: column %d has no name", domain.ErrInvalidTableEdit, i+1)
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate column %q (already have %q)", domain.ErrInvalidTableEdit, name, prev)
		}
		seen[key] = name
	}
	return nil
}

func (t *Table) nextColumnName() string {
	for n := len(t.Columns) + 1; ; n++ {
		name := fmt.Sprintf("Column%d", n)
		if !slices.Contains(t.Columns, name) {
			return name
		}
	}
}

// FromColumnValues builds a table from column-major values. The row count is
// the length of the longest column; missing cells are empty. Nil inputs yield
// an empty table carrying only the name.
func FromColumnValues(columnValues [][]string, columnNames []string, tableName string) *Table {
	t := New(tableName)
	if columnValues == nil || columnNames == nil {
		return t
	}
	t.Columns = slices.Clone(columnNames)

	rowCount := 0
	for _, col := range columnValues {
		rowCount = max(rowCount, len(col))
	}
	for range rowCount {
		t.AppendRow()
	}

	for c := range min(len(columnValues), len(columnNames)) {
		for r, v := range columnValues[c] {
			t.Rows[r][c] = v
		}
	}
	return t
}

// FromRowValues builds a table from row-major values. Rows wider than the
// current column set add auto-named columns.
func FromRowValues(rowValues [][]string, columnNames []string, tableName string) *Table {
	t := New(tableName)
	if rowValues == nil || columnNames == nil {
		return t
	}
	t.Columns = slices.Clone(columnNames)
	for _, row := range rowValues {
		for len(row) > len(t.Columns) {
			t.AddColumn("")
		}
		t.AppendRow(row...)
	}
	return t
}
