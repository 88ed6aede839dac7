package datatable

import (
	"slices"
	"strings"

	"cadtools/internal/indices"
)

// Editor applies row and column operations to a table in place.
// Row indices supplied by callers are taken as absolute values.
type Editor struct {
	table *Table
}

// NewEditor wraps t. A nil table is replaced by an empty one.
func NewEditor(t *Table) *Editor {
	if t == nil {
		t = New("")
	}
	return &Editor{table: t}
}

// Table returns the edited table.
func (e *Editor) Table() *Table {
	return e.table
}

// normalize returns sorted, de-duplicated absolute indices.
func normalize(rowIndices []int) []int {
	idx := indices.AbsAll(rowIndices)
	slices.Sort(idx)
	return slices.Compact(idx)
}

// MoveRows shifts the selected rows by offset, keeping their relative order; the
// other rows fill the remaining positions in their original order. Nothing
// happens when the selection is empty or the block would leave the table.
func (e *Editor) MoveRows(offset int, rowIndices []int) bool {
	if len(rowIndices) == 0 {
		return false
	}
	idx := normalize(rowIndices)
	rows := e.table.Rows
	last := len(rows) - 1
	if idx[len(idx)-1] > last || idx[0]+offset < 0 || idx[len(idx)-1]+offset > last {
		return false
	}

	moved := make([][]string, len(rows))
	taken := make([]bool, len(rows))
	for _, i := range idx {
		moved[i+offset] = rows[i]
		taken[i+offset] = true
	}
	free := 0
	for i, row := range rows {
		if _, selected := slices.BinarySearch(idx, i); selected {
			continue
		}
		for taken[free] {
			free++
		}
		moved[free] = row
		taken[free] = true
	}
	e.table.Rows = moved
	return true
}

// MoveRowsToBegin moves the selected block so that its first row becomes row 0.
func (e *Editor) MoveRowsToBegin(rowIndices []int) bool {
	if len(rowIndices) == 0 {
		return false
	}
	idx := normalize(rowIndices)
	return e.MoveRows(-idx[0], idx)
}

// MoveRowsToEnd moves the selected block so that its last row becomes the last row.
func (e *Editor) MoveRowsToEnd(rowIndices []int) bool {
	if len(rowIndices) == 0 {
		return false
	}
	idx := normalize(rowIndices)
	return e.MoveRows(len(e.table.Rows)-1-idx[len(idx)-1], idx)
}

// SortRows orders rows by the string value of a column. Rows with equal values
// keep their relative order. The column index is clamped to the last column.
func (e *Editor) SortRows(columnIndex int) {
	if len(e.table.Columns) == 0 {
		return
	}
	col := indices.Abs(columnIndex, len(e.table.Columns)-1)
	slices.SortStableFunc(e.table.Rows, func(a, b []string) int {
		return strings.Compare(a[col], b[col])
	})
}

// SortRowsByName sorts by the named column. It reports false when no such column exists.
func (e *Editor) SortRowsByName(columnName string) bool {
	col := e.ColumnIndex(columnName)
	if col < 0 {
		return false
	}
	e.SortRows(col)
	return true
}

// ReverseRows reverses the row order.
func (e *Editor) ReverseRows() {
	slices.Reverse(e.table.Rows)
}

// AddRows appends |count| empty rows.
func (e *Editor) AddRows(count int) {
	for range indices.Abs(count, indices.NoLimit) {
		e.table.AppendRow()
	}
}

// DeleteRows removes the selected rows. Indices outside the table are ignored.
func (e *Editor) DeleteRows(rowIndices []int) {
	idx := normalize(rowIndices)
	kept := make([][]string, 0, len(e.table.Rows))
	for i, row := range e.table.Rows {
		if _, selected := slices.BinarySearch(idx, i); selected {
			continue
		}
		kept = append(kept, row)
	}
	e.table.Rows = kept
}

// ColumnValues returns the cells of a column, top to bottom. The column index is
// clamped to the last column; empty cells are dropped when removeEmpty is set.
func (e *Editor) ColumnValues(columnIndex int, removeEmpty bool) []string {
	out := []string{}
	if len(e.table.Columns) == 0 {
		return out
	}
	col := indices.Abs(columnIndex, len(e.table.Columns)-1)
	for _, row := range e.table.Rows {
		if removeEmpty && row[col] == "" {
			continue
		}
		out = append(out, row[col])
	}
	return out
}

// ColumnValuesByName returns the cells of the named column, or nothing when it does not exist.
func (e *Editor) ColumnValuesByName(columnName string, removeEmpty bool) []string {
	col := e.ColumnIndex(columnName)
	if col < 0 {
		return []string{}
	}
	return e.ColumnValues(col, removeEmpty)
}

// ColumnIndex returns the position of a column matched case-insensitively, or -1.
func (e *Editor) ColumnIndex(columnName string) int {
	for i, name := range e.table.Columns {
		if strings.EqualFold(name, columnName) {
			return i
		}
	}
	return -1
}
