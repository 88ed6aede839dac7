package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadtools/internal/domain"
)

func TestFromRowValues(t *testing.T) {
	tbl := FromRowValues([][]string{{"a", "b"}, {"c", "d", "e"}, {"f"}}, []string{"X", "Y"}, "T")
	assert.Equal(t, []string{"X", "Y", "Column3"}, tbl.Columns)
	assert.Equal(t, [][]string{{"a", "b", ""}, {"c", "d", "e"}, {"f", "", ""}}, tbl.Rows)

	empty := FromRowValues(nil, []string{"X"}, "T")
	assert.Equal(t, "T", empty.Name)
	assert.Empty(t, empty.Columns)
}

func TestFromColumnValues(t *testing.T) {
	tbl := FromColumnValues([][]string{{"1", "2", "3"}, {"a"}}, []string{"N", "L"}, "T")
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"1", "a"}, tbl.Rows[0])
	assert.Equal(t, []string{"3", ""}, tbl.Rows[2])

	assert.Empty(t, FromColumnValues(nil, nil, "T").Rows)
}

func TestAddColumn_AutoName(t *testing.T) {
	tbl := New("T", "Column2")
	tbl.AppendRow("x", "dropped")
	tbl.AddColumn("")
	assert.Equal(t, []string{"Column2", "Column3"}, tbl.Columns)
	assert.Equal(t, [][]string{{"x", ""}}, tbl.Rows)
}

func TestNameBlankColumns(t *testing.T) {
	tbl := New("T", "", "Column1", "")
	tbl.NameBlankColumns()
	assert.Equal(t, []string{"Column4", "Column1", "Column5"}, tbl.Columns)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New("T", "A", "B").Validate())
	assert.NoError(t, New("T").Validate())
	assert.ErrorIs(t, New("T", "A", "a").Validate(), domain.ErrInvalidTableEdit)
	assert.ErrorIs(t, New("T", "A", "").Validate(), domain.ErrInvalidTableEdit)
}

func TestClone(t *testing.T) {
	tbl := New("T", "A")
	tbl.AppendRow("1")
	cp := tbl.Clone()
	cp.Rows[0][0] = "2"
	assert.Equal(t, "1", tbl.Rows[0][0])
}
