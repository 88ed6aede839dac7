package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cadtools/internal/config"
	"cadtools/internal/datatable"
	"cadtools/internal/domain"
	"cadtools/internal/service"
	"cadtools/mocks"
)

func setupTableService() (service.TableService, *mocks.MockTableStore) {
	store := new(mocks.MockTableStore)
	return service.NewTableService(store, config.TablesConfig{MaxAddRows: 100}, nil), store
}

func materials() *datatable.Table {
	t := datatable.New("Materials", "Name", "Standard")
	t.AppendRow("Steel 45", "GOST 1050")
	t.AppendRow("Brass", "GOST 15527")
	t.AppendRow("Aluminium", "")
	return t
}

func TestTableService_Save_Normalizes(t *testing.T) {
	svc, store := setupTableService()
	store.On("Save", mock.Anything, mock.AnythingOfType("*datatable.Table")).Return(nil)

	saved, err := svc.Save(context.Background(), &datatable.Table{
		Name:    "Materials",
		Columns: []string{"Name"},
		Rows:    [][]string{{"Steel", "GOST 1050"}, {}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Column2"}, saved.Columns)
	assert.Equal(t, [][]string{{"Steel", "GOST 1050"}, {"", ""}}, saved.Rows)
	store.AssertExpectations(t)
}

func TestTableService_Save_NilTable(t *testing.T) {
	svc, _ := setupTableService()
	_, err := svc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTableEdit)
}

func TestTableService_Save_NamesBlankColumns(t *testing.T) {
	svc, store := setupTableService()
	store.On("Save", mock.Anything, mock.AnythingOfType("*datatable.Table")).Return(nil)

	saved, err := svc.Save(context.Background(), &datatable.Table{
		Name:    "Materials",
		Columns: []string{"Name", ""},
		Rows:    [][]string{{"Steel", "GOST 1050"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Column3"}, saved.Columns)
	assert.Equal(t, [][]string{{"Steel", "GOST 1050"}}, saved.Rows)
	store.AssertExpectations(t)
}

func TestTableService_Save_DuplicateColumns(t *testing.T) {
	for _, columns := range [][]string{{"A", "A"}, {"Name", "name"}} {
		svc, store := setupTableService()

		_, err := svc.Save(context.Background(), datatable.FromRowValues([][]string{{"1", "2"}}, columns, "T"))

		assert.ErrorIs(t, err, domain.ErrInvalidTableEdit, "columns %q", columns)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestTableService_Save_StoreError(t *testing.T) {
	svc, store := setupTableService()
	store.On("Save", mock.Anything, mock.Anything).Return(domain.ErrInvalidTableName)

	_, err := svc.Save(context.Background(), datatable.New("bad name"))
	assert.ErrorIs(t, err, domain.ErrInvalidTableName)
}

func TestTableService_Edit(t *testing.T) {
	zero := 0
	tests := []struct {
		name     string
		edit     service.TableEdit
		changed  bool
		firstCol []string
	}{
		{"move down", service.TableEdit{Op: service.OpMoveRows, Offset: 1, Rows: []int{0}}, true,
			[]string{"Brass", "Steel 45", "Aluminium"}},
		{"move out of table", service.TableEdit{Op: service.OpMoveRows, Offset: 1, Rows: []int{2}}, false,
			[]string{"Steel 45", "Brass", "Aluminium"}},
		{"move to begin", service.TableEdit{Op: service.OpMoveRowsToBegin, Rows: []int{2}}, true,
			[]string{"Aluminium", "Steel 45", "Brass"}},
		{"move to end", service.TableEdit{Op: service.OpMoveRowsToEnd, Rows: []int{0}}, true,
			[]string{"Brass", "Aluminium", "Steel 45"}},
		{"sort by name", service.TableEdit{Op: service.OpSortRows, Column: "name"}, true,
			[]string{"Aluminium", "Brass", "Steel 45"}},
		{"sort by index", service.TableEdit{Op: service.OpSortRows, ColumnIndex: &zero}, true,
			[]string{"Aluminium", "Brass", "Steel 45"}},
		{"sort unknown column", service.TableEdit{Op: service.OpSortRows, Column: "Density"}, false,
			[]string{"Steel 45", "Brass", "Aluminium"}},
		{"reverse", service.TableEdit{Op: service.OpReverseRows}, true,
			[]string{"Aluminium", "Brass", "Steel 45"}},
		{"add rows", service.TableEdit{Op: service.OpAddRows, Count: -2}, true,
			[]string{"Steel 45", "Brass", "Aluminium", "", ""}},
		{"add no rows", service.TableEdit{Op: service.OpAddRows}, false,
			[]string{"Steel 45", "Brass", "Aluminium"}},
		{"delete rows", service.TableEdit{Op: service.OpDeleteRows, Rows: []int{-1, 1, 7}}, true,
			[]string{"Steel 45", "Aluminium"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := setupTableService()
			store.On("Load", mock.Anything, "Materials").Return(materials(), nil)
			if tt.changed {
				store.On("Save", mock.Anything, mock.AnythingOfType("*datatable.Table")).Return(nil)
			}

			result, err := svc.Edit(context.Background(), "Materials", tt.edit)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, result.Changed)
			assert.Equal(t, tt.firstCol, datatable.NewEditor(result.Table).ColumnValues(0, false))
			if !tt.changed {
				store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestTableService_Edit_UnknownOp(t *testing.T) {
	svc, store := setupTableService()
	store.On("Load", mock.Anything, "Materials").Return(materials(), nil)

	_, err := svc.Edit(context.Background(), "Materials", service.TableEdit{Op: "shuffle"})
	assert.ErrorIs(t, err, domain.ErrInvalidTableEdit)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTableService_Edit_AddRowsLimit(t *testing.T) {
	for _, count := range []int{101, -101, math.MaxInt, math.MinInt} {
		svc, store := setupTableService()

		_, err := svc.Edit(context.Background(), "Materials", service.TableEdit{Op: service.OpAddRows, Count: count})

		assert.ErrorIs(t, err, domain.ErrInvalidTableEdit, "count %d", count)
		store.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestTableService_Edit_AddRowsAtLimit(t *testing.T) {
	svc, store := setupTableService()
	store.On("Load", mock.Anything, "Materials").Return(materials(), nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*datatable.Table")).Return(nil)

	result, err := svc.Edit(context.Background(), "Materials", service.TableEdit{Op: service.OpAddRows, Count: -100})

	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Len(t, result.Table.Rows, 103)
	store.AssertExpectations(t)
}

func TestTableService_Edit_LoadError(t *testing.T) {
	svc, store := setupTableService()
	store.On("Load", mock.Anything, "Materials").Return(nil, domain.ErrTableReadFailed)

	_, err := svc.Edit(context.Background(), "Materials", service.TableEdit{Op: service.OpReverseRows})
	assert.ErrorIs(t, err, domain.ErrTableReadFailed)
}

func TestTableService_ColumnValues(t *testing.T) {
	svc, store := setupTableService()
	store.On("Load", mock.Anything, "Materials").Return(materials(), nil)

	values, err := svc.ColumnValues(context.Background(), "Materials", "STANDARD", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"GOST 1050", "GOST 15527"}, values)

	values, err = svc.ColumnValues(context.Background(), "Materials", "Density", false)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestTableService_Delete(t *testing.T) {
	svc, store := setupTableService()
	store.On("Delete", mock.Anything, "Materials").Return(nil)
	store.On("Delete", mock.Anything, "Missing").Return(domain.ErrTableNotFound)

	assert.NoError(t, svc.Delete(context.Background(), "Materials"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "Missing"), domain.ErrTableNotFound)
}

func TestTableService_Export(t *testing.T) {
	svc, store := setupTableService()
	store.On("Load", mock.Anything, "Materials").Return(materials(), nil)

	file, err := svc.Export(context.Background(), "Materials", service.FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(file.Body), "Steel 45,GOST 1050")
	assert.Regexp(t, `^Materials_\d{4}-\d{2}-\d{2}\.csv$`, file.Filename)

	_, err = svc.Export(context.Background(), "Materials", "ods")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
