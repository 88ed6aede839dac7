package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadtools/internal/domain"
)

func TestReportRow_RoundTrip(t *testing.T) {
	report := &domain.SheetSizeReport{
		ID:            uuid.New(),
		DocumentCount: 2,
		TotalSheets:   3,
		SummaryA4:     4,
		Entries: []domain.SheetSizeEntry{
			{Size: domain.SheetSizeA3, Height: 297, Width: 420, Count: 1, A4Equivalent: 2},
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	row, err := toReportRow(report)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"size":"A3","height":297,"width":420,"count":1,"a4_equivalent":2}]`, string(row.Entries))

	got, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestReportRow_NilEntriesStoredAsEmptyArray(t *testing.T) {
	row, err := toReportRow(&domain.SheetSizeReport{ID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(row.Entries))

	got, err := row.toDomain()
	require.NoError(t, err)
	assert.NotNil(t, got.Entries)
	assert.Empty(t, got.Entries)
}

func TestReportRow_CorruptEntries(t *testing.T) {
	row := &sheetSizeReportRow{ID: uuid.New(), Entries: []byte("{not json")}
	_, err := row.toDomain()
	assert.Error(t, err)
}
