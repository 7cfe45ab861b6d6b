package export

import (
	"strings"
	"testing"
	"time"

	"reportdesk/internal/features/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleRecord() report.ReportRecord {
	count := int64(120)
	size := int64(4096)
	execTime := 1.5
	return report.ReportRecord{
		ID:            primitive.NewObjectID(),
		Title:         "Weekly Summary",
		Status:        "draft",
		Department:    "Finance",
		Priority:      "high",
		Author:        "Dana Whitcomb",
		CreatedAt:     time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
		RecordCount:   &count,
		FileSize:      &size,
		ExecutionTime: &execTime,
	}
}

func TestFormatReportsForCSVFullRecord(t *testing.T) {
	rec := sampleRecord()
	rows := FormatReportsForCSV([]report.ReportRecord{rec})
	require.Len(t, rows, 1)

	row := rows[0]
	require.Len(t, row, len(ReportCSVHeaders))
	for i, cell := range row {
		assert.Equal(t, ReportCSVHeaders[i], cell.Key)
	}

	byKey := map[string]any{}
	for _, cell := range row {
		byKey[cell.Key] = cell.Value
	}
	assert.Equal(t, rec.ID.Hex(), byKey["ID"])
	assert.Equal(t, "Weekly Summary", byKey["Title"])
	assert.Equal(t, "08/01/2026", byKey["Created Date"])
	assert.Equal(t, "08/15/2026", byKey["Updated Date"])
	assert.Equal(t, "120", byKey["Record Count"])
	assert.Equal(t, "4096", byKey["File Size"])
	assert.Equal(t, "1.5", byKey["Execution Time"])
}

func TestFormatReportsForCSVAbsentFields(t *testing.T) {
	rec := report.ReportRecord{
		ID:     primitive.NewObjectID(),
		Title:  "Bare Minimum",
		Status: "draft",
	}
	rows := FormatReportsForCSV([]report.ReportRecord{rec})
	require.Len(t, rows, 1)

	byKey := map[string]any{}
	for _, cell := range rows[0] {
		byKey[cell.Key] = cell.Value
	}
	// Absent dates and metrics are empty, never zero or a null word
	assert.Equal(t, "", byKey["Created Date"])
	assert.Equal(t, "", byKey["Updated Date"])
	assert.Equal(t, "", byKey["Record Count"])
	assert.Equal(t, "", byKey["File Size"])
	assert.Equal(t, "", byKey["Execution Time"])
}

func TestFormatReportsForCSVKeepsGenuineZero(t *testing.T) {
	zero := int64(0)
	rec := sampleRecord()
	rec.RecordCount = &zero

	rows := FormatReportsForCSV([]report.ReportRecord{rec})
	byKey := map[string]any{}
	for _, cell := range rows[0] {
		byKey[cell.Key] = cell.Value
	}
	assert.Equal(t, "0", byKey["Record Count"])
}

func TestFormatThenSerializeQuotesDelimiters(t *testing.T) {
	rec := sampleRecord()
	rec.Title = "A,B"

	rows := FormatReportsForCSV([]report.ReportRecord{rec})
	csvText := ToCSV(rows, ReportCSVHeaders)

	lines := strings.Split(csvText, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(ReportCSVHeaders, ","), lines[0])
	assert.Contains(t, lines[1], `"A,B"`)
}
