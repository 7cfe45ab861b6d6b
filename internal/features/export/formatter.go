package export

import (
	"strconv"
	"time"

	"reportdesk/internal/features/report"
)

// ReportCSVHeaders pins the column order of exported report tables.
// Always pass it to ToCSV so the layout never depends on how a row
// happens to enumerate its cells.
var ReportCSVHeaders = []string{
	"ID",
	"Title",
	"Status",
	"Department",
	"Priority",
	"Author",
	"Created Date",
	"Updated Date",
	"Record Count",
	"File Size",
	"Execution Time",
}

// FormatReportsForCSV maps report records onto display-friendly export
// rows. Absent dates and metrics become empty cells, never a zero or the
// word "null".
func FormatReportsForCSV(records []report.ReportRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			{Key: "ID", Value: rec.ID.Hex()},
			{Key: "Title", Value: rec.Title},
			{Key: "Status", Value: rec.Status},
			{Key: "Department", Value: rec.Department},
			{Key: "Priority", Value: rec.Priority},
			{Key: "Author", Value: rec.Author},
			{Key: "Created Date", Value: formatDate(rec.CreatedAt)},
			{Key: "Updated Date", Value: formatDate(rec.UpdatedAt)},
			{Key: "Record Count", Value: formatInt(rec.RecordCount)},
			{Key: "File Size", Value: formatInt(rec.FileSize)},
			{Key: "Execution Time", Value: formatFloat(rec.ExecutionTime)},
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
