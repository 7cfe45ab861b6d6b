package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// displayDateLayout is how timestamps are shown to people, both in the
// exported cells and in the formatted rows.
const displayDateLayout = "01/02/2006"

// isoTimestampPattern recognizes ISO-8601 timestamp strings such as
// 2026-08-30T14:05:00Z or 2026-08-30T14:05:00+07:00.
var isoTimestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// Cell is one key/value pair of an export row. Rows are ordered slices
// rather than maps so header inference keeps the original column order.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered sequence of cells
type Row []Cell

// EscapeValue makes a single value safe to embed in a CSV document.
// nil becomes the empty string. A value containing a comma, a double
// quote or a newline is wrapped in double quotes with internal quotes
// doubled; anything else passes through untouched.
func EscapeValue(value any) string {
	if value == nil {
		return ""
	}
	s := fmt.Sprintf("%v", value)
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// formatCell renders one data cell. Times collapse to a plain UTC date,
// ISO timestamp strings are reformatted for display, and everything else
// goes through EscapeValue.
func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format("2006-01-02")
	case string:
		if isoTimestampPattern.MatchString(v) {
			if parsed, err := parseISOTimestamp(v); err == nil {
				return parsed.Format(displayDateLayout)
			}
		}
	}
	return EscapeValue(value)
}

// parseISOTimestamp accepts timestamps with or without a zone designator
func parseISOTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// ToCSV serializes rows into CSV text, header line first, lines joined
// with "\n" and no trailing newline. With no rows the result is empty --
// there is no schema to infer and nothing meaningful to write. When
// headers is nil the first row's cell order defines the columns. Cells a
// row does not carry serialize as empty strings.
func ToCSV(rows []Row, headers []string) string {
	if len(rows) == 0 {
		return ""
	}

	if headers == nil {
		headers = make([]string, 0, len(rows[0]))
		seen := make(map[string]bool, len(rows[0]))
		for _, cell := range rows[0] {
			if seen[cell.Key] {
				continue
			}
			seen[cell.Key] = true
			headers = append(headers, cell.Key)
		}
	}

	var b strings.Builder

	escaped := make([]string, len(headers))
	for i, h := range headers {
		escaped[i] = EscapeValue(h)
	}
	b.WriteString(strings.Join(escaped, ","))

	for _, row := range rows {
		values := make(map[string]any, len(row))
		for _, cell := range row {
			values[cell.Key] = cell.Value
		}

		cells := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := values[h]; ok {
				cells[i] = formatCell(v)
			}
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, ","))
	}

	return b.String()
}
