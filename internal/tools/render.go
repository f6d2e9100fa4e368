package tools

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"
)

// readRows drains a result set into column names and stringified records.
// NULL values render as the literal "None".
func readRows(rows *sql.Rows) ([]string, [][]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var records [][]string
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		record := make([]string, len(cols))
		for i, v := range raw {
			record[i] = formatValue(v)
		}
		records = append(records, record)
	}
	return cols, records, rows.Err()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// renderTable lays records out as a column-aligned table: a header row, a dash
// rule spanning the header's rendered width, then one line per record. Each
// column is left-justified to the widest cell in it, header included. Widths
// are measured in runes so multi-byte values stay aligned.
func renderTable(cols []string, records [][]string) string {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, record := range records {
		for i, cell := range record {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var lines []string
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = padCell(col, widths[i])
	}
	headerLine := strings.Join(header, " | ")
	lines = append(lines, headerLine)
	lines = append(lines, strings.Repeat("-", utf8.RuneCountInString(headerLine)))
	for _, record := range records {
		cells := make([]string, len(record))
		for i, cell := range record {
			cells[i] = padCell(cell, widths[i])
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// padCell left-justifies s to width runes. fmt's %-*s pads by bytes and would
// underpad multi-byte cells.
func padCell(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
