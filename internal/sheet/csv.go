// Package sheet parses delimited spreadsheet exports into preview tables.
package sheet

import "strings"

// ParseDelimited scans comma-separated text into rows of trimmed cells.
//
// Quoting follows spreadsheet export conventions rather than strict RFC 4180:
// a field may be wrapped in double quotes, a doubled quote inside a quoted
// field is one literal quote, and a line break inside quotes belongs to the
// field. Carriage returns are discarded everywhere. A quote appearing
// mid-field is kept as a literal character instead of being rejected.
func ParseDelimited(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else if cell.Len() == 0 {
				inQuotes = true
			} else {
				cell.WriteByte(c)
			}
		case c == ',' && !inQuotes:
			endCell()
		case c == '\n' && !inQuotes:
			endRow()
		case c == '\r':
			// discard
		default:
			cell.WriteByte(c)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}

	// A trailing newline leaves a phantom row of empty cells behind.
	if n := len(rows); n > 0 && isBlankRow(rows[n-1]) {
		rows = rows[:n-1]
	}

	return rows
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
