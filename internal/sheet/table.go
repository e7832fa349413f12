package sheet

import "fmt"

// MaxPreviewRows bounds how many data rows a preview table carries.
const MaxPreviewRows = 25

// TableModel is a normalized preview table. Every row has exactly
// len(Headers) cells; TotalRows counts data rows before truncation.
type TableModel struct {
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// Truncated reports whether rows were dropped to fit the preview bound.
func (t TableModel) Truncated() bool {
	return t.TotalRows > len(t.Rows)
}

// BuildTableData shapes raw parsed rows into a TableModel. The first row is
// the header row; empty header cells become positional "Column N"
// placeholders. Fully blank data rows are dropped, the remainder is capped at
// MaxPreviewRows, and every kept row is padded or cut to the header width.
func BuildTableData(rows [][]string) TableModel {
	if len(rows) == 0 {
		return TableModel{Headers: []string{"Value"}}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		headers[i] = h
	}
	if len(headers) == 0 {
		headers = []string{"Value"}
	}

	var data [][]string
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		data = append(data, row)
	}

	total := len(data)
	if total > MaxPreviewRows {
		data = data[:MaxPreviewRows]
	}

	for i, row := range data {
		data[i] = normalizeWidth(row, len(headers))
	}

	return TableModel{Headers: headers, Rows: data, TotalRows: total}
}

func normalizeWidth(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
