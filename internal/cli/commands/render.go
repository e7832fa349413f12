package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// resolveFormat picks the concrete output format for "auto": a styled
// table on a terminal, markdown when piped.
func resolveFormat(format string) string {
	if format != "auto" && format != "" {
		return format
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}
	return "md"
}

func renderTableModel(w io.Writer, tbl sheet.TableModel, format string) error {
	switch resolveFormat(format) {
	case "json":
		return renderJSON(w, tbl)
	case "csv":
		return renderCSV(w, tbl)
	case "md", "markdown":
		return renderMarkdown(w, tbl)
	case "table":
		return renderPretty(w, tbl)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderPretty(w io.Writer, tbl sheet.TableModel) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(tbl.Headers))
	for i, h := range tbl.Headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, cells := range tbl.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
	if tbl.Truncated() {
		_, _ = fmt.Fprintf(w, "(showing %d of %d rows)\n", len(tbl.Rows), tbl.TotalRows)
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(tbl.Rows))
	}
	return nil
}

func renderJSON(w io.Writer, tbl sheet.TableModel) error {
	results := make([]map[string]string, 0, len(tbl.Rows))
	for _, cells := range tbl.Rows {
		row := make(map[string]string, len(tbl.Headers))
		for i, h := range tbl.Headers {
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, tbl sheet.TableModel) error {
	writeLine := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = escapeCSV(c)
		}
		_, _ = fmt.Fprintln(w, strings.Join(escaped, ","))
	}

	writeLine(tbl.Headers)
	for _, row := range tbl.Rows {
		writeLine(row)
	}
	return nil
}

func renderMarkdown(w io.Writer, tbl sheet.TableModel) error {
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(tbl.Headers, " | "))

	seps := make([]string, len(tbl.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range tbl.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", "\\|")
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
