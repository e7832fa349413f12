package sheet

import (
	"regexp"
	"strings"
)

// CellKind selects how a cell is rendered.
type CellKind int

const (
	// CellEmpty renders as an empty placeholder.
	CellEmpty CellKind = iota
	// CellImage renders as an embedded image.
	CellImage
	// CellLink renders as a hyperlink.
	CellLink
	// CellText renders as literal text.
	CellText
)

// Cell is a classified cell value ready for rendering.
type Cell struct {
	Kind CellKind `json:"kind"`
	Text string   `json:"text,omitempty"`
	URL  string   `json:"url,omitempty"`
}

// Matches =IMAGE("url") and =IMAGE('url'), case-insensitive function name.
var imageFormulaRe = regexp.MustCompile(`(?i)^=IMAGE\(\s*(?:"([^"]+)"|'([^']+)')\s*\)$`)

// Classify decides the rendering mode for one raw cell string. The image
// formula is checked before the generic URL match: the formula text contains
// a URL substring and must win.
func Classify(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}

	if m := imageFormulaRe.FindStringSubmatch(s); m != nil {
		url := m[1]
		if url == "" {
			url = m[2]
		}
		return Cell{Kind: CellImage, URL: url}
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Cell{Kind: CellLink, Text: s, URL: s}
	}

	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell renders as an empty placeholder.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// IsImage reports whether the cell renders as an embedded image.
func (c Cell) IsImage() bool { return c.Kind == CellImage }

// IsLink reports whether the cell renders as a hyperlink.
func (c Cell) IsLink() bool { return c.Kind == CellLink }

// ClassifyRow classifies every cell in a row.
func ClassifyRow(row []string) []Cell {
	cells := make([]Cell, len(row))
	for i, raw := range row {
		cells[i] = Classify(raw)
	}
	return cells
}
