package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Cell
	}{
		{
			name: "empty",
			in:   "",
			want: Cell{Kind: CellEmpty},
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: Cell{Kind: CellEmpty},
		},
		{
			name: "image formula double quotes",
			in:   `=IMAGE("http://x/y.png")`,
			want: Cell{Kind: CellImage, URL: "http://x/y.png"},
		},
		{
			name: "image formula single quotes",
			in:   `=IMAGE('https://cdn/img.jpg')`,
			want: Cell{Kind: CellImage, URL: "https://cdn/img.jpg"},
		},
		{
			name: "image formula lowercase",
			in:   `=image("http://x/y.png")`,
			want: Cell{Kind: CellImage, URL: "http://x/y.png"},
		},
		{
			name: "image wins over inner url",
			in:   `=IMAGE("https://host/pic.png")`,
			want: Cell{Kind: CellImage, URL: "https://host/pic.png"},
		},
		{
			name: "http link",
			in:   "http://x/y",
			want: Cell{Kind: CellLink, Text: "http://x/y", URL: "http://x/y"},
		},
		{
			name: "https link",
			in:   "https://example.com/report",
			want: Cell{Kind: CellLink, Text: "https://example.com/report", URL: "https://example.com/report"},
		},
		{
			name: "plain text",
			in:   "  Ascent  ",
			want: Cell{Kind: CellText, Text: "Ascent"},
		},
		{
			name: "formula-ish text stays text",
			in:   "=SUM(A1:A5)",
			want: Cell{Kind: CellText, Text: "=SUM(A1:A5)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyRow(t *testing.T) {
	cells := ClassifyRow([]string{"", "http://a/b", "plain"})

	assert.Equal(t, CellEmpty, cells[0].Kind)
	assert.Equal(t, CellLink, cells[1].Kind)
	assert.Equal(t, CellText, cells[2].Kind)
}
