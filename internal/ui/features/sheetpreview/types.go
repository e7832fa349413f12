// Package sheetpreview serves the delimited-text preview surface: container
// pages, tab selection, and snapshot images.
package sheetpreview

import (
	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// CreateRequest registers a preview container for a document.
type CreateRequest struct {
	DocID     string `json:"doc_id"`
	SourceURL string `json:"source_url"`
}

// CreateResponse returns the container handle the page embeds.
type CreateResponse struct {
	ContainerID string      `json:"container_id"`
	Tabs        []sheet.Tab `json:"tabs"`
	ActiveGID   string      `json:"active_gid"`
}

// TabStripData renders the tab strip fragment.
type TabStripData struct {
	ContainerID string
	Tabs        []sheet.Tab
	ActiveGID   string
}

// TableView is a classified table ready for the panel fragment.
type TableView struct {
	Headers []string
	Rows    [][]sheet.Cell
	Shown   int
	Total   int
}

// PanelData renders the content panel fragment in one of its states.
type PanelData struct {
	ContainerID string
	GID         string
	Loading     bool
	Error       string
	Table       *TableView
	Snapshot    string
}

// PageData renders the container page shell.
type PageData struct {
	ContainerID string
	DocID       string
	SourceURL   string
	Tabs        TabStripData
}

func buildTableView(tbl sheet.TableModel) *TableView {
	view := &TableView{
		Headers: tbl.Headers,
		Shown:   len(tbl.Rows),
		Total:   tbl.TotalRows,
	}
	for _, row := range tbl.Rows {
		view.Rows = append(view.Rows, sheet.ClassifyRow(row))
	}
	return view
}
