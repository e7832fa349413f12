// Package overview serves the structured-payload report surface: the
// aggregate card, match list, ranked map summary, and per-map detail panel.
package overview

import (
	"github.com/scrimstack-labs/scoutsheet/internal/report"
)

// PageData renders a full report page.
type PageData struct {
	ID       string
	Card     report.OverviewCard
	Matches  []report.Match
	Fragment selectionFragment
}

// ListData renders the report index.
type ListData struct {
	IDs []string
}

// sessionName scopes the cookie that remembers a visitor's last active map.
const sessionName = "scoutsheet"
