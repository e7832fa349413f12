// Package report decodes embedded analytics payloads and derives the
// statistics and view models the preview surfaces render.
package report

import (
	"encoding/json"
	"fmt"
)

// Rate is a percentage outcome over a sample. Value is nil when the sample
// is empty and the rate is undefined.
type Rate struct {
	Value *float64 `json:"value"`
	Won   int      `json:"won"`
	Total int      `json:"total"`
}

// Record is an aggregate win/loss tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Summary aggregates the whole report.
type Summary struct {
	MatchCount int    `json:"match_count"`
	MapCount   int    `json:"map_count"`
	Record     Record `json:"record"`
}

// Team identifies the analyzed team.
type Team struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Match is one played match in the report.
type Match struct {
	Rival    string `json:"rival"`
	Result   string `json:"result"`
	Map      string `json:"map"`
	Defence  string `json:"defence"`
	Attack   string `json:"attack"`
	PlayedAt string `json:"played_at"`
}

// Composition is one agent lineup with its sample size and outcome.
type Composition struct {
	Picks   int               `json:"picks"`
	Agents  map[string]string `json:"agents"`
	Winrate *Rate             `json:"winrate"`
}

// SiteStat is per-site plant performance: how often the team planted
// attacking and held post-plant, and how often it retook defending.
type SiteStat struct {
	Site       string `json:"site"`
	Planted    int    `json:"planted"`
	PostPlant  *Rate  `json:"post_plant"`
	OppPlanted int    `json:"opp_planted"`
	Retake     *Rate  `json:"retake"`
}

// VisualAsset is one rendered plot or snapshot attached to a map.
type VisualAsset struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MapReport carries everything the detail panel shows for one map.
type MapReport struct {
	Name         string        `json:"name"`
	Wins         int           `json:"wins"`
	Losses       int           `json:"losses"`
	Winrate      *float64      `json:"winrate"`
	Defence      *Rate         `json:"defence"`
	Attack       *Rate         `json:"attack"`
	Compositions []Composition `json:"compositions"`
	PostPlants   []SiteStat    `json:"post_plants"`
	PistolPlants []SiteStat    `json:"pistol_plants"`
	Visuals      []VisualAsset `json:"visuals"`
	Matches      []Match       `json:"matches"`
}

// Payload is the embedded report object attached to a preview container.
type Payload struct {
	Team    Team        `json:"team"`
	Summary Summary     `json:"summary"`
	Matches []Match     `json:"matches"`
	Maps    []MapReport `json:"maps"`
}

// Decode parses an embedded payload. Callers treat any error as
// "preview unavailable" rather than propagating it.
func Decode(raw []byte) (*Payload, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty report payload")
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode report payload: %w", err)
	}
	return &p, nil
}

// MatchesPlayed is the total sample size for a map, falling back to the
// win/loss record when the match list was not embedded.
func (m *MapReport) MatchesPlayed() int {
	if n := len(m.Matches); n > 0 {
		return n
	}
	return m.Wins + m.Losses
}
