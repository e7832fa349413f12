package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// FormatPercent renders a nullable rate value, using the dash placeholder
// for undefined rates. Payload-supplied rates may be fractional and are
// rounded, not truncated.
func FormatPercent(value *float64) string {
	if value == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%%", int(math.Round(*value)))
}

// FormatRate renders a rate object with its sample, e.g. "57% (8/14)".
func FormatRate(r *Rate) string {
	v := RateValue(r)
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%% (%d/%d)", int(math.Round(*v)), r.Won, r.Total)
}

// TabItem is one entry of the map tab strip.
type TabItem struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// OverviewCard is the team identity header with the aggregate record.
type OverviewCard struct {
	Team       string `json:"team"`
	Tag        string `json:"tag"`
	ImageURL   string `json:"image_url"`
	MatchCount int    `json:"match_count"`
	MapCount   int    `json:"map_count"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	WinRate    string `json:"win_rate"`
	Trend      string `json:"trend"`
}

// CompositionTable is the per-map agent lineup table. Player columns are
// the sorted union of players across all lineups.
type CompositionTable struct {
	Players []string         `json:"players"`
	Rows    []CompositionRow `json:"rows"`
}

// CompositionRow is one lineup: pick count, agent per player column
// (empty when the player is absent from the lineup), and winrate.
type CompositionRow struct {
	Picks   int      `json:"picks"`
	Agents  []string `json:"agents"`
	Winrate string   `json:"winrate"`
}

// MapDetail is the detail panel for the active map.
type MapDetail struct {
	Name         string            `json:"name"`
	Wins         int               `json:"wins"`
	Losses       int               `json:"losses"`
	WinRate      string            `json:"win_rate"`
	Defence      string            `json:"defence"`
	Attack       string            `json:"attack"`
	Trend        string            `json:"trend"`
	LastPlayed   string            `json:"last_played"`
	Compositions CompositionTable  `json:"compositions"`
	PlantRows    []CombinedSiteRow `json:"plant_rows"`
	Visuals      []VisualAsset     `json:"visuals"`
}

// MapSelection carries the three views that must always re-render together
// when the active map changes, so an active highlight is never stale.
type MapSelection struct {
	ActiveMap string          `json:"active_map"`
	Tabs      []TabItem       `json:"tabs"`
	Summary   []MapSummaryRow `json:"summary"`
	Detail    *MapDetail      `json:"detail"`
}

// Overview wraps a decoded payload for rendering. The payload is immutable
// after load and shared by every visitor; which map a visitor is looking at
// is their own state, resolved per request and passed into Selection. The
// mutex guards only the render-once flag.
type Overview struct {
	mu       sync.Mutex
	payload  *Payload
	rendered bool
}

// NewOverview wraps a decoded payload.
func NewOverview(p *Payload) *Overview {
	return &Overview{payload: p}
}

// Payload returns the wrapped payload, nil when unavailable.
func (o *Overview) Payload() *Payload { return o.payload }

// DefaultMap returns the first map's name, the selection every visitor
// starts on.
func (o *Overview) DefaultMap() string {
	if o.payload == nil || len(o.payload.Maps) == 0 {
		return ""
	}
	return o.payload.Maps[0].Name
}

// HasMap reports whether the payload carries a map by that name.
func (o *Overview) HasMap(name string) bool {
	return o.findMap(name) != nil
}

// EnsureRendered flips the initial-render guard. Returns true exactly once
// so repeated show/hide toggles do not redo the full render.
func (o *Overview) EnsureRendered() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.rendered {
		return false
	}
	o.rendered = true
	return true
}

// Card builds the overview header.
func (o *Overview) Card() OverviewCard {
	p := o.payload
	rate := WinRate(p.Summary.Record.Wins, p.Summary.Record.Losses)
	return OverviewCard{
		Team:       p.Team.Name,
		Tag:        p.Team.Tag,
		ImageURL:   p.Team.ImageURL,
		MatchCount: p.Summary.MatchCount,
		MapCount:   p.Summary.MapCount,
		Wins:       p.Summary.Record.Wins,
		Losses:     p.Summary.Record.Losses,
		WinRate:    FormatPercent(rate),
		Trend:      ClassifyTrend(rate).String(),
	}
}

// Matches returns the full match list in source order.
func (o *Overview) Matches() []Match { return o.payload.Matches }

// Selection assembles the tab strip, ranked summary, and detail panel for
// the named map. An empty or unknown name falls back to the first map, so
// one visitor's choice never becomes another visitor's default.
func (o *Overview) Selection(name string) MapSelection {
	if o.findMap(name) == nil {
		name = o.DefaultMap()
	}
	sel := MapSelection{ActiveMap: name}
	for _, m := range o.payload.Maps {
		sel.Tabs = append(sel.Tabs, TabItem{Name: m.Name, Active: m.Name == name})
	}
	sel.Summary = RankMaps(o.payload.Maps)
	for i := range sel.Summary {
		sel.Summary[i].Active = sel.Summary[i].Name == name
	}
	if m := o.findMap(name); m != nil {
		sel.Detail = buildMapDetail(m)
	}
	return sel
}

func (o *Overview) findMap(name string) *MapReport {
	if o.payload == nil {
		return nil
	}
	for i := range o.payload.Maps {
		if o.payload.Maps[i].Name == name {
			return &o.payload.Maps[i]
		}
	}
	return nil
}

func buildMapDetail(m *MapReport) *MapDetail {
	rate := m.Winrate
	if rate == nil {
		rate = WinRate(m.Wins, m.Losses)
	}

	lastPlayed := ""
	if ts, ok := LastPlayed(m.Matches); ok {
		lastPlayed = ts.Format("January 2, 2006")
	}

	return &MapDetail{
		Name:         m.Name,
		Wins:         m.Wins,
		Losses:       m.Losses,
		WinRate:      FormatPercent(rate),
		Defence:      FormatRate(m.Defence),
		Attack:       FormatRate(m.Attack),
		Trend:        ClassifyTrend(rate).String(),
		LastPlayed:   lastPlayed,
		Compositions: buildCompositionTable(m.Compositions),
		PlantRows:    MergePlantSites(m.PostPlants, m.PistolPlants),
		Visuals:      m.Visuals,
	}
}

func buildCompositionTable(comps []Composition) CompositionTable {
	playerSet := map[string]bool{}
	for _, c := range comps {
		for player := range c.Agents {
			playerSet[player] = true
		}
	}
	players := make([]string, 0, len(playerSet))
	for p := range playerSet {
		players = append(players, p)
	}
	sort.Strings(players)

	tbl := CompositionTable{Players: players}
	for _, c := range comps {
		row := CompositionRow{Picks: c.Picks, Winrate: FormatRate(c.Winrate)}
		for _, p := range players {
			row.Agents = append(row.Agents, c.Agents[p])
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// ShortPlayer strips a team tag prefix from a player id ("TH Boo" → "Boo").
func ShortPlayer(id string) string {
	if _, rest, ok := strings.Cut(id, " "); ok {
		return rest
	}
	return id
}
