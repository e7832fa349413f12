package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() *Payload {
	return &Payload{
		Team: Team{Tag: "TH", Name: "Team Heretics"},
		Summary: Summary{
			MatchCount: 10,
			MapCount:   2,
			Record:     Record{Wins: 6, Losses: 4},
		},
		Matches: []Match{
			{Rival: "FNC", Result: "WON", Map: "Ascent"},
			{Rival: "TL", Result: "LOST", Map: "Bind"},
		},
		Maps: []MapReport{
			{
				Name: "Ascent", Wins: 4, Losses: 1,
				Compositions: []Composition{
					{
						Picks:   3,
						Agents:  map[string]string{"TH Boo": "Omen", "TH MiniBoo": "Jett"},
						Winrate: &Rate{Value: fp(67), Won: 2, Total: 3},
					},
				},
				PostPlants:   []SiteStat{{Site: "All", Planted: 9}, {Site: "A", Planted: 5}},
				PistolPlants: []SiteStat{{Site: "B", Planted: 1}},
				Matches:      []Match{{PlayedAt: "2025-04-02"}},
			},
			{Name: "Bind", Wins: 2, Losses: 3},
		},
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"team":{"tag":"TH"},"summary":{"match_count":3,"record":{"wins":2,"losses":1}}}`))
	require.NoError(t, err)
	assert.Equal(t, "TH", p.Team.Tag)
	assert.Equal(t, 3, p.Summary.MatchCount)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)

	_, err = Decode(nil)
	assert.Error(t, err)
}

func TestOverview_DefaultMap(t *testing.T) {
	o := NewOverview(testPayload())
	assert.Equal(t, "Ascent", o.DefaultMap())
	assert.Equal(t, "", NewOverview(&Payload{}).DefaultMap())
}

func TestOverview_HasMap(t *testing.T) {
	o := NewOverview(testPayload())
	assert.True(t, o.HasMap("Bind"))
	assert.False(t, o.HasMap("Fracture"))
}

func TestOverview_EnsureRendered(t *testing.T) {
	o := NewOverview(testPayload())
	assert.True(t, o.EnsureRendered())
	assert.False(t, o.EnsureRendered())
	assert.False(t, o.EnsureRendered())
}

func TestOverview_Card(t *testing.T) {
	card := NewOverview(testPayload()).Card()

	assert.Equal(t, "Team Heretics", card.Team)
	assert.Equal(t, "60%", card.WinRate)
	assert.Equal(t, "positive", card.Trend)
	assert.Equal(t, 10, card.MatchCount)
}

func TestOverview_Selection_RerendersAllThreeViews(t *testing.T) {
	o := NewOverview(testPayload())

	sel := o.Selection("Bind")

	assert.Equal(t, "Bind", sel.ActiveMap)
	require.NotNil(t, sel.Detail)
	assert.Equal(t, "Bind", sel.Detail.Name)

	// Tab strip and summary carry the same active marker.
	var activeTabs, activeRows int
	for _, tab := range sel.Tabs {
		if tab.Active {
			activeTabs++
			assert.Equal(t, "Bind", tab.Name)
		}
	}
	for _, row := range sel.Summary {
		if row.Active {
			activeRows++
			assert.Equal(t, "Bind", row.Name)
		}
	}
	assert.Equal(t, 1, activeTabs)
	assert.Equal(t, 1, activeRows)
}

func TestOverview_Selection_UnknownFallsBackToDefault(t *testing.T) {
	o := NewOverview(testPayload())

	sel := o.Selection("Fracture")

	assert.Equal(t, "Ascent", sel.ActiveMap)
	require.NotNil(t, sel.Detail)
	assert.Equal(t, "Ascent", sel.Detail.Name)
}

func TestOverview_SelectionIsStateless(t *testing.T) {
	o := NewOverview(testPayload())

	// One caller's selection leaves no trace for the next.
	_ = o.Selection("Bind")
	sel := o.Selection("")

	assert.Equal(t, "Ascent", sel.ActiveMap)
	require.NotNil(t, sel.Detail)
	assert.Equal(t, "Ascent", sel.Detail.Name)
}

func TestBuildMapDetail(t *testing.T) {
	o := NewOverview(testPayload())
	detail := o.Selection("").Detail
	require.NotNil(t, detail)

	assert.Equal(t, "80%", detail.WinRate)
	assert.Equal(t, "positive", detail.Trend)
	assert.Equal(t, "April 2, 2025", detail.LastPlayed)

	// Composition players are the sorted union; agents align per column.
	assert.Equal(t, []string{"TH Boo", "TH MiniBoo"}, detail.Compositions.Players)
	require.Len(t, detail.Compositions.Rows, 1)
	assert.Equal(t, []string{"Omen", "Jett"}, detail.Compositions.Rows[0].Agents)
	assert.Equal(t, "67% (2/3)", detail.Compositions.Rows[0].Winrate)

	// Plant rows: aggregate first, general order, then pistol-only sites.
	sites := make([]string, len(detail.PlantRows))
	for i, r := range detail.PlantRows {
		sites[i] = r.Site
	}
	assert.Equal(t, []string{"All", "A", "B"}, sites)
}

func TestShortPlayer(t *testing.T) {
	assert.Equal(t, "Boo", ShortPlayer("TH Boo"))
	assert.Equal(t, "solo", ShortPlayer("solo"))
}
