package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestWinRate(t *testing.T) {
	assert.Nil(t, WinRate(0, 0))

	rate := WinRate(7, 3)
	require.NotNil(t, rate)
	assert.Equal(t, 70.0, *rate)

	rate = WinRate(1, 2)
	require.NotNil(t, rate)
	assert.Equal(t, 33.0, *rate)
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name  string
		value *float64
		want  Trend
	}{
		{"55 is positive", fp(55), TrendPositive},
		{"70 is positive", fp(70), TrendPositive},
		{"45 is negative", fp(45), TrendNegative},
		{"10 is negative", fp(10), TrendNegative},
		{"50 is neutral", fp(50), TrendNeutral},
		{"46 is neutral", fp(46), TrendNeutral},
		{"nil is neutral", nil, TrendNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(tt.value))
		})
	}
}

func TestRateValue_ZeroTotalIsUndefined(t *testing.T) {
	assert.Nil(t, RateValue(nil))
	assert.Nil(t, RateValue(&Rate{Value: fp(50), Total: 0}))

	v := RateValue(&Rate{Value: fp(50), Won: 6, Total: 12})
	require.NotNil(t, v)
	assert.Equal(t, 50.0, *v)
}

func TestRankMaps(t *testing.T) {
	manyMatches := func(n int) []Match {
		out := make([]Match, n)
		return out
	}

	maps := []MapReport{
		{Name: "Ascent", Winrate: fp(70), Matches: manyMatches(3)},
		{Name: "Bind", Matches: manyMatches(5)},
		{Name: "Haven", Winrate: fp(70), Matches: manyMatches(10)},
		{Name: "Lotus", Winrate: fp(40), Matches: manyMatches(8)},
	}
	// Bind's record is empty, so its rate is undefined and ranks lowest.
	maps[1].Winrate = nil

	rows := RankMaps(maps)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Haven", "Ascent", "Lotus", "Bind"}, names)
	assert.Nil(t, rows[3].WinRate)
	assert.Equal(t, "neutral", rows[3].Trend)
}

func TestRankMaps_ComputesRateFromRecord(t *testing.T) {
	rows := RankMaps([]MapReport{
		{Name: "Pearl", Wins: 3, Losses: 1},
	})

	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].WinRate)
	assert.Equal(t, 75.0, *rows[0].WinRate)
	assert.Equal(t, "positive", rows[0].Trend)
	assert.Equal(t, 4, rows[0].Matches)
}

func TestMergePlantSites(t *testing.T) {
	general := []SiteStat{
		{Site: "All", Planted: 20},
		{Site: "B", Planted: 12},
		{Site: "A", Planted: 8},
	}
	pistol := []SiteStat{
		{Site: "All", Planted: 4},
		{Site: "A", Planted: 2},
		{Site: "C", Planted: 2},
	}

	rows := MergePlantSites(general, pistol)

	sites := make([]string, len(rows))
	for i, r := range rows {
		sites[i] = r.Site
	}
	// Aggregate first, then general order, then pistol-only sites.
	assert.Equal(t, []string{"All", "B", "A", "C"}, sites)

	require.NotNil(t, rows[0].General)
	require.NotNil(t, rows[0].Pistol)
	assert.Nil(t, rows[1].Pistol)
	require.NotNil(t, rows[2].Pistol)
	assert.Equal(t, 2, rows[2].Pistol.Planted)
	assert.Nil(t, rows[3].General)
}

func TestMergePlantSites_AggregateRowAlwaysFirst(t *testing.T) {
	rows := MergePlantSites(nil, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "All", rows[0].Site)
	assert.Nil(t, rows[0].General)
	assert.Nil(t, rows[0].Pistol)
}

func TestLastPlayed(t *testing.T) {
	matches := []Match{
		{PlayedAt: "2025-03-01"},
		{PlayedAt: "not a date"},
		{PlayedAt: "March 9, 2025"},
		{PlayedAt: ""},
		{PlayedAt: "2025-02-12 18:30:00"},
	}

	ts, ok := LastPlayed(matches)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), ts)
}

func TestLastPlayed_NoneParseable(t *testing.T) {
	_, ok := LastPlayed([]Match{{PlayedAt: "???"}, {}})
	assert.False(t, ok)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, Placeholder, FormatPercent(nil))
	assert.Equal(t, "57%", FormatPercent(fp(57)))

	// Payload-supplied rates can be fractional and round, not truncate.
	assert.Equal(t, "67%", FormatPercent(fp(66.7)))
	assert.Equal(t, "66%", FormatPercent(fp(66.3)))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, Placeholder, FormatRate(nil))
	assert.Equal(t, Placeholder, FormatRate(&Rate{Value: fp(50)}))
	assert.Equal(t, "50% (6/12)", FormatRate(&Rate{Value: fp(50), Won: 6, Total: 12}))
	assert.Equal(t, "67% (2/3)", FormatRate(&Rate{Value: fp(66.7), Won: 2, Total: 3}))
}
