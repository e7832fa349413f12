package report

import (
	"math"
	"sort"
	"time"
)

// Placeholder renders in place of an undefined rate.
const Placeholder = "—"

// Trend classifies a rate-bearing value for styling.
type Trend int

const (
	// TrendNeutral covers mid-range, missing, and zero-sample values.
	TrendNeutral Trend = iota
	// TrendPositive marks rates at or above 55.
	TrendPositive
	// TrendNegative marks rates at or below 45.
	TrendNegative
)

func (t Trend) String() string {
	switch t {
	case TrendPositive:
		return "positive"
	case TrendNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// WinRate computes a rounded percentage from a win/loss record. Returns nil
// when no games were played.
func WinRate(wins, losses int) *float64 {
	total := wins + losses
	if total == 0 {
		return nil
	}
	v := math.Round(100 * float64(wins) / float64(total))
	return &v
}

// ClassifyTrend applies the uniform trend thresholds: ≥55 positive,
// ≤45 negative, otherwise neutral. A missing value is always neutral.
func ClassifyTrend(value *float64) Trend {
	if value == nil {
		return TrendNeutral
	}
	switch {
	case *value >= 55:
		return TrendPositive
	case *value <= 45:
		return TrendNegative
	default:
		return TrendNeutral
	}
}

// RateValue extracts the displayable percentage from a rate object.
// A nil rate or a zero-total sample has no displayable value.
func RateValue(r *Rate) *float64 {
	if r == nil || r.Total == 0 {
		return nil
	}
	return r.Value
}

// MapSummaryRow is one ranked row of the map-performance table.
type MapSummaryRow struct {
	Name    string   `json:"name"`
	Wins    int      `json:"wins"`
	Losses  int      `json:"losses"`
	Matches int      `json:"matches"`
	WinRate *float64 `json:"win_rate"`
	Defence *float64 `json:"defence"`
	Attack  *float64 `json:"attack"`
	Trend   string   `json:"trend"`
	Active  bool     `json:"active"`
}

// RankMaps orders maps by win rate descending with an undefined rate
// ranking lowest, tie-broken by matches played descending. The win rate is
// taken from the payload when present, else computed from the record.
func RankMaps(maps []MapReport) []MapSummaryRow {
	rows := make([]MapSummaryRow, 0, len(maps))
	for i := range maps {
		m := &maps[i]
		rate := m.Winrate
		if rate == nil {
			rate = WinRate(m.Wins, m.Losses)
		}
		rows = append(rows, MapSummaryRow{
			Name:    m.Name,
			Wins:    m.Wins,
			Losses:  m.Losses,
			Matches: m.MatchesPlayed(),
			WinRate: rate,
			Defence: RateValue(m.Defence),
			Attack:  RateValue(m.Attack),
			Trend:   ClassifyTrend(rate).String(),
		})
	}

	key := func(r MapSummaryRow) float64 {
		if r.WinRate == nil {
			return -1
		}
		return *r.WinRate
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if ki != kj {
			return ki > kj
		}
		return rows[i].Matches > rows[j].Matches
	})
	return rows
}

// CombinedSiteRow joins the general and pistol-round plant stats for one
// site. Either side may be absent.
type CombinedSiteRow struct {
	Site    string    `json:"site"`
	General *SiteStat `json:"general"`
	Pistol  *SiteStat `json:"pistol"`
}

// MergePlantSites merges two per-site stat sets into one row set keyed by
// site name. The "All" aggregate row always comes first; then every site of
// the general set in its own order, then sites appearing only in the pistol
// set.
func MergePlantSites(general, pistol []SiteStat) []CombinedSiteRow {
	const aggregate = "All"

	byName := func(set []SiteStat, name string) *SiteStat {
		for i := range set {
			if set[i].Site == name {
				return &set[i]
			}
		}
		return nil
	}

	rows := []CombinedSiteRow{{
		Site:    aggregate,
		General: byName(general, aggregate),
		Pistol:  byName(pistol, aggregate),
	}}
	seen := map[string]bool{aggregate: true}

	for i := range general {
		s := general[i].Site
		if seen[s] {
			continue
		}
		seen[s] = true
		rows = append(rows, CombinedSiteRow{Site: s, General: &general[i], Pistol: byName(pistol, s)})
	}
	for i := range pistol {
		s := pistol[i].Site
		if seen[s] {
			continue
		}
		seen[s] = true
		rows = append(rows, CombinedSiteRow{Site: s, Pistol: &pistol[i]})
	}
	return rows
}

// Timestamp layouts accepted for match dates, most specific first. The long
// form matches the upstream sheet exports.
var playedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// LastPlayed scans a match list for the chronologically latest parseable
// timestamp. Unparseable or missing timestamps are skipped; ok is false
// when none parsed.
func LastPlayed(matches []Match) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, m := range matches {
		if m.PlayedAt == "" {
			continue
		}
		for _, layout := range playedAtLayouts {
			ts, err := time.Parse(layout, m.PlayedAt)
			if err != nil {
				continue
			}
			if !found || ts.After(latest) {
				latest = ts
				found = true
			}
			break
		}
	}
	return latest, found
}
