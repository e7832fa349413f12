package overview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/scrimstack-labs/scoutsheet/internal/report"
)

// selectionFragment pairs the report id with the three views that must
// always re-render together; a lone patch could leave an active highlight
// on a stale row.
type selectionFragment struct {
	ReportID string
	report.MapSelection
}

var funcMap = template.FuncMap{
	"percent": report.FormatPercent,
	"rate":    report.FormatRate,
	"short":   report.ShortPlayer,
}

var templates = template.Must(template.New("overview").Funcs(funcMap).Parse(`
{{define "map-tabs"}}
<nav id="map-tabs" class="tab-strip">
  {{range .Tabs}}
  <button class="tab{{if .Active}} tab-active{{end}}"
          data-on-click="@get('/api/report/{{$.ReportID}}/map/{{.Name}}')">{{.Name}}</button>
  {{end}}
</nav>
{{end}}

{{define "map-summary"}}
<table id="map-summary" class="summary-table">
  <thead>
    <tr><th>Map</th><th>W</th><th>L</th><th>Winrate</th><th>DEF</th><th>ATK</th></tr>
  </thead>
  <tbody>
    {{range .Summary}}
    <tr class="trend-{{.Trend}}{{if .Active}} row-active{{end}}"
        data-on-click="@get('/api/report/{{$.ReportID}}/map/{{.Name}}')">
      <td>{{.Name}}</td>
      <td>{{.Wins}}</td>
      <td>{{.Losses}}</td>
      <td>{{percent .WinRate}}</td>
      <td>{{percent .Defence}}</td>
      <td>{{percent .Attack}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

{{define "map-detail"}}
<section id="map-detail" class="detail-panel">
  {{with .Detail}}
  <header>
    <h2>{{.Name}}</h2>
    <p class="trend-{{.Trend}}">{{.Wins}}&ndash;{{.Losses}} ({{.WinRate}})</p>
    <p>DEF {{.Defence}} &middot; ATK {{.Attack}}</p>
    {{if .LastPlayed}}<p>Last played {{.LastPlayed}}</p>{{else}}<p>Last played unavailable</p>{{end}}
  </header>

  <h3>Agent Compositions</h3>
  <table class="composition-table">
    <thead>
      <tr><th>Picks</th>{{range .Compositions.Players}}<th>{{short .}}</th>{{end}}<th>Winrate</th></tr>
    </thead>
    <tbody>
      {{range .Compositions.Rows}}
      <tr><td>{{.Picks}}</td>{{range .Agents}}<td>{{.}}</td>{{end}}<td>{{.Winrate}}</td></tr>
      {{end}}
    </tbody>
  </table>

  <h3>Post-plant performance</h3>
  <table class="plant-table">
    <thead>
      <tr><th rowspan="2">Site</th><th colspan="2">General</th><th colspan="2">Pistol rounds</th></tr>
      <tr><th>Planted</th><th>Post-plant WR</th><th>Planted</th><th>Post-plant WR</th></tr>
    </thead>
    <tbody>
      {{range .PlantRows}}
      <tr>
        <td>{{.Site}}</td>
        {{with .General}}<td>{{.Planted}}</td><td>{{rate .PostPlant}}</td>{{else}}<td>&mdash;</td><td>&mdash;</td>{{end}}
        {{with .Pistol}}<td>{{.Planted}}</td><td>{{rate .PostPlant}}</td>{{else}}<td>&mdash;</td><td>&mdash;</td>{{end}}
      </tr>
      {{end}}
    </tbody>
  </table>

  {{if .Visuals}}
  <h3>Visuals</h3>
  <div class="visual-grid">
    {{range .Visuals}}
    <figure>
      <img src="{{.URL}}" loading="lazy" referrerpolicy="no-referrer" alt="{{.Title}}"
           class="lightbox-trigger" data-lightbox-src="{{.URL}}">
      <figcaption>{{.Title}}</figcaption>
    </figure>
    {{end}}
  </div>
  {{end}}
  {{end}}
</section>
{{end}}

{{define "unavailable"}}
<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Report unavailable</title><link rel="stylesheet" href="/static/app.css"></head>
<body>
  <main class="report-unavailable">
    <p>Preview unavailable.</p>
  </main>
</body>
</html>
{{end}}

{{define "list"}}
<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Reports</title><link rel="stylesheet" href="/static/app.css"></head>
<body>
  <main class="report-list">
    <h1>Reports</h1>
    <ul>
      {{range .IDs}}<li><a href="/report/{{.}}">{{.}}</a></li>{{end}}
    </ul>
  </main>
</body>
</html>
{{end}}

{{define "page"}}
<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Card.Team}} &ndash; Report</title>
  <link rel="stylesheet" href="/static/app.css">
  <script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
  <script defer src="/static/lightbox.js"></script>
</head>
<body>
  <main class="report-container" data-report-id="{{.ID}}">
    <header class="overview-card">
      {{if .Card.ImageURL}}<img src="{{.Card.ImageURL}}" loading="lazy" referrerpolicy="no-referrer" alt="{{.Card.Tag}}">{{end}}
      <h1>{{.Card.Team}}</h1>
      <p class="trend-{{.Card.Trend}}">{{.Card.Wins}}&ndash;{{.Card.Losses}} ({{.Card.WinRate}})</p>
      <p>{{.Card.MatchCount}} matches across {{.Card.MapCount}} maps</p>
    </header>

    <h2>Matches Played</h2>
    <table class="match-table">
      <thead><tr><th>Result</th><th>Rival</th><th>Map</th><th>DEF</th><th>ATK</th></tr></thead>
      <tbody>
        {{range .Matches}}
        <tr><td>{{.Result}}</td><td>{{.Rival}}</td><td>{{.Map}}</td><td>{{.Defence}}</td><td>{{.Attack}}</td></tr>
        {{end}}
      </tbody>
    </table>

    {{template "map-tabs" .Fragment}}
    {{template "map-summary" .Fragment}}
    {{template "map-detail" .Fragment}}
  </main>
  <div id="preview-lightbox" class="lightbox" hidden></div>
</body>
</html>
{{end}}
`))

func renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s fragment: %w", name, err)
	}
	return buf.String(), nil
}
