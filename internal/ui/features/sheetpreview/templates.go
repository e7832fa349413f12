package sheetpreview

import (
	"bytes"
	"fmt"
	"html/template"
)

// Fragment ids are fixed per page; the tab strip and panel are always
// patched together so the active highlight can never go stale.
var templates = template.Must(template.New("sheetpreview").Parse(`
{{define "tabs"}}
<nav id="sheet-tabs" class="tab-strip">
  {{$active := .ActiveGID}}{{$cid := .ContainerID}}
  {{range .Tabs}}
  <button class="tab{{if eq .GID $active}} tab-active{{end}}"
          data-on-click="@get('/api/preview/{{$cid}}/select/{{.GID}}')">{{.Title}}</button>
  {{end}}
</nav>
{{end}}

{{define "panel"}}
<section id="sheet-panel" class="preview-panel">
  {{if .Loading}}
  <p class="preview-loading">Loading…</p>
  {{else if .Error}}
  <p class="preview-error">{{.Error}}</p>
  {{else if .Table}}
  <table class="preview-table">
    <thead><tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
      {{range .Table.Rows}}
      <tr>
        {{range .}}
        <td>
          {{- if .IsEmpty}}&nbsp;
          {{- else if .IsImage}}<img src="{{.URL}}" loading="lazy" referrerpolicy="no-referrer" alt="">
          {{- else if .IsLink}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a>
          {{- else}}{{.Text}}
          {{- end}}
        </td>
        {{end}}
      </tr>
      {{end}}
    </tbody>
  </table>
  <p class="preview-count">Showing {{.Table.Shown}} of {{.Table.Total}} rows</p>
  {{end}}
</section>
{{end}}

{{define "snapshot"}}
<figure id="sheet-snapshot" class="preview-snapshot">
  {{if .Snapshot}}
  <img src="{{.Snapshot}}" loading="lazy" referrerpolicy="no-referrer" alt="Sheet snapshot"
       data-lightbox-src="{{.Snapshot}}">
  {{end}}
</figure>
{{end}}

{{define "page"}}
<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Sheet Preview</title>
  <link rel="stylesheet" href="/static/app.css">
  <script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
  <script defer src="/static/lightbox.js"></script>
</head>
<body>
  <main class="preview-container" data-container-id="{{.ContainerID}}"
        data-doc-id="{{.DocID}}" data-source-url="{{.SourceURL}}"
        data-init="@get('/api/preview/{{.ContainerID}}/select/{{.Tabs.ActiveGID}}')">
    {{template "tabs" .Tabs}}
    <section id="sheet-panel" class="preview-panel"></section>
    <figure id="sheet-snapshot" class="preview-snapshot"></figure>
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
