package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimstack-labs/scoutsheet/internal/config"
	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	if cfg != nil {
		cmd.SetContext(WithDeps(context.Background(), cfg, slog.New(slog.DiscardHandler)))
	}

	err := cmd.Execute()
	return buf.String(), err
}

// upstreamServer serves the document host endpoints the client expects.
func upstreamServer(t *testing.T, exports map[string]string) (*httptest.Server, *config.Config) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sheets/{doc}/meta", func(w http.ResponseWriter, _ *http.Request) {
		tabs := make([]sheet.Tab, 0, len(exports))
		for gid := range exports {
			tabs = append(tabs, sheet.Tab{GID: gid, Title: "Tab " + gid})
		}
		_ = json.NewEncoder(w).Encode(sheet.SheetList{Sheets: tabs, DefaultGID: "0"})
	})
	mux.HandleFunc("GET /sheets/{doc}/export", func(w http.ResponseWriter, r *http.Request) {
		text, ok := exports[r.URL.Query().Get("gid")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(text))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server:     config.ServerConfig{Port: config.DefaultPort},
		Upstream:   config.UpstreamConfig{BaseURL: srv.URL, FetchTimeout: 5 * time.Second},
		ReportsDir: t.TempDir(),
	}
	return srv, cfg
}

// =============================================================================
// version
// =============================================================================

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"), nil)

	require.NoError(t, err)
	assert.Contains(t, out, "ScoutSheet v1.2.3")
}

// =============================================================================
// preview
// =============================================================================

func TestPreviewCommand(t *testing.T) {
	_, cfg := upstreamServer(t, map[string]string{
		"0": "Team,Result\nAlpha,W\nBravo,L",
	})

	out, err := execute(t, NewPreviewCommand(), cfg, "doc-1", "--format", "csv")

	require.NoError(t, err)
	assert.Contains(t, out, "Team,Result")
	assert.Contains(t, out, "Alpha,W")
}

func TestPreviewCommand_ExplicitTab(t *testing.T) {
	_, cfg := upstreamServer(t, map[string]string{
		"0": "A\n1",
		"7": "Site,WR\nA,60%",
	})

	out, err := execute(t, NewPreviewCommand(), cfg, "doc-1", "--gid", "7", "--format", "md")

	require.NoError(t, err)
	assert.Contains(t, out, "| Site | WR |")
	assert.Contains(t, out, "| A | 60% |")
}

func TestPreviewCommand_FetchError(t *testing.T) {
	_, cfg := upstreamServer(t, map[string]string{"0": "A\n1"})

	_, err := execute(t, NewPreviewCommand(), cfg, "doc-1", "--gid", "99")

	assert.Error(t, err)
}

// =============================================================================
// report
// =============================================================================

const reportFixture = `{
  "team": {"tag": "TH", "name": "Team Horizon"},
  "summary": {"match_count": 3, "map_count": 2, "record": {"wins": 2, "losses": 1}},
  "matches": [],
  "maps": [
    {"name": "Ascent", "wins": 2, "losses": 0, "matches": []},
    {"name": "Bind", "wins": 0, "losses": 1, "matches": []}
  ]
}`

func writeReport(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "horizon.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestReportCommand(t *testing.T) {
	_, cfg := upstreamServer(t, nil)
	path := writeReport(t, reportFixture)

	out, err := execute(t, NewReportCommand(), cfg, path)

	require.NoError(t, err)
	assert.Contains(t, out, "Team Horizon [TH]")
	assert.Contains(t, out, "2-1 (67%)")
	assert.Contains(t, out, "Ascent")
	assert.Contains(t, out, "Bind")
	// Ranked by win rate: Ascent (100%) before Bind (0%).
	assert.Less(t, strings.Index(out, "Ascent"), strings.Index(out, "Bind"))
}

func TestReportCommand_MapDetail(t *testing.T) {
	_, cfg := upstreamServer(t, nil)
	path := writeReport(t, reportFixture)

	out, err := execute(t, NewReportCommand(), cfg, path, "--map", "Bind")

	require.NoError(t, err)
	assert.Contains(t, out, "Last played unavailable")
}

func TestReportCommand_UnknownMap(t *testing.T) {
	_, cfg := upstreamServer(t, nil)
	path := writeReport(t, reportFixture)

	_, err := execute(t, NewReportCommand(), cfg, path, "--map", "Fracture")

	assert.ErrorContains(t, err, "unknown map")
}

func TestReportCommand_MalformedPayload(t *testing.T) {
	_, cfg := upstreamServer(t, nil)
	path := writeReport(t, `{"team":`)

	_, err := execute(t, NewReportCommand(), cfg, path)

	assert.Error(t, err)
}

// =============================================================================
// output formats
// =============================================================================

func TestRenderTableModel_Formats(t *testing.T) {
	tbl := sheet.BuildTableData(sheet.ParseDelimited("Name,Note\nAlpha,\"a,b\"\nBravo,plain"))

	t.Run("csv escapes embedded commas", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, renderTableModel(buf, tbl, "csv"))
		assert.Contains(t, buf.String(), `Alpha,"a,b"`)
	})

	t.Run("markdown", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, renderTableModel(buf, tbl, "md"))
		assert.Contains(t, buf.String(), "| Name | Note |")
		assert.Contains(t, buf.String(), "| --- | --- |")
	})

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, renderTableModel(buf, tbl, "json"))

		var rows []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "a,b", rows[0]["Note"])
	})

	t.Run("table shows row count", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, renderTableModel(buf, tbl, "table"))
		assert.Contains(t, buf.String(), "(2 rows)")
	})

	t.Run("unknown format errors", func(t *testing.T) {
		assert.Error(t, renderTableModel(&bytes.Buffer{}, tbl, "xml"))
	})
}
