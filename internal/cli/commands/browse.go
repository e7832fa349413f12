package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// BrowseOptions holds options for the browse command.
type BrowseOptions struct {
	URL string
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	opts := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse <doc-id>",
		Short: "Browse a document's tabs interactively",
		Long: `Open an interactive terminal browser over a document's sheet tabs.

Tabs are fetched on first visit and cached; switching back to a visited
tab is instant. A fetch still in flight when you move on is kept for the
cache but never overwrites the tab you switched to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "Source URL the document was shared from")

	return cmd
}

func runBrowse(cmd *cobra.Command, docID string, opts *BrowseOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	m := newBrowseModel(newClient(cfg, logger), docID, opts.URL)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

// ---------------------------------------------------------------------------
// browseModel - tab strip over cached per-tab tables
// ---------------------------------------------------------------------------

var (
	browseTabStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	browseActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	browseErrStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	browseHelpStyle      = lipgloss.NewStyle().Faint(true)
)

type tabsLoadedMsg struct {
	tabs   []sheet.Tab
	active string
}

type tabDataMsg struct {
	gid string
	gen int
	tbl sheet.TableModel
}

type tabErrMsg struct {
	gid string
	gen int
	err error
}

type browseModel struct {
	client    *sheet.Client
	docID     string
	sourceURL string

	tabs   []sheet.Tab
	active int

	// generation invalidates in-flight fetches after a tab switch
	generation int
	cache      map[string]sheet.TableModel

	loading bool
	errMsg  string
	spin    spinner.Model
	width   int
}

func newBrowseModel(client *sheet.Client, docID, sourceURL string) browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return browseModel{
		client:    client,
		docID:     docID,
		sourceURL: sourceURL,
		cache:     make(map[string]sheet.TableModel),
		loading:   true,
		spin:      sp,
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadTabs())
}

func (m browseModel) loadTabs() tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.Metadata(context.Background(), m.docID)
		if err != nil || len(list.Sheets) == 0 {
			gid := sheet.GIDFromURL(m.sourceURL)
			return tabsLoadedMsg{tabs: []sheet.Tab{{GID: gid, Title: "Sheet"}}, active: gid}
		}
		active := list.DefaultGID
		if active == "" {
			active = list.Sheets[0].GID
		}
		return tabsLoadedMsg{tabs: list.Sheets, active: active}
	}
}

func (m browseModel) fetchTab(gid string, gen int) tea.Cmd {
	return func() tea.Msg {
		text, err := m.client.Export(context.Background(), m.docID, gid)
		if err != nil {
			return tabErrMsg{gid: gid, gen: gen, err: err}
		}
		return tabDataMsg{gid: gid, gen: gen, tbl: sheet.BuildTableData(sheet.ParseDelimited(text))}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			return m.selectTab(m.active - 1)
		case "right", "l", "tab":
			return m.selectTab(m.active + 1)
		case "enter", "r":
			// Re-select the current tab; retries after an error.
			return m.selectTab(m.active)
		}
		return m, nil

	case tabsLoadedMsg:
		m.tabs = msg.tabs
		for i, t := range m.tabs {
			if t.GID == msg.active {
				m.active = i
			}
		}
		return m.selectTab(m.active)

	case tabDataMsg:
		m.cache[msg.gid] = msg.tbl
		if msg.gen != m.generation {
			// A newer selection won; keep the result cached only.
			return m, nil
		}
		m.loading = false
		m.errMsg = ""
		return m, nil

	case tabErrMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.loading = false
		m.errMsg = "Could not load this tab. Select it again to retry."
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m browseModel) selectTab(idx int) (tea.Model, tea.Cmd) {
	if len(m.tabs) == 0 {
		return m, nil
	}
	if idx < 0 {
		idx = len(m.tabs) - 1
	}
	if idx >= len(m.tabs) {
		idx = 0
	}
	m.active = idx
	m.generation++
	m.errMsg = ""

	gid := m.tabs[idx].GID
	if _, ok := m.cache[gid]; ok {
		m.loading = false
		return m, nil
	}
	m.loading = true
	return m, m.fetchTab(gid, m.generation)
}

func (m browseModel) View() string {
	if len(m.tabs) == 0 {
		return fmt.Sprintf("\n %s resolving tabs...\n", m.spin.View())
	}

	var b strings.Builder

	for i, t := range m.tabs {
		style := browseTabStyle
		if i == m.active {
			style = browseActiveTabStyle
		}
		b.WriteString(style.Render(t.Title))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf(" %s loading...\n", m.spin.View()))
	case m.errMsg != "":
		b.WriteString(" " + browseErrStyle.Render(m.errMsg) + "\n")
	default:
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n" + browseHelpStyle.Render(" ←/→ switch tab · r retry · q quit") + "\n")
	return b.String()
}

func (m browseModel) renderTable() string {
	tbl, ok := m.cache[m.tabs[m.active].GID]
	if !ok {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(tbl.Headers))
	for i, h := range tbl.Headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, cells := range tbl.Rows {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}

	out := t.Render() + "\n"
	if tbl.Truncated() {
		out += browseHelpStyle.Render(fmt.Sprintf(" showing %d of %d rows", len(tbl.Rows), tbl.TotalRows)) + "\n"
	}
	return out
}
