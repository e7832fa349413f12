package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/report"
)

// ReportOptions holds options for the report command.
type ReportOptions struct {
	Map string
}

// Trend styles shared by the report output.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report <payload.json>",
		Short: "Print a structured scrim report",
		Long: `Decode a report payload file and print the team overview with its
ranked map-performance table. With --map, the detail panel for that map
is printed as well.`,
		Example: `  # Print the overview and map ranking
  scoutsheet report reports/horizon.json

  # Include the Ascent detail panel
  scoutsheet report reports/horizon.json --map Ascent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Map, "map", "m", "", "Map to print the detail panel for")

	return cmd
}

func runReport(cmd *cobra.Command, path string, opts *ReportOptions) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	payload, err := report.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode report %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	overview := report.NewOverview(payload)
	card := overview.Card()

	record := fmt.Sprintf("%d-%d (%s)", card.Wins, card.Losses, card.WinRate)
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s [%s]", card.Team, card.Tag)))
	fmt.Fprintf(out, "%s  %s\n\n", trendStyle(card.Trend).Render(record),
		mutedStyle.Render(fmt.Sprintf("%d matches across %d maps", card.MatchCount, card.MapCount)))

	printMapRanking(out, report.RankMaps(payload.Maps))

	if opts.Map != "" {
		if !overview.HasMap(opts.Map) {
			return fmt.Errorf("unknown map: %s", opts.Map)
		}
		sel := overview.Selection(opts.Map)
		fmt.Fprintln(out)
		printMapDetail(out, sel.Detail)
	}
	return nil
}

func printMapRanking(out io.Writer, rows []report.MapSummaryRow) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Map", "W", "L", "Winrate", "DEF", "ATK"})

	for _, row := range rows {
		style := trendStyle(row.Trend)
		t.AppendRow(table.Row{
			row.Name,
			row.Wins,
			row.Losses,
			style.Render(report.FormatPercent(row.WinRate)),
			report.FormatPercent(row.Defence),
			report.FormatPercent(row.Attack),
		})
	}

	t.Render()
}

func printMapDetail(out io.Writer, d *report.MapDetail) {
	if d == nil {
		return
	}

	fmt.Fprintln(out, titleStyle.Render(d.Name))
	fmt.Fprintf(out, "%s  DEF %s  ATK %s\n",
		trendStyle(d.Trend).Render(fmt.Sprintf("%d-%d (%s)", d.Wins, d.Losses, d.WinRate)),
		d.Defence, d.Attack)
	if d.LastPlayed != "" {
		fmt.Fprintln(out, mutedStyle.Render("Last played "+d.LastPlayed))
	} else {
		fmt.Fprintln(out, mutedStyle.Render("Last played unavailable"))
	}

	if len(d.Compositions.Rows) > 0 {
		fmt.Fprintln(out)
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)

		header := table.Row{"Picks"}
		for _, p := range d.Compositions.Players {
			header = append(header, report.ShortPlayer(p))
		}
		header = append(header, "Winrate")
		t.AppendHeader(header)

		for _, row := range d.Compositions.Rows {
			cells := table.Row{row.Picks}
			for _, agent := range row.Agents {
				cells = append(cells, agent)
			}
			cells = append(cells, row.Winrate)
			t.AppendRow(cells)
		}
		t.Render()
	}

	if len(d.PlantRows) > 0 {
		fmt.Fprintln(out)
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Site", "Planted", "Post-plant WR", "Pistol planted", "Pistol WR"})

		for _, row := range d.PlantRows {
			cells := table.Row{row.Site}
			cells = append(cells, siteCells(row.General)...)
			cells = append(cells, siteCells(row.Pistol)...)
			t.AppendRow(cells)
		}
		t.Render()
	}

	if len(d.Visuals) > 0 {
		fmt.Fprintln(out)
		for _, v := range d.Visuals {
			fmt.Fprintf(out, "%s %s\n", mutedStyle.Render(v.Title+":"), v.URL)
		}
	}
}

func siteCells(s *report.SiteStat) []any {
	if s == nil {
		return []any{report.Placeholder, report.Placeholder}
	}
	return []any{s.Planted, report.FormatRate(s.PostPlant)}
}

func trendStyle(trend string) lipgloss.Style {
	switch trend {
	case report.TrendPositive.String():
		return positiveStyle
	case report.TrendNegative.String():
		return negativeStyle
	default:
		return lipgloss.NewStyle()
	}
}

