package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// PreviewOptions holds options for the preview command.
type PreviewOptions struct {
	GID    string
	URL    string
	Format string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <doc-id>",
		Short: "Fetch and print one sheet tab",
		Long: `Fetch a sheet tab's delimited export and print it as a table.

Without --gid the document's default tab is used. When the tab listing
cannot be resolved, the gid is taken from --url, falling back to 0.

Output adapts to environment:
  - Terminal: styled table
  - Piped/Scripted: markdown`,
		Example: `  # Preview the default tab
  scoutsheet preview 1AbC

  # Preview a specific tab as CSV
  scoutsheet preview 1AbC --gid 731 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.GID, "gid", "", "Tab gid to fetch")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Source URL the document was shared from")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Output format (auto|table|md|csv|json)")

	return cmd
}

func runPreview(cmd *cobra.Command, docID string, opts *PreviewOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)
	client := newClient(cfg, logger)
	ctx := cmd.Context()

	gid := opts.GID
	if gid == "" {
		list, err := client.Metadata(ctx, docID)
		if err != nil || len(list.Sheets) == 0 {
			// Tab listing unavailable, derive the gid from the share URL.
			gid = sheet.GIDFromURL(opts.URL)
			logger.Debug("tab listing unavailable, using synthetic tab", "gid", gid)
		} else {
			gid = list.DefaultGID
			if gid == "" {
				gid = list.Sheets[0].GID
			}
		}
	}

	text, err := client.Export(ctx, docID, gid)
	if err != nil {
		return fmt.Errorf("fetch tab %s: %w", gid, err)
	}

	tbl := sheet.BuildTableData(sheet.ParseDelimited(text))
	return renderTableModel(cmd.OutOrStdout(), tbl, opts.Format)
}
