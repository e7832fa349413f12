package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/preview"
	"github.com/scrimstack-labs/scoutsheet/internal/report"
	"github.com/scrimstack-labs/scoutsheet/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ScoutSheet preview server",
		Long: `Start a local web server for interactive report previews.

The server provides:
- Sheet tab previews with cached per-tab tables
- Snapshot images when the document host publishes them
- Structured scrim reports with ranked map summaries
- Live reload when the reports directory changes`,
		Example: `  # Start on the default port
  scoutsheet serve

  # Start on a custom port without opening the browser
  scoutsheet serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	store := report.NewStore(cfg.ReportsDir, logger)
	if err := store.Reload(); err != nil {
		logger.Warn("initial report load failed", "error", err)
	}

	server := ui.NewServer(ui.Config{
		Store:         store,
		Registry:      preview.NewRegistry(),
		Client:        newClient(cfg, logger),
		Port:          cfg.Server.Port,
		Watch:         cfg.Server.Watch,
		SessionSecret: cfg.Server.SessionSecret,
		ReportsDir:    cfg.ReportsDir,
		Logger:        logger,
	})

	if !opts.NoBrowser {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting preview server on http://localhost:%d\n", cfg.Server.Port)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
