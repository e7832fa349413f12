// Package cli provides the command-line interface for ScoutSheet.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/cli/commands"
	"github.com/scrimstack-labs/scoutsheet/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scoutsheet",
		Short: "ScoutSheet - Scrim Report Preview Engine",
		Long: `ScoutSheet previews shared spreadsheet reports: it resolves sheet tabs,
fetches delimited exports, and renders structured scrim analytics, in the
terminal or through a local web UI.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cmd.SetContext(commands.WithDeps(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Scrim report preview engine
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./scoutsheet.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "Port for the preview server")
	rootCmd.PersistentFlags().String("base-url", "", "Document host base URL")
	rootCmd.PersistentFlags().Duration("fetch-timeout", 0, "Upstream fetch timeout")
	rootCmd.PersistentFlags().String("reports-dir", "", "Directory of report payload files")
	rootCmd.PersistentFlags().Bool("watch", true, "Reload reports when payload files change")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewBrowseCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
