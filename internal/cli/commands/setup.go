package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scrimstack-labs/scoutsheet/internal/config"
	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithDeps stores the loaded config and logger in the command context.
func WithDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// getConfig retrieves the config from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return &config.Config{
			Server:     config.ServerConfig{Port: config.DefaultPort},
			ReportsDir: config.DefaultReportsDir,
		}
	}
	return cfg
}

// getLogger retrieves the logger from the command context.
func getLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// newClient builds the upstream document client from config.
func newClient(cfg *config.Config, logger *slog.Logger) *sheet.Client {
	return sheet.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.FetchTimeout, logger)
}
