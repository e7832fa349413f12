package config

import "time"

// Default configuration values.
const (
	DefaultPort         = 8765
	DefaultReportsDir   = "reports"
	DefaultFetchTimeout = 15 * time.Second
)

// Defaults returns the base configuration map, the lowest layer of the
// loader. The session secret default is fine for local use only; deployed
// instances set SCOUTSHEET_SERVER_SESSION_SECRET.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":            DefaultPort,
		"server.session_secret":  "scoutsheet-dev-secret",
		"server.watch":           true,
		"upstream.base_url":      "http://localhost:9090",
		"upstream.fetch_timeout": DefaultFetchTimeout,
		"reports_dir":            DefaultReportsDir,
		"verbose":                false,
	}
}
