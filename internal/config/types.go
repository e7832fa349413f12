// Package config loads ScoutSheet configuration from file, environment,
// and command-line flags.
package config

import "time"

// ServerConfig holds the UI server settings.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	SessionSecret string `koanf:"session_secret"`
	Watch         bool   `koanf:"watch"`
}

// UpstreamConfig points at the document host serving sheet metadata,
// delimited exports, and snapshot images.
type UpstreamConfig struct {
	BaseURL      string        `koanf:"base_url"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

// Config holds all ScoutSheet configuration options.
type Config struct {
	Server     ServerConfig   `koanf:"server"`
	Upstream   UpstreamConfig `koanf:"upstream"`
	ReportsDir string         `koanf:"reports_dir"`
	Verbose    bool           `koanf:"verbose"`
}
