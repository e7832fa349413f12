package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names tried in order when none is given explicitly.
var configFileNames = []string{"scoutsheet.yaml", "scoutsheet.yml"}

// envPrefix namespaces environment overrides, e.g.
// SCOUTSHEET_SERVER_PORT=9000 sets server.port.
const envPrefix = "SCOUTSHEET_"

// envKeys maps environment variable suffixes to config keys explicitly;
// several keys contain underscores, so a mechanical separator swap would
// mangle them. Unknown variables are ignored.
var envKeys = map[string]string{
	"SERVER_PORT":            "server.port",
	"SERVER_SESSION_SECRET":  "server.session_secret",
	"SERVER_WATCH":           "server.watch",
	"UPSTREAM_BASE_URL":      "upstream.base_url",
	"UPSTREAM_FETCH_TIMEOUT": "upstream.fetch_timeout",
	"REPORTS_DIR":            "reports_dir",
	"VERBOSE":                "verbose",
}

// flagKeys maps command-line flag names to config keys. Flags not listed
// here (like --config) never reach the config map.
var flagKeys = map[string]string{
	"port":          "server.port",
	"watch":         "server.watch",
	"base-url":      "upstream.base_url",
	"fetch-timeout": "upstream.fetch_timeout",
	"reports-dir":   "reports_dir",
	"verbose":       "verbose",
}

// Load builds the configuration from, lowest precedence first: defaults,
// an optional YAML file, SCOUTSHEET_* environment variables, and command
// flags. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envKeys[strings.TrimPrefix(s, envPrefix)]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return flagKeys[f.Name], posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
