package util

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	MaxForceDepth int    `toml:"max_force_depth"`
	HistoryFile   string `toml:"history_file"`

	Database Database `toml:"database"`
}

// Database describes the optional row source bound as `rows`.
type Database struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	Query  string `toml:"query"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		LogLevel:      "none",
		MaxForceDepth: 10000,
		HistoryFile:   ".splufp_history",
	}
}

// LoadConfiguration reads path over the defaults when path is non-empty,
// then applies SPLUFP_* environment overrides.
func LoadConfiguration(path string) (Configuration, error) {
	config := DefaultConfiguration()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return config, fmt.Errorf("config file '%s': %w", path, err)
		}
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
	}

	ApplyEnvironment(&config)
	return config, nil
}

func ApplyEnvironment(config *Configuration) {
	config.LogLevel = env.Str("SPLUFP_LOG_LEVEL", config.LogLevel)
	config.LogFile = env.Str("SPLUFP_LOG_FILE", config.LogFile)
	config.MaxForceDepth = env.Int("SPLUFP_MAX_FORCE_DEPTH", config.MaxForceDepth)
	config.HistoryFile = env.Str("SPLUFP_HISTORY_FILE", config.HistoryFile)
	config.Database.Driver = env.Str("SPLUFP_DB_DRIVER", config.Database.Driver)
	config.Database.DSN = env.Str("SPLUFP_DB_DSN", config.Database.DSN)
	config.Database.Query = env.Str("SPLUFP_DB_QUERY", config.Database.Query)
}
