// Package config defines laxtime's configuration and how it is loaded.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// DBPath is the SQLite file holding roster, history and the active session.
	DBPath string `koanf:"db_path"`

	// ExportDir receives CSV and JSON exports.
	ExportDir string `koanf:"export_dir"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile is where logs go; the terminal belongs to the UI.
	LogFile string `koanf:"log_file"`

	// Players seeds the roster on first run. Empty means the built-in roster.
	Players []string `koanf:"players"`
}

// New returns a Config populated with defaults rooted in the user's config
// and home directories.
func New() *Config {
	dataDir := "."
	if d, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(d, "laxtime")
	}
	exportDir := "."
	if h, err := os.UserHomeDir(); err == nil {
		exportDir = h
	}
	return &Config{
		DBPath:    filepath.Join(dataDir, "laxtime.db"),
		ExportDir: exportDir,
		LogLevel:  "info",
		LogFile:   filepath.Join(dataDir, "laxtime.log"),
	}
}
