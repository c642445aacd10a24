package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrScriptNotSet   = errors.New("updater script is not configured")
	ErrScriptNotFound = errors.New("updater script does not exist")
	ErrInvalidMode    = errors.New("invalid update mode: must be @world or GLSA")
)

// Default values used when the config file does not set them.
const (
	DefaultScript = "updater.sh"
	DefaultMode   = "@world"
	DefaultLogDir = "/var/log/gentoo-update"
)

// Config represents the application configuration
type Config struct {
	Updater UpdaterConfig `yaml:"updater"`
	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
}

// UpdaterConfig holds settings for running the update script
type UpdaterConfig struct {
	// Script is the update script invoked by the update command
	Script string `yaml:"script"`
	// Mode is the update type passed to the script: @world or GLSA
	Mode string `yaml:"mode"`
	// LogDir is where per-run log files are written
	LogDir string `yaml:"log_dir"`
}

// ReportConfig holds settings for report generation
type ReportConfig struct {
	// Watchlist is the path to the watchlist.toml file; empty means the
	// default location under the config directory
	Watchlist string `yaml:"watchlist,omitempty"`
}

// HistoryConfig holds settings for the run history store
type HistoryConfig struct {
	// Database is the sqlite file path; empty means the default
	// location under the data directory
	Database string `yaml:"database,omitempty"`
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/gentoo-update/config.yaml (XDG standard - priority)
// 2. ~/.gentoo-update/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "gentoo-update", "config.yaml"),
		filepath.Join(home, ".gentoo-update", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// No config exists, return default (XDG) path for creation
	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config
			cfg := defaultConfig()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Updater.Script == "" {
		c.Updater.Script = DefaultScript
	}
	if c.Updater.Mode == "" {
		c.Updater.Mode = DefaultMode
	}
	if c.Updater.LogDir == "" {
		c.Updater.LogDir = DefaultLogDir
	}
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ValidateScript checks that the configured update script is set and
// exists on disk
func (c *Config) ValidateScript() error {
	if c.Updater.Script == "" {
		return ErrScriptNotSet
	}
	script, err := c.Script()
	if err != nil {
		return err
	}
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, script)
	}
	return nil
}

// Script returns the update script path with any leading ~ expanded
func (c *Config) Script() (string, error) {
	return expandHome(c.Updater.Script)
}

// ValidateMode checks that the configured update mode is supported
func (c *Config) ValidateMode() error {
	switch c.Updater.Mode {
	case "@world", "GLSA":
		return nil
	default:
		return ErrInvalidMode
	}
}

// LogDir returns the log directory with any leading ~ expanded
func (c *Config) LogDir() (string, error) {
	return expandHome(c.Updater.LogDir)
}

// WatchlistPath returns the watchlist file path, falling back to the
// default location next to the config file
func (c *Config) WatchlistPath() (string, error) {
	if c.Report.Watchlist != "" {
		return expandHome(c.Report.Watchlist)
	}

	configPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "watchlist.toml"), nil
}

// DatabasePath returns the history database path, falling back to the
// XDG data directory
func (c *Config) DatabasePath() (string, error) {
	if c.History.Database != "" {
		return expandHome(c.History.Database)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		xdgData = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(xdgData, "gentoo-update", "history.db"), nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
