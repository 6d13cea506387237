// Package config loads grove's settings: built-in defaults, then the TOML
// config file, then command-line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/grove/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Outline OutlineConfig `toml:"outline"`
	Theme   ThemeConfig   `toml:"theme"`

	// Plugins holds one table per plugin, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// OutlineConfig holds editor settings for outline documents.
type OutlineConfig struct {
	HistoryLimit    int      `toml:"history_limit"` // 0 means unlimited
	PageSize        int      `toml:"page_size"`
	IndentWidth     int      `toml:"indent_width"`
	ScrollOff       int      `toml:"scroll_off"`
	Watch           bool     `toml:"watch"`
	WatchDebounce   Duration `toml:"watch_debounce"`
	StateFile       bool     `toml:"state_file"`
	SystemClipboard bool     `toml:"system_clipboard"`
}

// ThemeConfig selects the color theme. File, when set, is a TOML theme
// loaded in addition to the built-in ones.
type ThemeConfig struct {
	Name string `toml:"name"`
	File string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Outline: OutlineConfig{
			PageSize:        DefaultPageSize,
			IndentWidth:     DefaultIndentWidth,
			ScrollOff:       DefaultScrollOff,
			Watch:           true,
			WatchDebounce:   Duration{DefaultWatchDebounce},
			StateFile:       true,
			SystemClipboard: true,
		},
		Theme:   ThemeConfig{Name: DefaultThemeName},
		Plugins: make(map[string]map[string]interface{}),
	}
}

// PluginValue returns key from the [plugins.<name>] table.
func (c *Config) PluginValue(name, key string) (interface{}, bool) {
	table, ok := c.Plugins[name]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// DefaultConfigPath returns ~/.config/grove/config.toml, or "" when the
// user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ConfigDirName, DefaultConfigFileName)
}

// ThemesDir returns the directory user theme files are read from, or ""
// when the user config directory is unknown.
func ThemesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ConfigDirName, ThemesDirName)
}

// DefaultLogPath returns the log file beside the config file.
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	return filepath.Join(dir, ConfigDirName, DefaultLogFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// The returned keys are the ones the file set but Config does not know.
func loadFromFile(filePath string, cfg *Config) ([]toml.Key, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return metadata.Undecoded(), nil
}

// validate resets out-of-range values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Outline.HistoryLimit < 0 {
		c.Outline.HistoryLimit = defaults.Outline.HistoryLimit
	}
	if c.Outline.PageSize <= 0 {
		c.Outline.PageSize = defaults.Outline.PageSize
	}
	if c.Outline.IndentWidth <= 0 {
		c.Outline.IndentWidth = defaults.Outline.IndentWidth
	}
	if c.Outline.ScrollOff < 0 {
		c.Outline.ScrollOff = defaults.Outline.ScrollOff
	}
	if c.Outline.WatchDebounce.Duration <= 0 {
		c.Outline.WatchDebounce = defaults.Outline.WatchDebounce
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Theme.Name == "" {
		c.Theme.Name = defaults.Theme.Name
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
}

// Result is a loaded configuration together with what happened while
// loading it. The logger is not initialized yet when loading, so callers
// log Unknown and Path afterwards.
type Result struct {
	Config  *Config
	Path    string     // file that was read, "" if none
	Unknown []toml.Key // unrecognized keys in that file
}

// Load builds a Config from defaults, the file at configFilePath (or the
// default location when empty) and flags.
func Load(configFilePath string, flags *Flags) (Result, error) {
	cfg := NewDefaultConfig()
	res := Result{Config: cfg}

	path := configFilePath
	if path == "" {
		path = DefaultConfigPath()
	}

	var err error
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			res.Path = path
		}
		res.Unknown, err = loadFromFile(path, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return res, err
}
