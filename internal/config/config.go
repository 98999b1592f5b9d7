// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	SavedQueriesFile     string        `toml:"saved_queries_file"`
	HistoryEnabled       bool          `toml:"history_enabled"`
	HistoryRetentionDays int           `toml:"history_retention_days"`
	PollInterval         time.Duration `toml:"poll_interval"`
	LogLevel             string        `toml:"log_level"`
	LogFile              string        `toml:"log_file"`
	Profiles             []Profile     `toml:"profiles"`
	Theme                Theme         `toml:"theme_colors"`
	Keys                 KeyMap        `toml:"keys"`

	// path the config was loaded from; empty for in-memory defaults
	path string
}

// Theme defines the color palette
type Theme struct {
	TextPrimary string `toml:"text_primary"`
	TextFaint   string `toml:"text_faint"`
	Accent      string `toml:"accent"`
	Keyword     string `toml:"keyword"`
	Success     string `toml:"success"`
	Error       string `toml:"error"`
	Highlight   string `toml:"highlight"`
	Border      string `toml:"border"`
}

// KeyMap defines key bindings as bubbletea key strings
type KeyMap struct {
	Execute      []string `toml:"execute"`
	Save         []string `toml:"save"`
	ListSaved    []string `toml:"list_saved"`
	Autocomplete []string `toml:"autocomplete"`
	Quit         []string `toml:"quit"`
	Cancel       []string `toml:"cancel"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		SavedQueriesFile:     "saved_queries.json",
		HistoryEnabled:       true,
		HistoryRetentionDays: 90,
		PollInterval:         100 * time.Millisecond,
		LogLevel:             "info",
		Profiles:             []Profile{},
		Theme:                DefaultTheme(),
		Keys:                 DefaultKeyMap(),
	}
}

// DefaultTheme returns the Nord palette
func DefaultTheme() Theme {
	return Theme{
		TextPrimary: "#D8DEE9",
		TextFaint:   "#4C566A",
		Accent:      "#88C0D0",
		Keyword:     "#81A1C1",
		Success:     "#A3BE8C",
		Error:       "#BF616A",
		Highlight:   "#8FBCBB",
		Border:      "#4C566A",
	}
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Execute:      []string{"enter"},
		Save:         []string{"ctrl+s"},
		ListSaved:    []string{"f2"},
		Autocomplete: []string{"tab"},
		Quit:         []string{"esc"},
		Cancel:       []string{"esc"},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ezsql/config.toml")
}

// Load loads the config from the XDG path or creates default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path, writing defaults on first run
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.path = path

	updated := cfg.fillDefaults()
	if !md.IsDefined("history_enabled") {
		cfg.HistoryEnabled = true
		updated = true
	}
	if updated {
		// Persist back-filled values so users can see and edit them.
		// A read-only config dir is not fatal.
		_ = cfg.Save()
	}

	return &cfg, nil
}

// fillDefaults populates missing fields and reports whether anything changed
func (c *Config) fillDefaults() bool {
	defaults := DefaultConfig()
	updated := false

	if c.SavedQueriesFile == "" {
		c.SavedQueriesFile = defaults.SavedQueriesFile
		updated = true
	}
	if c.HistoryRetentionDays <= 0 {
		c.HistoryRetentionDays = defaults.HistoryRetentionDays
		updated = true
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
		updated = true
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}

	keys := &c.Keys
	for _, kb := range []struct {
		dst *[]string
		def []string
	}{
		{&keys.Execute, defaults.Keys.Execute},
		{&keys.Save, defaults.Keys.Save},
		{&keys.ListSaved, defaults.Keys.ListSaved},
		{&keys.Autocomplete, defaults.Keys.Autocomplete},
		{&keys.Quit, defaults.Keys.Quit},
		{&keys.Cancel, defaults.Keys.Cancel},
	} {
		if len(*kb.dst) == 0 {
			*kb.dst = kb.def
			updated = true
		}
	}

	if c.Profiles == nil {
		c.Profiles = []Profile{}
	}
	return updated
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
