// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// analytics agent client.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.ecomagent/config.toml
//   - ~/.ecomagent/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API configuration
	API APIConfig `toml:"api" json:"api"`

	// Session configuration
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains the analytics service endpoint configuration.
type APIConfig struct {
	// BaseURL of the analytics service
	BaseURL string `toml:"base_url" json:"base_url"`
	// QueryTimeoutSecs bounds a single query submission. The server runs
	// an agent pipeline per question, so this is generous by default.
	QueryTimeoutSecs int `toml:"query_timeout_secs" json:"query_timeout_secs"`
	// RequestTimeoutSecs bounds history and stats calls
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// QueriesPerMinute rate-limits submissions client-side (0 = unlimited)
	QueriesPerMinute int `toml:"queries_per_minute" json:"queries_per_minute"`
}

// SessionConfig contains session defaults.
type SessionConfig struct {
	// DefaultKey is the session activated at startup
	DefaultKey string `toml:"default_key" json:"default_key"`
	// RegistryPath is the sqlite file listing locally known sessions
	// (empty = ~/.ecomagent/sessions.db)
	RegistryPath string `toml:"registry_path" json:"registry_path"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// MarkdownWidth is the word-wrap width for assistant replies
	MarkdownWidth int `toml:"markdown_width" json:"markdown_width"`
	// MaxTableRows caps rows drawn per result table
	MaxTableRows int `toml:"max_table_rows" json:"max_table_rows"`
	// ShowTimestamps toggles per-message timestamps
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:            "http://127.0.0.1:8000",
			QueryTimeoutSecs:   90,
			RequestTimeoutSecs: 15,
			QueriesPerMinute:   20,
		},
		Session: SessionConfig{
			DefaultKey: "default",
		},
		UI: UIConfig{
			MarkdownWidth:  80,
			MaxTableRows:   20,
			ShowTimestamps: true,
		},
	}
}

// fillDefaults replaces zero values with defaults after a partial file load.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.QueryTimeoutSecs == 0 {
		cfg.API.QueryTimeoutSecs = def.API.QueryTimeoutSecs
	}
	if cfg.API.RequestTimeoutSecs == 0 {
		cfg.API.RequestTimeoutSecs = def.API.RequestTimeoutSecs
	}
	if cfg.Session.DefaultKey == "" {
		cfg.Session.DefaultKey = def.Session.DefaultKey
	}
	if cfg.UI.MarkdownWidth == 0 {
		cfg.UI.MarkdownWidth = def.UI.MarkdownWidth
	}
	if cfg.UI.MaxTableRows == 0 {
		cfg.UI.MaxTableRows = def.UI.MaxTableRows
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.ecomagent).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ecomagent"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// RegistryPath resolves the session registry location.
func (c *Config) RegistryPath() (string, error) {
	if c.Session.RegistryPath != "" {
		return c.Session.RegistryPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default locations.
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension; anything that is not .json is decoded as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	}

	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default TOML file with owner-only
// permissions.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# ecomagent configuration file")
	fmt.Fprintln(file, "# Generated - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment always wins over file values.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("ECOM_AGENT_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if key := os.Getenv("ECOM_AGENT_SESSION"); key != "" {
		c.Session.DefaultKey = key
	}
	if secs := os.Getenv("ECOM_AGENT_QUERY_TIMEOUT"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.API.QueryTimeoutSecs = n
		}
	}
	if path := os.Getenv("ECOM_AGENT_REGISTRY"); path != "" {
		c.Session.RegistryPath = path
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

var errInvalidBaseURL = errors.New("api.base_url must be an absolute http(s) URL")

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return errInvalidBaseURL
	}
	if c.API.QueryTimeoutSecs <= 0 {
		return errors.New("api.query_timeout_secs must be positive")
	}
	if c.API.RequestTimeoutSecs <= 0 {
		return errors.New("api.request_timeout_secs must be positive")
	}
	if c.API.QueriesPerMinute < 0 {
		return errors.New("api.queries_per_minute must not be negative")
	}
	if c.Session.DefaultKey == "" {
		return errors.New("session.default_key must not be empty")
	}
	if c.UI.MarkdownWidth < 20 {
		return errors.New("ui.markdown_width must be at least 20")
	}
	return nil
}
