// Package config handles voidshell configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"
)

// MobileWidth is the default terminal width below which the surface counts
// as constrained (htop refuses to start).
const MobileWidth = 80

// EnvWeatherKey overrides weather.api_key when set.
const EnvWeatherKey = "OPENWEATHER_API_KEY"

// Config holds application configuration.
type Config struct {
	// Lang is the initial locale ("es" or "en")
	Lang string `yaml:"lang"`

	// Theme is the initial palette name
	Theme string `yaml:"theme"`

	// User and Host make up the prompt (user@host)
	User string `yaml:"user"`
	Host string `yaml:"host"`

	// Home is the starting directory and the target of a bare `cd`
	Home string `yaml:"home"`

	// HistoryLimit caps the command history
	HistoryLimit int `yaml:"history_limit"`

	// MobileWidth is the width below which the TUI reports a constrained surface
	MobileWidth int `yaml:"mobile_width"`

	// IPLookupURL returns {"ip": "..."} for neofetch
	IPLookupURL string `yaml:"ip_lookup_url"`

	Weather Weather `yaml:"weather"`
	Log     Log     `yaml:"log"`
}

// Weather configures the OpenWeatherMap client.
type Weather struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Log configures the zap logger. An empty File disables logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Lang:         "es",
		Theme:        "default",
		User:         "glitchbane",
		Host:         "voidshell",
		Home:         "/home/glitchbane",
		HistoryLimit: 50,
		MobileWidth:  MobileWidth,
		IPLookupURL:  "https://api.ipify.org?format=json",
		Weather: Weather{
			BaseURL: "https://api.openweathermap.org",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPath returns ~/.config/voidshell/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "voidshell", "config.yaml")
}

// Load reads path (DefaultPath when empty), falling back to defaults when the
// file does not exist. The weather key from the environment wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, errors.Errorf("parse %s: %v", path, err)
		}
		mergeConfig(cfg, &fileCfg)
	case os.IsNotExist(err):
		// Config file doesn't exist, use defaults
	default:
		return nil, errors.Wrap(err, 0)
	}

	if key := os.Getenv(EnvWeatherKey); key != "" {
		cfg.Weather.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the shell cannot run with.
func (c *Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return errors.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.MobileWidth < 0 {
		return errors.Errorf("mobile_width must not be negative, got %d", c.MobileWidth)
	}
	if len(c.Home) == 0 || c.Home[0] != '/' {
		return errors.Errorf("home must be an absolute path, got %q", c.Home)
	}
	return nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied.
func mergeConfig(dst, src *Config) {
	if src.Lang != "" {
		dst.Lang = src.Lang
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.User != "" {
		dst.User = src.User
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Home != "" {
		dst.Home = src.Home
	}
	if src.HistoryLimit != 0 {
		dst.HistoryLimit = src.HistoryLimit
	}
	if src.MobileWidth != 0 {
		dst.MobileWidth = src.MobileWidth
	}
	if src.IPLookupURL != "" {
		dst.IPLookupURL = src.IPLookupURL
	}
	if src.Weather.APIKey != "" {
		dst.Weather.APIKey = src.Weather.APIKey
	}
	if src.Weather.BaseURL != "" {
		dst.Weather.BaseURL = src.Weather.BaseURL
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
	if src.Log.File != "" {
		dst.Log.File = src.Log.File
	}
}
