// Package config loads service configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all recognized options. Durations are written in seconds or
// minutes in the file to keep it editable by hand.
type Config struct {
	// Password is the shared secret gating the browse surface.
	Password string `toml:"password"`
	// FeedURL is the published tabular (CSV) export of the media index.
	FeedURL string `toml:"feed_url"`
	// BaseURL is prepended to external share links (?id=...).
	BaseURL string `toml:"base_url"`
	// Bind is the HTTP listen address.
	Bind string `toml:"bind"`
	// DBPath is the SQLite snapshot location. Empty keeps snapshots
	// in memory only.
	DBPath string `toml:"db_path"`

	CatalogTTLSeconds   int `toml:"catalog_ttl_seconds"`
	AudioTTLSeconds     int `toml:"audio_ttl_seconds"`
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`

	PageSize      int `toml:"page_size"`
	PageIncrement int `toml:"page_increment"`

	// SessionTimeoutMinutes of 0 means sessions never expire on their own.
	SessionTimeoutMinutes int `toml:"session_timeout_minutes"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Bind:                "127.0.0.1:8080",
		DBPath:              "medialib.db",
		CatalogTTLSeconds:   180,
		AudioTTLSeconds:     120,
		FetchTimeoutSeconds: 10,
		PageSize:            20,
		PageIncrement:       20,
	}
}

// Load reads path over the defaults. A missing file is not an error so a
// deployment can run on flags/defaults alone; a present-but-broken file is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the options a running service cannot do without.
func (c Config) Validate() error {
	if c.Password == "" {
		return errors.New("config: password must be set")
	}
	if c.FeedURL == "" {
		return errors.New("config: feed_url must be set")
	}
	if c.BaseURL == "" {
		return errors.New("config: base_url must be set")
	}
	if c.PageSize <= 0 || c.PageIncrement <= 0 {
		return errors.New("config: page_size and page_increment must be positive")
	}
	return nil
}

func (c Config) CatalogTTL() time.Duration { return time.Duration(c.CatalogTTLSeconds) * time.Second }
func (c Config) AudioTTL() time.Duration   { return time.Duration(c.AudioTTLSeconds) * time.Second }
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SessionTimeout returns 0 when sessions should never expire.
func (c Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}
