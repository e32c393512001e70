package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the effective settings for the alertctl binary.
type Config struct {
	NATSURL     string `json:"nats_url"`     // ALERTS_NATS_URL (optional, empty = no events)
	EventPrefix string `json:"event_prefix"` // ALERTS_EVENT_PREFIX (default "alerts")
	LogLevel    string `json:"log_level"`    // ALERTS_LOG_LEVEL (default "info")
	LogFormat   string `json:"log_format"`   // ALERTS_LOG_FORMAT ("text" or "json", default "text")
}

// profile mirrors Config in the optional TOML file.
type profile struct {
	NATSURL     string `toml:"nats_url"`
	EventPrefix string `toml:"event_prefix"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
}

// DefaultPath returns the location of the TOML profile,
// ~/.config/alerts/config.toml, or ALERTS_CONFIG when set.
func DefaultPath() string {
	if p := os.Getenv("ALERTS_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "alerts", "config.toml")
}

// Load reads the profile at path (a missing file is not an error; an empty
// path skips the file) and then applies environment overrides.
func Load(path string) (*Config, error) {
	c := &Config{
		EventPrefix: "alerts",
		LogLevel:    "info",
		LogFormat:   "text",
	}

	if path != "" {
		var p profile
		if _, err := toml.DecodeFile(path, &p); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		} else {
			c.NATSURL = orDefault(p.NATSURL, c.NATSURL)
			c.EventPrefix = orDefault(p.EventPrefix, c.EventPrefix)
			c.LogLevel = orDefault(p.LogLevel, c.LogLevel)
			c.LogFormat = orDefault(p.LogFormat, c.LogFormat)
		}
	}

	c.NATSURL = envOrDefault("ALERTS_NATS_URL", c.NATSURL)
	c.EventPrefix = envOrDefault("ALERTS_EVENT_PREFIX", c.EventPrefix)
	c.LogLevel = envOrDefault("ALERTS_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOrDefault("ALERTS_LOG_FORMAT", c.LogFormat)

	if _, err := c.Level(); err != nil {
		return nil, err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("ALERTS_LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	return c, nil
}

// Level parses LogLevel into a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("ALERTS_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a logger writing to stderr at the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Save writes c to path as TOML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(profile{
		NATSURL:     c.NATSURL,
		EventPrefix: c.EventPrefix,
		LogLevel:    c.LogLevel,
		LogFormat:   c.LogFormat,
	})
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
