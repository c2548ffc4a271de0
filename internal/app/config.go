// Package app loads daemon configuration by layering defaults, an
// optional YAML file, and BOARD_-prefixed environment variables.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Run modes.
const (
	RunModeServe = "serve"
	RunModeOnce  = "once"
)

// Source kinds.
const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SpreadsheetID identifies the mirrored document. Required.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// LeaderboardGID and ConfigGID select the two exported ranges.
	LeaderboardGID string `koanf:"leaderboard_gid"`
	ConfigGID      string `koanf:"config_gid"`

	// ProxyPrefix is the CORS-relay prefix the export URL is encoded
	// behind.
	ProxyPrefix string `koanf:"proxy_prefix"`

	// RefreshIntervalSeconds sets the leaderboard refresh period.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// HTTPTimeoutSeconds bounds one fetch round-trip.
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds"`

	// Source selects the transport: "csv" (export via relay) or
	// "sheets" (authenticated Sheets API).
	Source string `koanf:"source"`

	// CredentialsFile holds service-account credentials for the
	// sheets source.
	CredentialsFile string `koanf:"credentials_file"`

	// SheetsLeaderboardRange and SheetsConfigRange are the A1-notation
	// ranges used by the sheets source.
	SheetsLeaderboardRange string `koanf:"sheets_leaderboard_range"`
	SheetsConfigRange      string `koanf:"sheets_config_range"`

	// RunMode is "serve" (daemon) or "once" (print the table and exit).
	RunMode string `koanf:"run_mode"`

	// MaxLimit caps the standings limit query parameter.
	MaxLimit int `koanf:"max_limit"`

	// Ntfy settings for leader-change notifications.
	NtfyEnabled bool   `koanf:"ntfy_enabled"`
	NtfyURL     string `koanf:"ntfy_url"`
	NtfyTopic   string `koanf:"ntfy_topic"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		Addr:                   ":8080",
		LeaderboardGID:         "0",
		ConfigGID:              "1",
		ProxyPrefix:            "https://api.allorigins.win/raw?url=",
		RefreshIntervalSeconds: 300,
		HTTPTimeoutSeconds:     10,
		Source:                 SourceCSV,
		CredentialsFile:        "credentials.json",
		SheetsLeaderboardRange: "Leaderboard!A1:Z1000",
		SheetsConfigRange:      "Config!A1:B100",
		RunMode:                RunModeServe,
		MaxLimit:               100,
		NtfyEnabled:            false,
		NtfyURL:                "https://ntfy.sh",
		NtfyTopic:              "codename-board",
	}
}

// Load builds a Config by layering defaults, optional file, and env.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BOARD_CONFIG is set
//  3. env (prefix BOARD_)
//
// The context is accepted to keep the loader's signature stable for
// providers that need one; the file and env providers do not.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("BOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// BOARD_SPREADSHEET_ID -> spreadsheet_id, etc. Underscores are
	// preserved to match the koanf tags.
	envProvider := env.Provider("BOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "board_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SpreadsheetID == "" {
		return errors.New("spreadsheet_id must not be empty")
	}
	if c.Source != SourceCSV && c.Source != SourceSheets {
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.RunMode != RunModeServe && c.RunMode != RunModeOnce {
		return fmt.Errorf("unknown run_mode %q", c.RunMode)
	}
	if c.RefreshIntervalSeconds <= 0 {
		return errors.New("refresh_interval_seconds must be positive")
	}
	return nil
}

// ExportURL builds the document's CSV export endpoint.
func (c *Config) ExportURL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export", c.SpreadsheetID)
}

// RefreshInterval returns the refresh period as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
