// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds the settings of the document HTTP client.
type HTTPConfig struct {
	// Timeout bounds the whole request/response exchange (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request. The
	// document host rejects non-browser clients, so the default is a
	// desktop Chrome identity.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the document fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the prefix the chapter code is appended to
	// (default "https://ncert.nic.in/textbook/pdf/").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Destination is a local directory or an s3://bucket/prefix location.
	Destination string `json:"destination" yaml:"destination" mapstructure:"destination"`
}

// HistoryConfig holds settings for the download ledger.
type HistoryConfig struct {
	// Enabled turns recording of completed downloads on or off (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	// Textfile is the path metrics are written to after each command.
	// Empty disables the dump.
	Textfile string `json:"textfile" yaml:"textfile" mapstructure:"textfile"`
}

// AppConfig groups every configurable section.
type AppConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`

	// Pager is the command the catalog listing is piped through.
	Pager string `json:"pager" yaml:"pager" mapstructure:"pager"`
}
