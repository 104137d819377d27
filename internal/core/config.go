package core

import (
	"time"

	"bbcrealtime/internal/i18n"
	"bbcrealtime/pkg/realtime"
)

const (
	// DefaultLogLevel keeps a one-shot CLI quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the zap encoding used for stderr logs.
	DefaultLogFormat = "console"
	// DefaultLogFileMaxSizeMB is the rotation size for the optional log file.
	DefaultLogFileMaxSizeMB = 10
	// DefaultLogFileMaxBackups is the number of rotated log files kept.
	DefaultLogFileMaxBackups = 3
	// DefaultLogFileMaxAgeDays is how long rotated log files are kept.
	DefaultLogFileMaxAgeDays = 28
	// DefaultSpotifyMarket is the market used for Spotify track search.
	DefaultSpotifyMarket = "GB"
)

type Config struct {
	Realtime RealtimeConfig
	Spotify  SpotifyConfig
	Metrics  MetricsConfig
	Log      LogConfig
	App      AppConfig
}

type RealtimeConfig struct {
	URLTemplate string
	Timeout     time.Duration
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// Enabled reports whether Spotify lookups are configured.
func (c SpotifyConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type MetricsConfig struct {
	TextfilePath string
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type AppConfig struct {
	Station     string
	Language    string
	Raw         bool
	FailOnEmpty bool
}

func DefaultConfig() *Config {
	return &Config{
		Realtime: RealtimeConfig{
			URLTemplate: realtime.DefaultURLTemplate,
		},
		Spotify: SpotifyConfig{
			Market: DefaultSpotifyMarket,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultLogFileMaxSizeMB,
			MaxBackups: DefaultLogFileMaxBackups,
			MaxAgeDays: DefaultLogFileMaxAgeDays,
		},
		App: AppConfig{
			Station:  realtime.DefaultStation,
			Language: i18n.DefaultLanguage,
		},
	}
}

// RealtimeClientConfig converts the settings into the realtime package's config.
func (c *Config) RealtimeClientConfig() *realtime.Config {
	return &realtime.Config{
		URLTemplate: c.Realtime.URLTemplate,
		Timeout:     c.Realtime.Timeout,
	}
}
