package config

import (
	"errors"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the terminal reads at startup. Intervals are in
// milliseconds to match the config file.
type Config struct {
	APIBaseURL           string `mapstructure:"api_base_url"`
	PollIntervalMs       int    `mapstructure:"poll_interval_ms"`
	RequestTimeoutMs     int    `mapstructure:"request_timeout_ms"`
	NotificationTTLMs    int    `mapstructure:"notification_ttl_ms"`
	HistorySize          int    `mapstructure:"history_size"`
	ChartPoints          int    `mapstructure:"chart_points"`
	NewsRefreshMs        int    `mapstructure:"news_refresh_ms"`
	LeaderboardRefreshMs int    `mapstructure:"leaderboard_refresh_ms"`
	DebugLogging         bool   `mapstructure:"debug_logging"`
	LogFile              string `mapstructure:"log_file"`
}

const (
	DefaultAPIBaseURL           = "http://localhost:8000"
	DefaultPollIntervalMs       = 2000
	DefaultRequestTimeoutMs     = 10000
	DefaultNotificationTTLMs    = 3000
	DefaultHistorySize          = 50
	DefaultChartPoints          = 30
	DefaultNewsRefreshMs        = 15000
	DefaultLeaderboardRefreshMs = 10000
	DefaultLogFile              = "terminal.log"
)

// Load reads the config file at path, fills defaults and applies
// VITALYZE_* environment overrides. A missing file is fine; defaults plus
// environment cover the common case.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"api_base_url":           DefaultAPIBaseURL,
		"poll_interval_ms":       DefaultPollIntervalMs,
		"request_timeout_ms":     DefaultRequestTimeoutMs,
		"notification_ttl_ms":    DefaultNotificationTTLMs,
		"history_size":           DefaultHistorySize,
		"chart_points":           DefaultChartPoints,
		"news_refresh_ms":        DefaultNewsRefreshMs,
		"leaderboard_refresh_ms": DefaultLeaderboardRefreshMs,
		"log_file":               DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.SetEnvPrefix("VITALYZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if env := v.GetString("API_BASE_URL"); env != "" {
		v.Set("api_base_url", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validate(&cfg)
}

// PollInterval returns the poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// RequestTimeout returns the per-request deadline as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// NotificationTTL returns how long a notification stays visible.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLMs) * time.Millisecond
}

// NewsRefresh returns the news widget cadence.
func (c *Config) NewsRefresh() time.Duration {
	return time.Duration(c.NewsRefreshMs) * time.Millisecond
}

// LeaderboardRefresh returns the leaderboard cadence.
func (c *Config) LeaderboardRefresh() time.Duration {
	return time.Duration(c.LeaderboardRefreshMs) * time.Millisecond
}

func validate(cfg *Config) error {
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || !strings.HasPrefix(parsed.Scheme, "http") {
		return errors.New("api_base_url must be an http(s) URL")
	}
	if cfg.PollIntervalMs <= 0 {
		return errors.New("invalid poll_interval_ms")
	}
	if cfg.RequestTimeoutMs <= 0 {
		return errors.New("invalid request_timeout_ms")
	}
	if cfg.NotificationTTLMs <= 0 {
		return errors.New("invalid notification_ttl_ms")
	}
	if cfg.HistorySize <= 0 {
		return errors.New("invalid history_size")
	}
	if cfg.ChartPoints <= 0 {
		return errors.New("invalid chart_points")
	}
	if cfg.NewsRefreshMs <= 0 {
		return errors.New("invalid news_refresh_ms")
	}
	if cfg.LeaderboardRefreshMs <= 0 {
		return errors.New("invalid leaderboard_refresh_ms")
	}
	return nil
}
