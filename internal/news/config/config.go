package config

import (
	"time"

	"hotnews-aggregator/pkg/config"
)

// Aggregator holds settings for the multi-source fetch pipeline.
type Aggregator struct {
	BaseURL           string        `mapstructure:"base_url"`
	UserAgent         string        `mapstructure:"user_agent"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
}

// Scheduler holds settings for the periodic refresh job.
type Scheduler struct {
	RefreshCron   string `mapstructure:"refresh_cron"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Feed holds settings for feed assembly and caching.
type Feed struct {
	HotCacheTTL time.Duration `mapstructure:"hot_cache_ttl"`
}

// Config holds the full configuration for the news service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Aggregator Aggregator      `mapstructure:"aggregator"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
	Feed       Feed            `mapstructure:"feed"`
	Telegram   config.Telegram `mapstructure:"telegram"`
}

// Load loads the news service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
