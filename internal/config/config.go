// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Sources       SourcesConfig       `yaml:"sources"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Cache         CacheConfig         `yaml:"cache"`
	Alerts        AlertsConfig        `yaml:"alerts"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// AuthConfig defines API access settings. An empty APIKey disables key
// checks.
type AuthConfig struct {
	APIKey         string   `yaml:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig caps requests per client IP.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled"`
	Max     int           `yaml:"max"`    // requests per window
	Window  time.Duration `yaml:"window"` // default: 1m
}

// SourcesConfig lists the deal feeds polled by ingestion.
type SourcesConfig struct {
	Naver      NaverConfig `yaml:"naver"`
	RSS        RSSConfig   `yaml:"rss"`
	Categories []string    `yaml:"categories"`
}

// NaverConfig defines Naver Shopping API settings.
type NaverConfig struct {
	Enabled           bool    `yaml:"enabled"`
	ClientID          string  `yaml:"client_id"`
	ClientSecret      string  `yaml:"client_secret"`
	URL               string  `yaml:"url"`
	Display           int     `yaml:"display"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	DailyLimit        int64   `yaml:"daily_limit"`
}

// RSSConfig defines community RSS feeds.
type RSSConfig struct {
	Enabled bool         `yaml:"enabled"`
	Feeds   []FeedConfig `yaml:"feeds"`
}

// FeedConfig is one RSS feed.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ScheduleConfig defines cron intervals. A zero interval disables
// scheduled ingestion.
type ScheduleConfig struct {
	IngestionInterval time.Duration `yaml:"ingestion_interval"`
}

// CacheConfig selects the trust score cache backend.
type CacheConfig struct {
	Backend string        `yaml:"backend"` // none, memory, redis
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig defines Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password"`
}

// AlertsConfig defines alert behavior.
type AlertsConfig struct {
	MinMatchScore float64 `yaml:"min_match_score"` // default: 0.8
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyRateLimitDefaults(&cfg.RateLimit)
	applySourcesDefaults(&cfg.Sources)
	applyCacheDefaults(&cfg.Cache)
	applyAlertsDefaults(&cfg.Alerts)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.Max == 0 {
		r.Max = 60
	}
	if r.Window == 0 {
		r.Window = time.Minute
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.Naver.Display == 0 {
		s.Naver.Display = 20
	}
	if s.Naver.RequestsPerSecond == 0 {
		s.Naver.RequestsPerSecond = 10
	}
	if s.Naver.DailyLimit == 0 {
		s.Naver.DailyLimit = 25000
	}
	for i := range s.RSS.Feeds {
		if s.RSS.Feeds[i].Name == "" {
			s.RSS.Feeds[i].Name = fmt.Sprintf("rss-%d", i+1)
		}
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Backend == "" {
		c.Backend = CacheNone
	}
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

func applyAlertsDefaults(a *AlertsConfig) {
	if a.MinMatchScore == 0 {
		a.MinMatchScore = 0.8
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.Max < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.max must be positive (got %d)", cfg.RateLimit.Max))
	}

	if cfg.Sources.Naver.Enabled {
		if cfg.Sources.Naver.ClientID == "" || cfg.Sources.Naver.ClientSecret == "" {
			errs = append(errs, errors.New("sources.naver.client_id and client_secret are required when naver is enabled"))
		}
	}
	if cfg.Sources.RSS.Enabled {
		for i, f := range cfg.Sources.RSS.Feeds {
			if f.URL == "" {
				errs = append(errs, fmt.Errorf("sources.rss.feeds[%d].url is required", i))
			}
		}
	}

	if cfg.Schedule.IngestionInterval < 0 {
		errs = append(errs, fmt.Errorf("schedule.ingestion_interval must not be negative (got %s)", cfg.Schedule.IngestionInterval))
	}

	switch cfg.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be one of: none, memory, redis (got %q)", cfg.Cache.Backend))
	}

	if cfg.Alerts.MinMatchScore < 0 || cfg.Alerts.MinMatchScore > 1 {
		errs = append(errs, fmt.Errorf("alerts.min_match_score must be within [0,1] (got %g)", cfg.Alerts.MinMatchScore))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when discord is enabled"))
	}

	if !slices.Contains([]string{"text", "json"}, cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
