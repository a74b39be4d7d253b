package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Provider struct {
		Default           string `yaml:"default"`
		AlphaVantageKey   string `yaml:"alpha_vantage_key"`
		AlphaVantageDelay int    `yaml:"alpha_vantage_delay"`
		IncludeInfo       *bool  `yaml:"include_info"`
		BatchSize         int    `yaml:"batch_size"`
		Concurrency       int    `yaml:"concurrency"`
		Period            string `yaml:"period"`
	} `yaml:"provider"`
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		MaxStocks int    `yaml:"max_stocks"`
	} `yaml:"server"`
	Cache struct {
		ScanTTL int `yaml:"scan_ttl"`
		NewsTTL int `yaml:"news_ttl"`
	} `yaml:"cache"`
	News struct {
		Limit         int `yaml:"limit"`
		PerQuery      int `yaml:"per_query"`
		DelayMS       int `yaml:"delay_ms"`
		SafeThreshold int `yaml:"safe_threshold"`
	} `yaml:"news"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ScanCron string   `yaml:"scan_cron"`
		Markets  []string `yaml:"markets"`
		MinDrop  float64  `yaml:"min_drop"`
		MaxDrop  float64  `yaml:"max_drop"`
	} `yaml:"schedule"`
	History struct {
		Keep int `yaml:"keep"`
	} `yaml:"history"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file and a .env file, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Provider.Default, "PRICE_PROVIDER")
	setString(&c.Provider.AlphaVantageKey, "ALPHA_VANTAGE_API_KEY")
	setInt(&c.Provider.AlphaVantageDelay, "ALPHA_VANTAGE_DELAY")
	if v := os.Getenv("INCLUDE_INFO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Provider.IncludeInfo = &b
		}
	}
	setInt(&c.Provider.BatchSize, "BATCH_SIZE")
	setInt(&c.Provider.Concurrency, "SCAN_CONCURRENCY")
	setString(&c.Provider.Period, "HISTORY_PERIOD")
	setString(&c.Proxy, "HTTPS_PROXY")
	setInt(&c.Server.Port, "HTTP_PORT")
	setInt(&c.Server.MaxStocks, "MAX_STOCKS")
	setInt(&c.Cache.ScanTTL, "CACHE_SCAN_TTL")
	setInt(&c.Cache.NewsTTL, "CACHE_NEWS_TTL")
	setInt(&c.News.Limit, "NEWS_LIMIT")
	setInt(&c.News.DelayMS, "NEWS_DELAY_MS")
	setInt(&c.News.SafeThreshold, "SAFE_THRESHOLD")
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setString(&c.Schedule.ScanCron, "CRON_SCAN")
	if v := os.Getenv("SCHEDULE_MARKETS"); v != "" {
		c.Schedule.Markets = strings.Split(v, ",")
	}
	setInt(&c.History.Keep, "HISTORY_KEEP")
	setString(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) applyDefaults() {
	if c.Provider.Default == "" {
		c.Provider.Default = "auto"
	}
	if c.Provider.AlphaVantageDelay == 0 {
		c.Provider.AlphaVantageDelay = 12
	}
	if c.Provider.IncludeInfo == nil {
		t := true
		c.Provider.IncludeInfo = &t
	}
	if c.Provider.BatchSize == 0 {
		c.Provider.BatchSize = 100
	}
	if c.Provider.Concurrency == 0 {
		c.Provider.Concurrency = 5
	}
	if c.Provider.Period == "" {
		c.Provider.Period = "1y"
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.MaxStocks == 0 {
		c.Server.MaxStocks = 150
	}
	if c.Cache.ScanTTL == 0 {
		c.Cache.ScanTTL = 300
	}
	if c.Cache.NewsTTL == 0 {
		c.Cache.NewsTTL = 600
	}
	if c.News.Limit == 0 {
		c.News.Limit = 10
	}
	if c.News.PerQuery == 0 {
		c.News.PerQuery = 5
	}
	if c.News.DelayMS == 0 {
		c.News.DelayMS = 500
	}
	if c.News.SafeThreshold == 0 {
		c.News.SafeThreshold = 50
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 30 22 * * 1-5"
	}
	if len(c.Schedule.Markets) == 0 {
		c.Schedule.Markets = []string{"sp500"}
	}
	if c.Schedule.MinDrop == 0 && c.Schedule.MaxDrop == 0 {
		c.Schedule.MinDrop, c.Schedule.MaxDrop = 20, 30
	}
	if c.History.Keep == 0 {
		c.History.Keep = 50
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks value ranges and the cron expression.
func (c *Config) Validate() error {
	if c.Schedule.MinDrop < 0 || c.Schedule.MaxDrop > 100 || c.Schedule.MinDrop >= c.Schedule.MaxDrop {
		return fmt.Errorf("schedule drop range [%g, %g] is invalid", c.Schedule.MinDrop, c.Schedule.MaxDrop)
	}
	if c.Provider.BatchSize <= 0 {
		return fmt.Errorf("provider.batch_size must be positive")
	}
	if c.Provider.Concurrency <= 0 {
		return fmt.Errorf("provider.concurrency must be positive")
	}
	if c.Provider.AlphaVantageDelay < 0 {
		return fmt.Errorf("provider.alpha_vantage_delay must not be negative")
	}
	if c.Server.MaxStocks <= 0 {
		return fmt.Errorf("server.max_stocks must be positive")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Schedule.ScanCron); err != nil {
		return fmt.Errorf("schedule.scan_cron: %w", err)
	}
	return nil
}

// HistoryEnabled reports whether scan runs are recorded. A negative keep disables it.
func (c *Config) HistoryEnabled() bool {
	return c.History.Keep > 0
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IncludeInfo reports the metadata enrichment default.
func (c *Config) IncludeInfo() bool {
	return c.Provider.IncludeInfo == nil || *c.Provider.IncludeInfo
}

// AlphaVantageInterval is the minimum spacing of tertiary requests.
func (c *Config) AlphaVantageInterval() time.Duration {
	return time.Duration(c.Provider.AlphaVantageDelay) * time.Second
}

// NewsDelay is the pause between per-match news assessments.
func (c *Config) NewsDelay() time.Duration {
	return time.Duration(c.News.DelayMS) * time.Millisecond
}

// ScanTTL is the lifetime of cached scan and detail results.
func (c *Config) ScanTTL() time.Duration {
	return time.Duration(c.Cache.ScanTTL) * time.Second
}

// NewsTTL is the lifetime of cached news assessments.
func (c *Config) NewsTTL() time.Duration {
	return time.Duration(c.Cache.NewsTTL) * time.Second
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
