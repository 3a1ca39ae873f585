package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"QuoteChart/internal/logger"
	"QuoteChart/internal/model"
)

// Provider names accepted in data_source.provider.
const (
	ProviderMarketstack = "marketstack"
	ProviderYahoo       = "yahoo"
	ProviderMock        = "mock"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider      string   `yaml:"provider"`
		BaseURL       string   `yaml:"base_url"`
		APIKey        string   `yaml:"api_key"`
		Symbols       []string `yaml:"symbols"`
		HistoryMonths int      `yaml:"history_months"`
		RatePerSecond float64  `yaml:"rate_per_second"`
	} `yaml:"data_source"`
	Indicators struct {
		SMAPeriod int `yaml:"sma_period"`
		EMAPeriod int `yaml:"ema_period"`
		RSIPeriod int `yaml:"rsi_period"`
	} `yaml:"indicators"`
	Chart struct {
		DefaultWindow string `yaml:"default_window"`
		Timezone      string `yaml:"timezone"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		DigestCron  string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Watchlist struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"watchlist"`
	Log   logger.Config `yaml:"log"`
	Proxy string        `yaml:"proxy"`
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
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

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("MARKETSTACK_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MARKETSTACK_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Chart.Timezone = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		if c.DataSource.APIKey != "" {
			c.DataSource.Provider = ProviderMarketstack
		} else {
			c.DataSource.Provider = ProviderYahoo
		}
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "http://api.marketstack.com/v2"
	}
	if len(c.DataSource.Symbols) == 0 {
		c.DataSource.Symbols = []string{"AAPL", "MSFT"}
	}
	if c.DataSource.HistoryMonths == 0 {
		c.DataSource.HistoryMonths = 6
	}
	if c.DataSource.RatePerSecond == 0 {
		c.DataSource.RatePerSecond = 5
	}
	if c.Indicators.SMAPeriod == 0 {
		c.Indicators.SMAPeriod = 20
	}
	if c.Indicators.EMAPeriod == 0 {
		c.Indicators.EMAPeriod = 20
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Chart.DefaultWindow == "" {
		c.Chart.DefaultWindow = "month"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = "0 0 8 * * 1"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/quotechart.db"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 15 * time.Minute
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Watchlist.StateFile == "" {
		c.Watchlist.StateFile = "data/watchlist.json"
	}
	c.Log = c.Log.WithDefaults()
}

// Location resolves chart.timezone, falling back to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Chart.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Chart.Timezone)
}

// Window parses chart.default_window.
func (c *Config) Window() (model.TimeWindow, error) {
	return model.ParseTimeWindow(c.Chart.DefaultWindow)
}

// TelegramEnabled reports whether both bot token and chat ID are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderMarketstack:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for marketstack")
		}
	case ProviderYahoo, ProviderMock:
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols must not be empty")
	}
	if c.DataSource.HistoryMonths <= 0 {
		return fmt.Errorf("data_source.history_months must be positive")
	}
	if c.Indicators.SMAPeriod <= 0 || c.Indicators.EMAPeriod <= 0 || c.Indicators.RSIPeriod <= 0 {
		return fmt.Errorf("indicator periods must be positive")
	}
	if _, err := c.Window(); err != nil {
		return fmt.Errorf("chart.default_window: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("chart.timezone: %w", err)
	}
	return nil
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
