package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token            string        `yaml:"token"`
	WebAppURL        string        `yaml:"webapp_url"`
	Username         string        `yaml:"username"` // empty: resolved via getMe
	CheckInitTimeout time.Duration `yaml:"check_init_timeout"`
}

type LogConfig struct {
	Level         string `yaml:"level"`  // trace|debug|info|warn|error
	Format        string `yaml:"format"` // json|console
	File          string `yaml:"file"`   // optional rotating log file
	MaxSizeMB     int    `yaml:"max_size_mb"`
	MaxBackups    int    `yaml:"max_backups"`
	MaxAgeDays    int    `yaml:"max_age_days"`
	IncludeCaller bool   `yaml:"include_caller"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the ops server
}

type Config struct {
	Bot  BotConfig  `yaml:"bot"`
	Log  LogConfig  `yaml:"log"`
	HTTP HTTPConfig `yaml:"http"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty), loads
// an optional .env file and applies environment overrides.
func LoadConfig(path string, dev bool) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	cfg.Runtime.Dev = dev

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Bot.Token = defaultString(os.Getenv("TELEGRAM_TOKEN"), cfg.Bot.Token)
	cfg.Bot.WebAppURL = defaultString(os.Getenv("WEBAPP_URL"), cfg.Bot.WebAppURL)
	cfg.Bot.Username = strings.TrimPrefix(defaultString(os.Getenv("BOT_USERNAME"), cfg.Bot.Username), "@")
	cfg.Log.Level = defaultString(os.Getenv("LOG_LEVEL"), cfg.Log.Level)
	cfg.HTTP.Addr = defaultString(os.Getenv("HTTP_ADDR"), cfg.HTTP.Addr)
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.CheckInitTimeout <= 0 {
		cfg.Bot.CheckInitTimeout = 5 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 14
	}
}

func validate(cfg *Config) error {
	if cfg.Bot.Token == "" {
		return errors.New("bot.token is required (or TELEGRAM_TOKEN)")
	}
	if cfg.Bot.WebAppURL == "" {
		return errors.New("bot.webapp_url is required (or WEBAPP_URL)")
	}
	u, err := url.Parse(cfg.Bot.WebAppURL)
	if err != nil {
		return fmt.Errorf("bot.webapp_url: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("bot.webapp_url must be an absolute http(s) URL: got %q", cfg.Bot.WebAppURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("bot.webapp_url must not carry a query or fragment: got %q", cfg.Bot.WebAppURL)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console: got %q", cfg.Log.Format)
	}
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
