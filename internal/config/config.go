// Package config handles application configuration from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Embedded zone database for TIMEZONE lookups.

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string        `yaml:"telegram_bot_token"`
	APIKey           string        `yaml:"api_key"`
	APIHost          string        `yaml:"api_host"`
	APIBaseURL       string        `yaml:"api_base_url"`
	DatabasePath     string        `yaml:"database_path"`
	LogLevel         string        `yaml:"log_level"`
	AllowedUsers     []int64       `yaml:"allowed_users"`
	PollInterval     time.Duration `yaml:"poll_interval"`
	MetricsAddr      string        `yaml:"metrics_addr"`
	Timezone         string        `yaml:"timezone"`
}

// Load reads configuration from the file named by CONFIG_FILE, if any, and
// then from environment variables. Environment variables take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	setString(&cfg.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	setString(&cfg.APIKey, "RAPIDAPI_KEY")
	setString(&cfg.APIHost, "RAPIDAPI_HOST")
	setString(&cfg.APIBaseURL, "API_BASE_URL")
	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.MetricsAddr, "METRICS_ADDR")
	setString(&cfg.Timezone, "TIMEZONE")

	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL %q: %w", raw, err)
		}
		cfg.PollInterval = d
	}

	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		cfg.AllowedUsers = nil
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			cfg.AllowedUsers = append(cfg.AllowedUsers, uid)
		}
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("RAPIDAPI_KEY is required")
	}

	cfg.applyDefaults()

	if cfg.PollInterval < 10*time.Second {
		return nil, fmt.Errorf("poll interval %s is too short, minimum is 10s", cfg.PollInterval)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.APIHost == "" {
		c.APIHost = "cricbuzz-cricket.p.rapidapi.com"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://" + c.APIHost
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./data/bot.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PollInterval == 0 {
		c.PollInterval = time.Minute
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

// Location returns the time zone used to display start times.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
