package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var envKeys = []string{
	"CONFIG_FILE", "TELEGRAM_BOT_TOKEN", "RAPIDAPI_KEY", "RAPIDAPI_HOST", "API_BASE_URL",
	"DATABASE_PATH", "LOG_LEVEL", "ALLOWED_USERS", "POLL_INTERVAL", "METRICS_ADDR", "TIMEZONE",
}

func defaults(token, key string) *Config {
	return &Config{
		TelegramBotToken: token,
		APIKey:           key,
		APIHost:          "cricbuzz-cricket.p.rapidapi.com",
		APIBaseURL:       "https://cricbuzz-cricket.p.rapidapi.com",
		DatabasePath:     "./data/bot.db",
		LogLevel:         "info",
		PollInterval:     time.Minute,
		Timezone:         "UTC",
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "missing token",
			env:     map[string]string{"RAPIDAPI_KEY": "key"},
			wantErr: true,
		},
		{
			name:    "missing api key",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tok"},
			wantErr: true,
		},
		{
			name: "required only, defaults applied",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "tok", "RAPIDAPI_KEY": "key"},
			want: defaults("tok", "key"),
		},
		{
			name: "all values set",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"RAPIDAPI_HOST":      "scores.example.com",
				"API_BASE_URL":       "http://localhost:9000",
				"DATABASE_PATH":      "/tmp/bot.db",
				"LOG_LEVEL":          "debug",
				"ALLOWED_USERS":      "111,222,333",
				"POLL_INTERVAL":      "2m30s",
				"METRICS_ADDR":       ":9100",
				"TIMEZONE":           "Asia/Kolkata",
			},
			want: &Config{
				TelegramBotToken: "tok",
				APIKey:           "key",
				APIHost:          "scores.example.com",
				APIBaseURL:       "http://localhost:9000",
				DatabasePath:     "/tmp/bot.db",
				LogLevel:         "debug",
				AllowedUsers:     []int64{111, 222, 333},
				PollInterval:     150 * time.Second,
				MetricsAddr:      ":9100",
				Timezone:         "Asia/Kolkata",
			},
		},
		{
			name: "custom host drives base url",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"RAPIDAPI_HOST":      "scores.example.com",
			},
			want: func() *Config {
				c := defaults("tok", "key")
				c.APIHost = "scores.example.com"
				c.APIBaseURL = "https://scores.example.com"
				return c
			}(),
		},
		{
			name: "allowed users with spaces",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"ALLOWED_USERS":      " 10 , 20 , ",
			},
			want: func() *Config {
				c := defaults("tok", "key")
				c.AllowedUsers = []int64{10, 20}
				return c
			}(),
		},
		{
			name: "invalid user id",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"ALLOWED_USERS":      "123,abc",
			},
			wantErr: true,
		},
		{
			name: "invalid poll interval",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"POLL_INTERVAL":      "soon",
			},
			wantErr: true,
		},
		{
			name: "poll interval too short",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"POLL_INTERVAL":      "1s",
			},
			wantErr: true,
		},
		{
			name: "invalid timezone",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"RAPIDAPI_KEY":       "key",
				"TIMEZONE":           "Mars/Olympus",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	content := `telegram_bot_token: file-token
api_key: file-key
database_path: /var/lib/cricket/bot.db
allowed_users: [7, 8]
poll_interval: 5m
timezone: Europe/London
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("RAPIDAPI_KEY", "env-key")

	got, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := defaults("file-token", "env-key")
	want.DatabasePath = "/var/lib/cricket/bot.db"
	want.AllowedUsers = []int64{7, 8}
	want.PollInterval = 5 * time.Minute
	want.Timezone = "Europe/London"
	want.LogLevel = "warn"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("poll_interval: [not, a, duration"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			t.Setenv("CONFIG_FILE", path)
			if _, err := Load(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestIsUserAllowed(t *testing.T) {
	tests := []struct {
		name         string
		allowedUsers []int64
		userID       int64
		want         bool
	}{
		{
			name:         "empty list allows everyone",
			allowedUsers: nil,
			userID:       42,
			want:         true,
		},
		{
			name:         "user in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       20,
			want:         true,
		},
		{
			name:         "user not in list",
			allowedUsers: []int64{10, 20, 30},
			userID:       99,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedUsers: tt.allowedUsers}
			got := cfg.IsUserAllowed(tt.userID)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IsUserAllowed() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
