package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"cricket_bot/internal/bot"
	"cricket_bot/internal/config"
	"cricket_bot/internal/fetcher"
	"cricket_bot/internal/metrics"
	"cricket_bot/internal/scheduler"
	"cricket_bot/internal/state"
	"cricket_bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	collector := metrics.New()

	f := fetcher.New(&http.Client{}, fetcher.Options{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.APIKey,
		APIHost: cfg.APIHost,
	})
	f.SetObserver(collector)

	st := state.New()

	b, err := bot.New(cfg.TelegramBotToken, store, st, f, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(store, st, f.Matches, b, log)
	sched.SetTickInterval(cfg.PollInterval)
	sched.SetCounter(collector)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		go func() {
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := collector.Serve(ctx, cfg.MetricsAddr, store.Ping); err != nil {
				log.Error("metrics server", "error", err)
			}
		}()
	}

	log.Info("starting bot", "poll_interval", cfg.PollInterval, "api_host", cfg.APIHost)

	go sched.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
