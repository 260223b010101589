package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"cricket_bot/migrations"
)

var commands = map[string]struct {
	help string
	run  func(db *sql.DB) error
}{
	"up":      {"Migrate to the latest version", func(db *sql.DB) error { return goose.Up(db, ".") }},
	"up-one":  {"Migrate one version up", func(db *sql.DB) error { return goose.UpByOne(db, ".") }},
	"down":    {"Roll back one version", func(db *sql.DB) error { return goose.Down(db, ".") }},
	"redo":    {"Roll back and reapply the latest version", func(db *sql.DB) error { return goose.Redo(db, ".") }},
	"status":  {"Show migration status", func(db *sql.DB) error { return goose.Status(db, ".") }},
	"version": {"Show current version", func(db *sql.DB) error { return goose.Version(db, ".") }},
	"reset":   {"Roll back all migrations", func(db *sql.DB) error { return goose.Reset(db, ".") }},
}

func main() {
	dbPath := flag.String("db", envOrDefault("DATABASE_PATH", "./data/bot.db"), "path to the subscriptions database")
	flag.Usage = usage
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		log.Error("unknown command", "command", args[0])
		usage()
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Error("open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Error("set dialect", "error", err)
		os.Exit(1)
	}

	if err := cmd.run(db); err != nil {
		log.Error("migrate", "command", args[0], "path", *dbPath, "error", err)
		os.Exit(1)
	}
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: migrate [-db path] <command>\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-10s  %s\n", name, commands[name].help)
	}
	fmt.Fprint(os.Stderr, b.String())
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
