package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xyproto/env/v2"

	"github.com/pacer/ethereal/internal/script/parser"
)

const (
	historyFile          = ".ethereal_history"
	defaultDebounceMilli = 200
)

// config holds settings read from the environment. Command line flags
// override the matching fields.
type config struct {
	MaxDepth      int
	NoColor       bool
	LogLevel      slog.Level
	HistoryPath   string
	WatchDebounce time.Duration
}

func loadConfig() config {
	cfg := config{
		MaxDepth:      env.Int("ETHEREAL_MAX_DEPTH", parser.DefaultMaxDepth),
		NoColor:       env.Bool("ETHEREAL_NO_COLOR") || env.Str("NO_COLOR") != "",
		LogLevel:      parseLogLevel(env.Str("ETHEREAL_LOG_LEVEL", "warn")),
		HistoryPath:   env.Str("ETHEREAL_HISTORY", defaultHistoryPath()),
		WatchDebounce: time.Duration(env.Int("ETHEREAL_WATCH_DEBOUNCE_MS", defaultDebounceMilli)) * time.Millisecond,
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = parser.DefaultMaxDepth
	}

	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = defaultDebounceMilli * time.Millisecond
	}

	return cfg
}

// parseLogLevel accepts the slog level names (debug, info, warn, error).
// Unknown names fall back to warn.
func parseLogLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn
	}

	return level
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}

	return filepath.Join(home, historyFile)
}
