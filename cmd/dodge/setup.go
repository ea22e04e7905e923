package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/geo"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

// newLogger builds the logger from the global flags. Interactive commands
// pass interactive=true: without --log-file their logs are discarded so the
// alternate screen stays clean. The returned closer must be called on exit.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case flagLogFile != "":
		if dir := filepath.Dir(flagLogFile); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodge",
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig loads the game configuration and applies command-line overrides.
func loadConfig(path, profile string) (config.DodgeConfig, error) {
	cfg, err := config.LoadDodge(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyProfile(&cfg, profile); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// locatorFor returns the location provider described by the config.
func locatorFor(cfg config.DodgeConfig) (geo.Locator, error) {
	loc := cfg.Location
	if loc.Latitude == nil || loc.Longitude == nil {
		return geo.None{}, nil
	}
	return geo.NewStatic(*loc.Latitude, *loc.Longitude)
}

// openScores opens the database and the ranked list stored in it. When the
// database is unavailable the list lives in memory for this process only
// and db is nil.
func openScores(cfg config.DodgeConfig, logger *log.Logger) (db *storage.Store, scores *highscore.Store) {
	opts := []highscore.Option{
		highscore.WithCapacity(cfg.Scores.Capacity),
		highscore.WithLogger(logger),
	}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory", "err", err)
		return nil, highscore.New(highscore.NewMemoryBackend(nil), opts...)
	}
	return db, highscore.New(db.List(cfg.Scores.List), opts...)
}

// historyOf returns db as a run recorder, or nil without a database.
func historyOf(db *storage.Store) tui.HistoryRecorder {
	if db == nil {
		return nil
	}
	return db
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
