package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/geo"
)

func TestLocatorFor(t *testing.T) {
	cfg := config.DefaultDodgeConfig()

	l, err := locatorFor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Locate(context.Background()); !errors.Is(err, geo.ErrNoFix) {
		t.Errorf("expected no fix without a configured location, got %v", err)
	}

	config.ApplyLocation(&cfg, 48.85, 2.35)
	l, err = locatorFor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fix, err := l.Locate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fix.Lat != 48.85 || fix.Lng != 2.35 {
		t.Errorf("fix = %+v", fix)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	defer func(level, file string) { flagLogLevel, flagLogFile = level, file }(flagLogLevel, flagLogFile)

	flagLogLevel = "loud"
	if _, _, err := newLogger(true); err == nil {
		t.Error("expected an error for an unknown level")
	}

	flagLogLevel = "debug"
	flagLogFile = filepath.Join(t.TempDir(), "logs", "dodge.log")
	logger, closeLog, err := newLogger(true)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	logger.Debug("hello")
}

func TestLoadConfigProfile(t *testing.T) {
	cfg, err := loadConfig("", config.ProfileClassic)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timing.Profile != config.ProfileClassic {
		t.Errorf("profile = %q", cfg.Timing.Profile)
	}

	if _, err := loadConfig("", "turbo"); !errors.Is(err, config.ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestProfileNote(t *testing.T) {
	tests := []struct {
		game, profile string
		warn          bool
	}{
		{"dodge", "", false},
		{"dodge", config.ProfileClassic, false},
		{"dodge_classic", "", false},
		{"dodge_classic", config.ProfileClassic, false},
		{"dodge_classic", config.ProfileModern, true},
	}

	for _, tc := range tests {
		if got := profileNote(tc.game, tc.profile); (got != "") != tc.warn {
			t.Errorf("profileNote(%q, %q) = %q", tc.game, tc.profile, got)
		}
	}
}
