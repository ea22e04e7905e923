package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Built-in speed profile names.
const (
	// ProfileModern is the three-speed cadence with the faster fast mode.
	ProfileModern = "modern"
	// ProfileClassic is the earlier cadence where fast mode ticks every 200ms.
	ProfileClassic = "classic"
)

// SpeedProfile maps each speed mode to a tick interval in milliseconds.
type SpeedProfile struct {
	Name     string `yaml:"-"`
	FastMs   int    `yaml:"fast_ms"`
	NormalMs int    `yaml:"normal_ms"`
	SlowMs   int    `yaml:"slow_ms"`
}

// BuiltinProfiles returns the presets available without any config file.
func BuiltinProfiles() map[string]SpeedProfile {
	return map[string]SpeedProfile{
		ProfileModern:  {Name: ProfileModern, FastMs: 150, NormalMs: 350, SlowMs: 750},
		ProfileClassic: {Name: ProfileClassic, FastMs: 200, NormalMs: 350, SlowMs: 750},
	}
}

// ProfileNames returns the built-in profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, 2)
	for name := range BuiltinProfiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interval returns the tick delay for the given speed mode.
func (p SpeedProfile) Interval(mode core.SpeedMode) time.Duration {
	switch mode {
	case core.SpeedFast:
		return time.Duration(p.FastMs) * time.Millisecond
	case core.SpeedSlow:
		return time.Duration(p.SlowMs) * time.Millisecond
	default:
		return time.Duration(p.NormalMs) * time.Millisecond
	}
}

func (p SpeedProfile) validate() error {
	if p.FastMs <= 0 || p.NormalMs <= 0 || p.SlowMs <= 0 {
		return fmt.Errorf("config: profile %q needs positive intervals", p.Name)
	}
	if p.FastMs > p.NormalMs || p.NormalMs > p.SlowMs {
		return fmt.Errorf("config: profile %q must satisfy fast <= normal <= slow", p.Name)
	}
	return nil
}
