package core

import (
	"fmt"
	"strings"
)

// SpeedMode selects the tick cadence of a run.
// Fast and Slow are mutually exclusive; Normal means neither is active.
type SpeedMode int

const (
	SpeedNormal SpeedMode = iota
	SpeedFast
	SpeedSlow
)

// String returns the lower-case name of the mode.
func (m SpeedMode) String() string {
	switch m {
	case SpeedNormal:
		return "normal"
	case SpeedFast:
		return "fast"
	case SpeedSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// ParseSpeedMode parses "normal", "fast" or "slow" (case-insensitive).
func ParseSpeedMode(s string) (SpeedMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SpeedNormal, nil
	case "fast":
		return SpeedFast, nil
	case "slow":
		return SpeedSlow, nil
	}
	return SpeedNormal, fmt.Errorf("core: unknown speed mode %q", s)
}
