// Package config provides YAML-based configuration loading for the lane-dodge
// game: board geometry, rules, speed profiles, tilt mapping and scores.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownProfile is returned when a speed profile name is not defined.
var ErrUnknownProfile = errors.New("config: unknown speed profile")

// DodgeConfig contains all configuration for the lane-dodge game.
type DodgeConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Rules    RulesConfig    `yaml:"rules"`
	Timing   TimingConfig   `yaml:"timing"`
	Tilt     TiltConfig     `yaml:"tilt"`
	Scores   ScoresConfig   `yaml:"scores"`
	Location LocationConfig `yaml:"location"`
}

// BoardConfig defines the lane grid.
type BoardConfig struct {
	Rows            int `yaml:"rows"`
	Cols            int `yaml:"cols"`
	PlayerRowOffset int `yaml:"player_row_offset"` // Rows between the player line and the bottom edge
}

// PlayerRow returns the row the player occupies.
func (b BoardConfig) PlayerRow() int {
	return b.Rows - 1 - b.PlayerRowOffset
}

// RulesConfig defines scoring and lives.
type RulesConfig struct {
	MaxObstacles  int `yaml:"max_obstacles"`
	StartLives    int `yaml:"start_lives"`
	CoinValue     int `yaml:"coin_value"`
	DistanceValue int `yaml:"distance_value"`
}

// TimingConfig selects a speed profile by name.
type TimingConfig struct {
	Profile  string                  `yaml:"profile"`
	Profiles map[string]SpeedProfile `yaml:"profiles"`
}

// TiltConfig defines how tilt samples map to moves and speed modes.
type TiltConfig struct {
	DebounceMs    int     `yaml:"debounce_ms"`
	MoveThreshold float64 `yaml:"move_threshold"`
	FastThreshold float64 `yaml:"fast_threshold"`
	SlowThreshold float64 `yaml:"slow_threshold"`
	Deadzone      float64 `yaml:"deadzone"`
}

// Debounce returns the minimum spacing between accepted samples.
func (t TiltConfig) Debounce() time.Duration {
	return time.Duration(t.DebounceMs) * time.Millisecond
}

// ScoresConfig defines the ranked high-score list.
type ScoresConfig struct {
	Capacity int    `yaml:"capacity"`
	List     string `yaml:"list"` // Name of the persisted list
}

// LocationConfig holds an optional fixed geolocation attached to saved scores.
type LocationConfig struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// Validate checks that the configuration describes a playable board.
func (c DodgeConfig) Validate() error {
	if c.Board.Rows < 2 {
		return fmt.Errorf("config: board.rows must be at least 2, got %d", c.Board.Rows)
	}
	if c.Board.Cols < 1 {
		return fmt.Errorf("config: board.cols must be at least 1, got %d", c.Board.Cols)
	}
	if row := c.Board.PlayerRow(); row < 1 || row >= c.Board.Rows {
		return fmt.Errorf("config: player row %d is outside the board", row)
	}
	if c.Rules.MaxObstacles < 1 {
		return fmt.Errorf("config: rules.max_obstacles must be at least 1, got %d", c.Rules.MaxObstacles)
	}
	if c.Rules.StartLives < 1 {
		return fmt.Errorf("config: rules.start_lives must be at least 1, got %d", c.Rules.StartLives)
	}
	if c.Scores.Capacity < 1 {
		return fmt.Errorf("config: scores.capacity must be at least 1, got %d", c.Scores.Capacity)
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return errors.New("config: location needs both latitude and longitude")
	}
	if _, err := c.ActiveProfile(); err != nil {
		return err
	}
	return nil
}

// ActiveProfile returns the speed profile selected by Timing.Profile.
func (c DodgeConfig) ActiveProfile() (SpeedProfile, error) {
	return c.Timing.Lookup(c.Timing.Profile)
}

// Lookup returns the named profile from the config, falling back to the
// built-in presets.
func (t TimingConfig) Lookup(name string) (SpeedProfile, error) {
	if name == "" {
		name = ProfileModern
	}
	if p, ok := t.Profiles[name]; ok {
		p.Name = name
		return p, p.validate()
	}
	if p, ok := BuiltinProfiles()[name]; ok {
		return p, nil
	}
	return SpeedProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
