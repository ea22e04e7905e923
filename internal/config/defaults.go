package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default lane-dodge configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Board: BoardConfig{
			Rows:            12,
			Cols:            5,
			PlayerRowOffset: 1,
		},
		Rules: RulesConfig{
			MaxObstacles:  3,
			StartLives:    3,
			CoinValue:     10,
			DistanceValue: 1,
		},
		Timing: TimingConfig{
			Profile:  ProfileModern,
			Profiles: BuiltinProfiles(),
		},
		Tilt: TiltConfig{
			DebounceMs:    150,
			MoveThreshold: 3.0,
			FastThreshold: 2.5,
			SlowThreshold: -2.5,
			Deadzone:      1.0,
		},
		Scores: ScoresConfig{
			Capacity: 10,
			List:     "high_scores",
		},
	}
}
