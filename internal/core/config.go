package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed, 0 means seed from the clock in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary the platform reads after every tick.
type GameState struct {
	Score    int       // Current score
	Lives    int       // Remaining lives
	GameOver bool      // Whether the run has ended
	Speed    SpeedMode // Active speed mode
	Ticks    uint64    // Ticks survived in the current run
}

// StepResult is returned by Game.Step() after each simulation tick.
// Events are in the order they happened during the tick.
type StepResult struct {
	State  GameState
	Events []Event
}
