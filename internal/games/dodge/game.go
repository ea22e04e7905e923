package dodge

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// Variant IDs.
const (
	IDModern  = "dodge"
	IDClassic = "dodge_classic"
)

// Game adapts the Engine to the platform's registry.Game interface.
type Game struct {
	id      string
	title   string
	cfg     config.DodgeConfig
	engine  *Engine
	runtime core.RuntimeConfig
}

// New creates the default variant, using the profile named in the config.
func New(cfg config.DodgeConfig) (*Game, error) {
	return newGame(IDModern, "Lane Dodge", cfg)
}

// NewClassic creates the single-speed era variant: the classic profile,
// where fast mode ticks every 200ms.
func NewClassic(cfg config.DodgeConfig) (*Game, error) {
	if err := config.ApplyProfile(&cfg, config.ProfileClassic); err != nil {
		return nil, err
	}
	return newGame(IDClassic, "Lane Dodge (Classic)", cfg)
}

func newGame(id, title string, cfg config.DodgeConfig) (*Game, error) {
	engine, err := NewEngine(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, err
	}
	return &Game{
		id:     id,
		title:  title,
		cfg:    cfg,
		engine: engine,
	}, nil
}

func init() {
	registry.Register(IDModern, func(cfg config.DodgeConfig) (registry.Game, error) {
		return New(cfg)
	})
	registry.Register(IDClassic, func(cfg config.DodgeConfig) (registry.Game, error) {
		return NewClassic(cfg)
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Engine exposes the simulation for tests and tooling.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset starts a new run seeded from the runtime config.
// The speed mode survives a reset.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.engine.SetRand(rand.New(rand.NewSource(seed)))
	g.engine.ResetGame()
}

// Apply executes a player command between ticks.
func (g *Game) Apply(a core.Action) {
	if g.engine.IsGameOver() {
		return
	}
	switch a {
	case core.ActionLeft:
		g.engine.MovePlayer(-1)
	case core.ActionRight:
		g.engine.MovePlayer(1)
	case core.ActionFast:
		g.engine.ToggleSpeedMode(core.SpeedFast)
	case core.ActionSlow:
		g.engine.ToggleSpeedMode(core.SpeedSlow)
	case core.ActionNormal:
		g.engine.SetSpeedMode(core.SpeedNormal)
	}
}

// SetSpeed selects the speed mode directly.
func (g *Game) SetSpeed(mode core.SpeedMode) {
	g.engine.SetSpeedMode(mode)
}

// Step advances the run by one tick.
func (g *Game) Step() core.StepResult {
	res := g.engine.Tick()
	return core.StepResult{
		State:  g.State(),
		Events: res.Events(),
	}
}

// TickInterval returns the delay before the next tick.
func (g *Game) TickInterval() time.Duration {
	return g.engine.TickInterval()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Lives:    g.engine.Lives(),
		GameOver: g.engine.IsGameOver(),
		Speed:    g.engine.Speed(),
		Ticks:    g.engine.Ticks(),
	}
}

// ProfileName returns the speed profile the variant runs on.
func (g *Game) ProfileName() string {
	return g.engine.Profile().Name
}

// Snapshot returns the current board state.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}
