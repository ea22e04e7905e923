// Package dodge implements the lane-dodge game: the player's car moves across
// a few lanes while bombs and coins fall toward it. The Engine is the pure
// tick-driven simulation; Game adapts it to the platform registry.
package dodge

import (
	"errors"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Engine owns the board state of a single run.
// It is not safe for concurrent use; the driving layer ticks it from one
// goroutine and must not start a tick before the previous one returned.
type Engine struct {
	rows            int
	cols            int
	playerRowOffset int
	maxObstacles    int
	startLives      int
	coinValue       int
	distanceValue   int
	profile         config.SpeedProfile
	rng             Rand

	playerCol int
	lives     int
	score     int
	obstacles []Obstacle
	coin      *Coin
	speed     core.SpeedMode
	ticks     uint64
}

// NewEngine creates an engine for a fresh run using the config's active
// speed profile.
func NewEngine(cfg config.DodgeConfig, rng Rand) (*Engine, error) {
	if rng == nil {
		return nil, errors.New("dodge: random source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	profile, err := cfg.ActiveProfile()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		rows:            cfg.Board.Rows,
		cols:            cfg.Board.Cols,
		playerRowOffset: cfg.Board.PlayerRowOffset,
		maxObstacles:    cfg.Rules.MaxObstacles,
		startLives:      cfg.Rules.StartLives,
		coinValue:       cfg.Rules.CoinValue,
		distanceValue:   cfg.Rules.DistanceValue,
		profile:         profile,
		rng:             rng,
		obstacles:       make([]Obstacle, 0, cfg.Rules.MaxObstacles+1),
	}
	e.ResetGame()
	return e, nil
}

// SetRand replaces the random source, e.g. when a run is reseeded.
func (e *Engine) SetRand(rng Rand) {
	if rng != nil {
		e.rng = rng
	}
}

// Rows returns the number of board rows.
func (e *Engine) Rows() int { return e.rows }

// Cols returns the number of lanes.
func (e *Engine) Cols() int { return e.cols }

// PlayerRow returns the row where collisions and collection are evaluated.
func (e *Engine) PlayerRow() int {
	return e.rows - 1 - e.playerRowOffset
}

// SetPlayerRowOffset moves the player line up from the bottom edge.
// Negative offsets are floored at 0 and the line always stays below the
// spawn row.
func (e *Engine) SetPlayerRowOffset(offset int) {
	e.playerRowOffset = core.Clamp(offset, 0, e.rows-2)
}

// PlayerCol returns the player's lane.
func (e *Engine) PlayerCol() int { return e.playerCol }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Speed returns the active speed mode.
func (e *Engine) Speed() core.SpeedMode { return e.speed }

// Profile returns the speed profile used for tick intervals.
func (e *Engine) Profile() config.SpeedProfile { return e.profile }

// Ticks returns how many ticks the current run has lasted.
func (e *Engine) Ticks() uint64 { return e.ticks }

// IsGameOver reports whether the run has ended.
func (e *Engine) IsGameOver() bool { return e.lives == 0 }

// MovePlayer shifts the player by delta lanes. Moves that would leave the
// board are ignored.
func (e *Engine) MovePlayer(delta int) {
	next := e.playerCol + delta
	if core.InRange(next, 0, e.cols) {
		e.playerCol = next
	}
}

// StepObstacles advances every bomb one row, drops the ones past the player
// line and spawns one new bomb at the top when below the cap.
// Spawn columns are not checked against the player or other bombs.
func (e *Engine) StepObstacles() {
	playerRow := e.PlayerRow()
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		o.Row++
		if o.Row <= playerRow {
			kept = append(kept, o)
		}
	}
	e.obstacles = kept

	if len(e.obstacles) < e.maxObstacles {
		e.obstacles = append(e.obstacles, Obstacle{Row: 0, Col: e.rng.Intn(e.cols)})
	}
}

// CheckCollision reports whether a bomb sits on the player's cell.
func (e *Engine) CheckCollision() bool {
	playerRow := e.PlayerRow()
	for _, o := range e.obstacles {
		if o.Row == playerRow && o.Col == e.playerCol {
			return true
		}
	}
	return false
}

// SpawnCoinIfNeeded places a coin at the top of a random lane that holds no
// bomb. Nothing happens while a coin is live or when every lane is taken.
func (e *Engine) SpawnCoinIfNeeded() {
	if e.coin != nil {
		return
	}

	occupied := make(map[int]bool, len(e.obstacles))
	for _, o := range e.obstacles {
		occupied[o.Col] = true
	}

	free := make([]int, 0, e.cols)
	for c := 0; c < e.cols; c++ {
		if !occupied[c] {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return
	}

	e.coin = &Coin{Row: 0, Col: free[e.rng.Intn(len(free))]}
}

// StepCoin advances the live coin one row and drops it once it passes the
// player line uncollected.
func (e *Engine) StepCoin() {
	if e.coin == nil {
		return
	}
	e.coin.Row++
	if e.coin.Row > e.PlayerRow() {
		e.coin = nil
	}
}

// CheckCoinCollected collects the coin when it sits on the player's cell:
// the score grows by the coin value and the coin disappears.
func (e *Engine) CheckCoinCollected() bool {
	if e.coin == nil {
		return false
	}
	if e.coin.Row != e.PlayerRow() || e.coin.Col != e.playerCol {
		return false
	}
	e.score += e.coinValue
	e.coin = nil
	return true
}

// AdvanceScoreByDistance rewards one tick of survival.
func (e *Engine) AdvanceScoreByDistance() {
	e.score += e.distanceValue
}

// OnCrash costs a life and removes the bomb on the player's cell so it
// cannot hit again next tick. It returns true when the run is over.
func (e *Engine) OnCrash() bool {
	e.lives--
	if e.lives < 0 {
		e.lives = 0
	}

	playerRow := e.PlayerRow()
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		if o.Row == playerRow && o.Col == e.playerCol {
			continue
		}
		kept = append(kept, o)
	}
	e.obstacles = kept

	return e.lives == 0
}

// ResetRound recenters the player and clears the bombs. Score, lives and
// the coin are kept.
func (e *Engine) ResetRound() {
	e.playerCol = e.cols / 2
	e.obstacles = e.obstacles[:0]
}

// ResetGame starts a new run.
func (e *Engine) ResetGame() {
	e.lives = e.startLives
	e.coin = nil
	e.score = 0
	e.ticks = 0
	e.ResetRound()
}

// SetSpeedMode selects the tick cadence. Fast and slow exclude each other.
func (e *Engine) SetSpeedMode(mode core.SpeedMode) {
	switch mode {
	case core.SpeedFast, core.SpeedSlow:
		e.speed = mode
	default:
		e.speed = core.SpeedNormal
	}
}

// ToggleSpeedMode switches mode on, or back to normal when it is already on.
func (e *Engine) ToggleSpeedMode(mode core.SpeedMode) {
	if e.speed == mode {
		e.SetSpeedMode(core.SpeedNormal)
		return
	}
	e.SetSpeedMode(mode)
}

// TickInterval returns how long the scheduler waits before the next tick.
// It must be queried again after every tick since the mode can change
// between ticks.
func (e *Engine) TickInterval() time.Duration {
	return e.profile.Interval(e.speed)
}
