package dodge

import "github.com/vovakirdan/lane-dodge/internal/core"

// TickResult reports what happened during one tick.
type TickResult struct {
	CoinCollected bool
	Crashed       bool
	RunOver       bool
	// FinalScore is the score at the moment the run ended, captured before
	// anything can reset the board. Only meaningful when RunOver is set.
	FinalScore int
	Score      int
	Lives      int
}

// Tick advances the run by one step. The order matters: bombs move first,
// then the coin spawns in a bomb-free lane and moves, distance is scored,
// the coin is collected and finally bomb collisions are resolved.
// Ticking a finished run changes nothing.
func (e *Engine) Tick() TickResult {
	if e.IsGameOver() {
		return TickResult{RunOver: true, FinalScore: e.score, Score: e.score}
	}

	e.ticks++
	e.StepObstacles()
	e.SpawnCoinIfNeeded()
	e.StepCoin()
	e.AdvanceScoreByDistance()

	var res TickResult
	if e.CheckCoinCollected() {
		res.CoinCollected = true
	}
	if e.CheckCollision() {
		res.Crashed = true
		if e.OnCrash() {
			res.RunOver = true
			res.FinalScore = e.score
		}
	}

	res.Score = e.score
	res.Lives = e.lives
	return res
}

// Events converts the result into feedback events, in the order the
// driving layer should surface them.
func (r TickResult) Events() []core.Event {
	var events []core.Event
	if r.CoinCollected {
		events = append(events, core.Event{Kind: core.EventCoinCollected, Score: r.Score, Lives: r.Lives})
	}
	if r.Crashed {
		events = append(events, core.Event{Kind: core.EventCrash, Score: r.Score, Lives: r.Lives})
	}
	if r.RunOver && r.Crashed {
		events = append(events, core.Event{Kind: core.EventRunOver, Score: r.FinalScore, Lives: r.Lives})
	}
	return events
}
