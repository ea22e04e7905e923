package dodge

import "github.com/vovakirdan/lane-dodge/internal/core"

// Snapshot is a read-only copy of the board, enough to render a frame or to
// compare two runs for determinism.
type Snapshot struct {
	Tick      uint64
	Rows      int
	Cols      int
	PlayerRow int
	PlayerCol int
	Obstacles []Obstacle
	Coin      *Coin
	Lives     int
	Score     int
	Speed     core.SpeedMode
	GameOver  bool
}

// Snapshot returns the current board state.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(e.obstacles))
	copy(obstacles, e.obstacles)

	var coin *Coin
	if e.coin != nil {
		c := *e.coin
		coin = &c
	}

	return Snapshot{
		Tick:      e.ticks,
		Rows:      e.rows,
		Cols:      e.cols,
		PlayerRow: e.PlayerRow(),
		PlayerCol: e.playerCol,
		Obstacles: obstacles,
		Coin:      coin,
		Lives:     e.lives,
		Score:     e.score,
		Speed:     e.speed,
		GameOver:  e.IsGameOver(),
	}
}

// ObstacleAt reports whether a bomb occupies the given cell.
func (s Snapshot) ObstacleAt(row, col int) bool {
	for _, o := range s.Obstacles {
		if o.Row == row && o.Col == col {
			return true
		}
	}
	return false
}

// CoinAt reports whether the coin occupies the given cell.
func (s Snapshot) CoinAt(row, col int) bool {
	return s.Coin != nil && s.Coin.Row == row && s.Coin.Col == col
}
