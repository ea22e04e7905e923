package dodge

// Obstacle is a bomb descending one lane. Row 0 is the spawn edge.
type Obstacle struct {
	Row int
	Col int
}

// Coin is the single collectible that can be live at a time.
type Coin struct {
	Row int
	Col int
}

// Rand is the random source used for spawn columns.
// *math/rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	Intn(n int) int
}
