package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

// MaxMoves bounds a game; a board fills up after this many moves.
const MaxMoves = game.Rows * game.Cols

type Engine interface {
	// Run plays a game till a side has won or the board is full
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Player chooses a 1-based column for side on b. Players may return an
// illegal column; the engine then falls back to the first legal one.
type Player interface {
	FindMove(b *game.Board, side game.Side) (int, metrics.SearchMetric)
}

// Quitter is a Player that can give up mid-game, such as a console player
// whose input ran out. A non-nil Err after FindMove ends the game without
// playing the returned column.
type Quitter interface {
	Player
	Err() error
}
