package searcher

import (
	"connect4/game"
	"connect4/meta"
)

// The search always simulates the AI piece on maximizing turns and the
// opponent piece on minimizing turns. Callers playing another side map their
// pieces onto this convention (see Minimax.FindMove).
const (
	Max = game.PlayerB
	Min = game.PlayerA
)

// Leaf values for decided positions
const WIN = 1_000_000.0
const LOSS = -WIN
const DRAW = 0.0

const DefaultDepth = meta.DEPTH
