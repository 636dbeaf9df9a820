package trainer

import (
	"connect4/game"
	"connect4/meta"
)

const DEFAULT_EPISODES = meta.EPISODES
const DEFAULT_SAVE_INTERVAL = meta.SAVE_INTERVAL

// Credit gives the terminal reward for a move made by mover in a game won by
// winner.
type Credit func(winner, mover game.Side) float64

// CreditLastMover rewards every move of the winning side with +1 and every
// move of the losing side with -1.
func CreditLastMover(winner, mover game.Side) float64 {
	if mover == winner {
		return 1
	}
	return -1
}

// CreditSideSigned fixes the reward sign by which side won (+1 for PlayerA,
// -1 for PlayerB) and flips it for the side that did not make the final move.
// A PlayerB win therefore punishes PlayerB's moves.
func CreditSideSigned(winner, mover game.Side) float64 {
	reward := -1.0
	if winner == game.PlayerA {
		reward = 1.0
	}
	if mover == winner { // The winner always made the final move
		return reward
	}
	return -reward
}

// Results counts finished episodes by outcome.
type Results struct {
	WinsA int
	WinsB int
	Draws int
}

func (r Results) Total() int {
	return r.WinsA + r.WinsB + r.Draws
}

func (r *Results) add(winner game.Side) {
	switch winner {
	case game.PlayerA:
		r.WinsA++
	case game.PlayerB:
		r.WinsB++
	default:
		r.Draws++
	}
}

// Checkpoint is a snapshot of the running results taken when the table is
// saved mid-run.
type Checkpoint struct {
	Episode int
	Results Results
	States  int
}
