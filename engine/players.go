package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/learner"
	"connect4/searcher"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// MinimaxPlayer plays the column found by a depth-bounded minimax search.
type MinimaxPlayer struct {
	Minimax *searcher.Minimax
}

func NewMinimaxPlayer(options ...searcher.Option) *MinimaxPlayer {
	return &MinimaxPlayer{Minimax: searcher.NewMinimax(options...)}
}

func (p *MinimaxPlayer) FindMove(b *game.Board, side game.Side) (int, metrics.SearchMetric) {
	column, _, metric := p.Minimax.FindMove(b, side)
	return column, metric
}

// LearnerPlayer plays the Q-learning agent's choice. For evaluation the
// agent should be built with zero exploration.
type LearnerPlayer struct {
	Agent *learner.Agent
}

func (p *LearnerPlayer) FindMove(b *game.Board, side game.Side) (int, metrics.SearchMetric) {
	start := time.Now()
	column, _ := p.Agent.SelectAction(b, b.Actions())
	return column, metrics.SearchMetric{Duration: time.Since(start)}
}

// RandomPlayer plays a uniformly random legal column.
type RandomPlayer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) FindMove(b *game.Board, side game.Side) (int, metrics.SearchMetric) {
	p.mu.Lock()
	defer p.mu.Unlock()

	actions := b.Actions()
	if len(actions) == 0 {
		return game.NoColumn, metrics.SearchMetric{}
	}
	return actions[p.rng.Intn(len(actions))], metrics.SearchMetric{}
}
