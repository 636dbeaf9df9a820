package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"math"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a depth-bounded alpha-beta searcher. It holds no board state, a
// single instance may serve any number of sequential searches.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.Score,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// FindMove returns the best 1-based column for side and its value from side's
// perspective. A board where side plays the opponent piece is searched with
// the pieces swapped.
func (m *Minimax) FindMove(b *game.Board, side game.Side) (int, float64, metrics.SearchMetric) {
	if side != Max && side != Min {
		panic("minimax: cannot search for an empty side")
	}
	if side == Min {
		b = b.Swapped()
	}

	m.metrics.Start(m.depth)
	column, value := search(b, m.depth, math.Inf(-1), math.Inf(1), true, m.evaluate, m.metrics)
	metric := m.metrics.Complete()

	log.Debug().
		Stringer("side", side).
		Int("column", column).
		Float64("value", value).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Msg("minimax search complete")

	return column, value, metric
}

// BestMove searches b to the given depth and returns the chosen 1-based column
// with its value. Leaves return game.NoColumn. The caller's board is never
// mutated: every simulated move is played on a clone.
func BestMove(b *game.Board, depth int, alpha, beta float64, maximizing bool) (int, float64) {
	return search(b, depth, alpha, beta, maximizing, game.Score, metrics.NewDummyCollector())
}

func search(b *game.Board, depth int, alpha, beta float64, maximizing bool, evaluate game.Evaluate, m metrics.Collector) (int, float64) {
	m.AddNode()

	if depth <= 0 || b.IsTerminal() {
		m.AddLeaf()
		return game.NoColumn, leafValue(b, evaluate)
	}

	columns := b.ValidColumns()
	best := columns[0]

	if maximizing {
		value := math.Inf(-1)
		for _, col := range columns {
			child := b.Clone()
			child.Drop(col+1, Max)

			_, score := search(child, depth-1, alpha, beta, false, evaluate, m)
			// Strictly greater: the first column seen keeps ties
			if score > value {
				value = score
				best = col
			}

			alpha = math.Max(alpha, value)
			if alpha >= beta {
				m.AddCutoff()
				break
			}
		}
		return best + 1, value
	}

	value := math.Inf(1)
	for _, col := range columns {
		child := b.Clone()
		child.Drop(col+1, Min)

		_, score := search(child, depth-1, alpha, beta, true, evaluate, m)
		if score < value {
			value = score
			best = col
		}

		beta = math.Min(beta, value)
		if alpha >= beta {
			m.AddCutoff()
			break
		}
	}
	return best + 1, value
}

func leafValue(b *game.Board, evaluate game.Evaluate) float64 {
	switch {
	case b.HasWon(Max):
		return WIN
	case b.HasWon(Min):
		return LOSS
	case b.IsFull():
		return DRAW
	default:
		return float64(evaluate(b, Max))
	}
}
