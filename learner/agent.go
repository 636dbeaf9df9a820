package learner

import (
	"connect4/game"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(a *Agent)

// Agent is a tabular Q-learning agent. All table reads and writes go through
// a single mutex since reads materialize entries and updates are
// read-modify-write.
type Agent struct {
	mu      sync.Mutex
	table   Table
	alpha   float64
	gamma   float64
	epsilon float64
	rng     *rand.Rand
	logger  zerolog.Logger
}

func WithLearningRate(alpha float64) Option {
	return func(a *Agent) {
		a.alpha = alpha
	}
}

func WithDiscount(gamma float64) Option {
	return func(a *Agent) {
		a.gamma = gamma
	}
}

func WithExploration(epsilon float64) Option {
	return func(a *Agent) {
		a.epsilon = epsilon
	}
}

func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func NewAgent(options ...Option) *Agent {
	a := &Agent{ // Default values
		table:   Table{},
		alpha:   DEFAULT_LEARNING_RATE,
		gamma:   DEFAULT_DISCOUNT,
		epsilon: DEFAULT_EXPLORATION,
		logger:  log.Logger,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if a.alpha <= 0 || a.alpha > 1 {
		panic("learning rate must be in (0, 1]")
	}
	if a.gamma < 0 || a.gamma > 1 {
		panic("discount must be in [0, 1]")
	}
	if a.epsilon < 0 || a.epsilon > 1 {
		panic("exploration rate must be in [0, 1]")
	}
	return a
}

func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// StateKey returns the table key for b.
func (a *Agent) StateKey(b *game.Board) game.StateKey {
	return b.Key()
}

// Value returns Q(state, action). Unseen pairs are stored at 0.0.
func (a *Agent) Value(state game.StateKey, action int) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.table.get(state, action)
}

// Update applies Q(s,a) += alpha * (reward + gamma * max Q(s',a') - Q(s,a)).
// The max term is 0 when nextActions is empty (terminal transition).
func (a *Agent) Update(state game.StateKey, action int, reward float64, nextState game.StateKey, nextActions []int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	maxNext := 0.0
	if len(nextActions) > 0 {
		maxNext = math.Inf(-1)
		for _, next := range nextActions {
			maxNext = math.Max(maxNext, a.table.get(nextState, next))
		}
	}

	q := a.table.get(state, action)
	a.table.set(state, action, q+a.alpha*(reward+a.gamma*maxNext-q))
}

// SelectAction picks among the 1-based columns in valid: uniformly at random
// with probability epsilon, otherwise the column with the greatest value,
// earliest in valid on ties. It returns false when valid is empty.
func (a *Agent) SelectAction(b *game.Board, valid []int) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(valid) == 0 {
		return game.NoColumn, false
	}

	if a.rng.Float64() < a.epsilon {
		return valid[a.rng.Intn(len(valid))], true
	}

	state := b.Key()
	best := valid[0]
	bestValue := a.table.get(state, best)
	for _, action := range valid[1:] {
		if value := a.table.get(state, action); value > bestValue {
			best = action
			bestValue = value
		}
	}
	return best, true
}

// Table returns a snapshot of the current table.
func (a *Agent) Table() Table {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.table.Copy()
}

// States counts the board snapshots held by the table.
func (a *Agent) States() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.table)
}

// Save persists the whole table to path.
func (a *Agent) Save(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := OpenStore(path).Save(a.table); err != nil {
		return fmt.Errorf("failed to save q-table to %s: %w", path, err)
	}
	a.logger.Info().Str("path", path).Int("states", len(a.table)).Msg("saved q-table")
	return nil
}

// Load replaces the table with the one stored at path. It reports false,
// leaving the table untouched, when nothing is stored there.
func (a *Agent) Load(path string) (bool, error) {
	t, err := OpenStore(path).Load()
	if errors.Is(err, ErrNotFound) {
		a.logger.Debug().Str("path", path).Msg("no q-table to load")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load q-table from %s: %w", path, err)
	}

	a.mu.Lock()
	a.table = t
	a.mu.Unlock()

	a.logger.Info().Str("path", path).Int("states", len(t)).Msg("loaded q-table")
	return true, nil
}
