package trainer

import (
	"connect4/game"
	"connect4/learner"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(t *Trainer)

// Trainer improves a single Q-table by letting the agent play both sides of
// a game against itself.
type Trainer struct {
	agent        *learner.Agent
	episodes     int
	saveInterval int
	modelPath    string
	chartPath    string
	credit       Credit
	logger       zerolog.Logger
	runID        uuid.UUID
	checkpoints  []Checkpoint
}

// step is one recorded move of an episode.
type step struct {
	state  game.StateKey
	action int
	side   game.Side
}

func WithEpisodes(episodes int) Option {
	return func(t *Trainer) {
		t.episodes = episodes
	}
}

// WithSaveInterval checkpoints every interval episodes; 0 disables
// checkpoints.
func WithSaveInterval(interval int) Option {
	return func(t *Trainer) {
		t.saveInterval = interval
	}
}

// WithModelPath loads the table from path before training and saves it there
// at checkpoints and at the end.
func WithModelPath(path string) Option {
	return func(t *Trainer) {
		t.modelPath = path
	}
}

// WithChart writes an HTML chart of the checkpoint results to path.
func WithChart(path string) Option {
	return func(t *Trainer) {
		t.chartPath = path
	}
}

func WithCredit(credit Credit) Option {
	return func(t *Trainer) {
		if credit != nil {
			t.credit = credit
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trainer) {
		t.logger = logger
	}
}

func NewTrainer(agent *learner.Agent, options ...Option) *Trainer {
	if agent == nil {
		panic("trainer needs an agent")
	}
	t := &Trainer{ // Default values
		agent:        agent,
		episodes:     DEFAULT_EPISODES,
		saveInterval: DEFAULT_SAVE_INTERVAL,
		credit:       CreditLastMover,
		logger:       log.Logger,
		runID:        uuid.New(),
	}
	for _, option := range options {
		option(t)
	}
	if t.episodes < 0 {
		panic("number of episodes must not be negative")
	}
	if t.saveInterval < 0 {
		panic("save interval must not be negative")
	}
	t.logger = t.logger.With().Str("run", t.runID.String()).Logger()
	return t
}

func (t *Trainer) RunID() uuid.UUID {
	return t.runID
}

// Checkpoints returns the checkpoints taken by the last Run.
func (t *Trainer) Checkpoints() []Checkpoint {
	return t.checkpoints
}

// Run plays the configured number of episodes and returns their outcomes.
// The table is saved at every checkpoint and once more at the end when a
// model path is set.
func (t *Trainer) Run() (Results, error) {
	if t.modelPath != "" {
		found, err := t.agent.Load(t.modelPath)
		if err != nil {
			return Results{}, err
		}
		if !found {
			t.logger.Info().Str("path", t.modelPath).Msg("starting from an empty q-table")
		}
	}

	t.logger.Info().
		Int("episodes", t.episodes).
		Int("save_interval", t.saveInterval).
		Float64("epsilon", t.agent.Epsilon()).
		Msg("starting training...")

	t.checkpoints = nil
	results := Results{}
	for episode := 1; episode <= t.episodes; episode++ {
		results.add(t.Episode())

		if t.saveInterval > 0 && episode%t.saveInterval == 0 {
			if err := t.checkpoint(episode, results); err != nil {
				return results, err
			}
		}
	}

	if t.modelPath != "" {
		if err := t.agent.Save(t.modelPath); err != nil {
			return results, err
		}
	}
	if t.chartPath != "" {
		if err := writeChart(t.chartPath, t.runID, t.checkpoints); err != nil {
			return results, err
		}
		t.logger.Info().Str("path", t.chartPath).Msg("stored training chart")
	}

	t.logger.Info().
		Int("wins_a", results.WinsA).
		Int("wins_b", results.WinsB).
		Int("draws", results.Draws).
		Int("states", t.agent.States()).
		Msg("completed training")
	return results, nil
}

// Episode plays one self-play game from an empty board, PlayerA first, and
// credits the moves if a side won. It returns the winner, Empty on a draw.
func (t *Trainer) Episode() game.Side {
	b := game.NewBoard()
	side := game.PlayerA
	history := []step{}
	winner := game.Empty

	for {
		action, ok := t.agent.SelectAction(b, b.Actions())
		if !ok {
			break // Full board
		}
		history = append(history, step{state: b.Key(), action: action, side: side})
		b.Drop(action, side)

		if b.HasWon(side) {
			winner = side
			break
		}
		if b.IsFull() {
			break
		}
		side = side.Opponent()
	}

	t.assign(history, winner)
	t.logger.Debug().Int("moves", len(history)).Str("winner", winner.String()).Msg("completed episode")
	return winner
}

// assign credits every move in reverse order as a terminal transition.
// Drawn games leave the table untouched.
func (t *Trainer) assign(history []step, winner game.Side) {
	if winner == game.Empty {
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		t.agent.Update(s.state, s.action, t.credit(winner, s.side), "", nil)
	}
}

func (t *Trainer) checkpoint(episode int, results Results) error {
	if t.modelPath != "" {
		if err := t.agent.Save(t.modelPath); err != nil {
			return fmt.Errorf("failed to checkpoint episode %d: %w", episode, err)
		}
	}

	cp := Checkpoint{Episode: episode, Results: results, States: t.agent.States()}
	t.checkpoints = append(t.checkpoints, cp)

	t.logger.Info().
		Int("episode", episode).
		Int("wins_a", results.WinsA).
		Int("wins_b", results.WinsB).
		Int("draws", results.Draws).
		Int("states", cp.States).
		Msgf("checkpoint %d of %d", episode, t.episodes)
	return nil
}
