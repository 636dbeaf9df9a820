package experiments

import (
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/learner"
	"connect4/meta"
	"connect4/searcher"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DEFAULT_GAMES   = meta.GAMES
	DEFAULT_WORKERS = meta.GO_ROUTINES

	agentID   = 1
	minimaxID = 2
)

type Option func(s *Series)

// Series pits the Q-learning agent (PlayerA) against minimax (PlayerB) over
// a number of games.
type Series struct {
	agent     *learner.Agent
	model     string
	games     int
	depth     int
	starting  game.Side
	workers   int
	outputDir string
	observer  engine.Observer
	logger    zerolog.Logger
}

// Stats counts the outcomes of a series.
type Stats struct {
	Games       int
	AgentWins   int
	MinimaxWins int
	Draws       int
}

// Percent returns n as a percentage of the games played.
func (s Stats) Percent(n int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(n) / float64(s.Games) * 100
}

func WithGames(games int) Option {
	return func(s *Series) {
		if games > 0 {
			s.games = games
		}
	}
}

func WithDepth(depth int) Option {
	return func(s *Series) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithStartingSide chooses who opens every game: PlayerA for the agent,
// PlayerB for minimax.
func WithStartingSide(side game.Side) Option {
	return func(s *Series) {
		s.starting = side
	}
}

func WithWorkers(workers int) Option {
	return func(s *Series) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithOutputDir stores CSV records of the series under dir.
func WithOutputDir(dir string) Option {
	return func(s *Series) {
		s.outputDir = dir
	}
}

// WithModel names the Q-table the agent was loaded from in the records.
func WithModel(path string) Option {
	return func(s *Series) {
		s.model = path
	}
}

// WithObserver follows every move of every game. Games are then played one
// at a time.
func WithObserver(observer engine.Observer) Option {
	return func(s *Series) {
		s.observer = observer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Series) {
		s.logger = logger
	}
}

func NewSeries(agent *learner.Agent, options ...Option) *Series {
	if agent == nil {
		panic("series needs an agent")
	}
	s := &Series{ // Default values
		agent:    agent,
		games:    DEFAULT_GAMES,
		depth:    searcher.DefaultDepth,
		starting: game.PlayerA,
		workers:  DEFAULT_WORKERS,
		logger:   log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	if s.starting != game.PlayerA && s.starting != game.PlayerB {
		panic("starting side must be PlayerA or PlayerB")
	}
	if s.observer != nil {
		s.workers = 1
	}
	return s
}

type result struct {
	id          int
	winner      game.Side
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// Run plays the series and returns its statistics. Records are written when
// an output directory is set.
func (s *Series) Run() (Stats, error) {
	s.logger.Info().
		Int("games", s.games).
		Int("depth", s.depth).
		Str("starting", s.starting.String()).
		Msg("starting agent vs minimax series...")

	task := make(chan int, s.games)
	for i := 1; i <= s.games; i++ {
		task <- i
	}
	close(task)

	results := make([]result, s.games)
	var wg sync.WaitGroup
	for i := 0; i < min(s.workers, s.games); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range task {
				results[id-1] = s.play(id)
			}
		}()
	}
	wg.Wait()

	stats := Stats{Games: s.games}
	for _, r := range results {
		switch r.winner {
		case game.PlayerA:
			stats.AgentWins++
		case game.PlayerB:
			stats.MinimaxWins++
		default:
			stats.Draws++
		}
	}

	s.logger.Info().
		Int("agent_wins", stats.AgentWins).
		Int("minimax_wins", stats.MinimaxWins).
		Int("draws", stats.Draws).
		Msgf("completed series: agent %.1f%%, minimax %.1f%%, draws %.1f%%",
			stats.Percent(stats.AgentWins), stats.Percent(stats.MinimaxWins), stats.Percent(stats.Draws))

	if s.outputDir != "" {
		if err := s.store(results); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// play runs a single game with a fresh minimax player so that search
// metrics are never shared between workers.
func (s *Series) play(id int) result {
	options := []engine.Option{engine.WithStartingSide(s.starting), engine.WithLogger(s.logger)}
	if s.observer != nil {
		options = append(options, engine.WithObserver(s.observer))
	}
	e := engine.NewLocalEngine(
		&engine.LearnerPlayer{Agent: s.agent},
		engine.NewMinimaxPlayer(searcher.WithDepth(s.depth), searcher.WithMetrics()),
		options...,
	)

	winner, gameMetric, moveMetrics := e.Run()
	s.logger.Info().Int("moves", gameMetric.TotalMoves).Msgf("completed game %d of %d with winner: %s", id, s.games, winner)

	return result{id: id, winner: winner, gameMetric: gameMetric, moveMetrics: moveMetrics}
}

func (s *Series) store(results []result) error {
	writer, err := metrics.NewWriter(s.outputDir, "agent_vs_minimax")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := []metrics.AgentConfig{
		{ID: agentID, Kind: "learner", Epsilon: s.agent.Epsilon(), Model: s.model},
		{ID: minimaxID, Kind: "minimax", Depth: s.depth},
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         r.id,
			Agent1:     agentID,
			Agent2:     minimaxID,
			GameMetric: r.gameMetric,
		})
		for _, mm := range r.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       r.id,
				MoveMetric: mm,
			})
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	s.logger.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}
