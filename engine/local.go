package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/utils"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// Observer is called with the board after every move.
type Observer func(b *game.Board, move metrics.MoveMetric)

type LocalEngine struct {
	board    *game.Board
	players  map[game.Side]Player
	starting game.Side
	observer Observer
	logger   zerolog.Logger
}

// WithStartingSide sets the side to move first; PlayerA by default.
func WithStartingSide(side game.Side) Option {
	return func(e *LocalEngine) {
		if side == game.PlayerA || side == game.PlayerB {
			e.starting = side
		}
	}
}

// WithBoard starts the game from a copy of b instead of an empty board.
func WithBoard(b *game.Board) Option {
	return func(e *LocalEngine) {
		e.board = b.Clone()
	}
}

func WithObserver(observer Observer) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *LocalEngine) {
		e.logger = logger
	}
}

func NewLocalEngine(playerA, playerB Player, options ...Option) *LocalEngine {
	if playerA == nil || playerB == nil {
		panic("need a player for each side")
	}
	e := &LocalEngine{ // Default values
		board:    game.NewBoard(),
		players:  map[game.Side]Player{game.PlayerA: playerA, game.PlayerB: playerB},
		starting: game.PlayerA,
		logger:   log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns the current position.
func (e *LocalEngine) Board() *game.Board {
	return e.board.Clone()
}

// Run executes the entire game loop until a side wins, the board is full or a
// Quitter gives up.
func (e *LocalEngine) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.starting,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	e.logger.Debug().Msgf("%s is starting", e.starting)

	side := e.starting
	for step := 1; step <= MaxMoves && !e.board.IsTerminal(); step++ {
		player := e.players[side]
		column, searchMetric := player.FindMove(e.board.Clone(), side)
		if q, ok := player.(Quitter); ok {
			if err := q.Err(); err != nil {
				e.logger.Warn().Err(err).Msgf("%s quit the game", side)
				gameMetric.Abandoned = true
				break
			}
		}
		column = e.legalize(column, side)

		e.board.Drop(column, side)
		move := metrics.MoveMetric{
			Step:         step,
			Player:       side,
			Column:       column,
			SearchMetric: searchMetric,
		}
		moveMetrics = append(moveMetrics, move)
		if e.observer != nil {
			e.observer(e.board.Clone(), move)
		}

		side = side.Opponent()
	}

	winner := e.board.Winner()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	e.logger.Debug().Int("moves", gameMetric.TotalMoves).Msgf("game over with winner: %s", winner)
	return winner, gameMetric, moveMetrics
}

// legalize replaces an unplayable column with the first legal one.
func (e *LocalEngine) legalize(column int, side game.Side) int {
	legal := e.board.Actions()
	if utils.FindIndex(legal, column) >= 0 {
		return column
	}
	e.logger.Warn().Int("column", column).Msgf("%s chose an unplayable column, playing %d", side, legal[0])
	return legal[0]
}
