package experiments

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/learner"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// greedyAgent has an empty table and no exploration, so it always plays the
// leftmost open column.
func greedyAgent() *learner.Agent {
	return learner.NewAgent(learner.WithExploration(0), learner.WithSeed(1), learner.WithLogger(zerolog.Nop()))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSeriesRun(t *testing.T) {
	t.Run("minimax beats a column stacker", func(t *testing.T) {
		for _, starting := range []game.Side{game.PlayerA, game.PlayerB} {
			s := NewSeries(greedyAgent(),
				WithGames(6),
				WithDepth(2),
				WithStartingSide(starting),
				WithWorkers(3),
				WithLogger(zerolog.Nop()),
			)

			stats, err := s.Run()

			require.NoError(t, err)
			require.Equal(t, 6, stats.Games)
			require.Equal(t, 6, stats.MinimaxWins, "starting %s", starting)
			require.Equal(t, 0, stats.AgentWins+stats.Draws)
		}
	})

	t.Run("records every game and move", func(t *testing.T) {
		dir := t.TempDir()
		s := NewSeries(greedyAgent(),
			WithGames(3),
			WithDepth(2),
			WithModel("model.json"),
			WithOutputDir(dir),
			WithLogger(zerolog.Nop()),
		)

		_, err := s.Run()
		require.NoError(t, err)

		runs, err := filepath.Glob(filepath.Join(dir, "agent_vs_minimax", "*"))
		require.NoError(t, err)
		require.Len(t, runs, 1)

		configs := readCSV(t, filepath.Join(runs[0], "agent_configs.csv"))
		require.Equal(t, []string{"1", "learner", "0", "0", "model.json"}, configs[1])
		require.Equal(t, []string{"2", "minimax", "2", "0", ""}, configs[2])

		games := readCSV(t, filepath.Join(runs[0], "game_records.csv"))
		require.Len(t, games, 4)
		for i, row := range games[1:] {
			require.Equal(t, []string{"1", "2", "PlayerA", "PlayerB"}, row[1:5], "game %d", i+1)
			require.Equal(t, games[1][5], row[5], "Deterministic players should play identical games")
		}

		moves := readCSV(t, filepath.Join(runs[0], "move_records.csv"))
		require.Greater(t, len(moves), 3*7)
		require.Equal(t, "PlayerA", moves[1][2], "Agent should open")
		require.Equal(t, "1", moves[1][3], "Agent should play the leftmost column")
		require.Equal(t, "2", moves[2][4], "Minimax moves should record the search depth")
	})

	t.Run("observer plays games one at a time", func(t *testing.T) {
		steps := 0
		s := NewSeries(greedyAgent(),
			WithGames(2),
			WithDepth(1),
			WithWorkers(8),
			WithObserver(func(b *game.Board, move metrics.MoveMetric) {
				steps++
			}),
			WithLogger(zerolog.Nop()),
		)

		stats, err := s.Run()

		require.NoError(t, err)
		require.Equal(t, 1, s.workers)
		require.Equal(t, 2, stats.Games)
		require.GreaterOrEqual(t, steps, 2*7)
	})
}

func TestStatsPercent(t *testing.T) {
	stats := Stats{Games: 8, AgentWins: 2, MinimaxWins: 5, Draws: 1}

	require.Equal(t, 25.0, stats.Percent(stats.AgentWins))
	require.Equal(t, 62.5, stats.Percent(stats.MinimaxWins))
	require.Equal(t, 12.5, stats.Percent(stats.Draws))
	require.Equal(t, 0.0, Stats{}.Percent(0))
}

func TestNewSeries(t *testing.T) {
	t.Run("invalid values keep the defaults", func(t *testing.T) {
		s := NewSeries(greedyAgent(), WithGames(0), WithDepth(-2), WithWorkers(0))

		require.Equal(t, DEFAULT_GAMES, s.games)
		require.Equal(t, 4, s.depth)
		require.Equal(t, DEFAULT_WORKERS, s.workers)
	})

	t.Run("panics on invalid setup", func(t *testing.T) {
		require.Panics(t, func() { NewSeries(nil) })
		require.Panics(t, func() { NewSeries(greedyAgent(), WithStartingSide(game.Empty)) })
	})
}
