package config

import (
	"connect4/experiments"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher"
	"connect4/trainer"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path gives the defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("defaults match the package defaults", func(t *testing.T) {
		cfg := Default()

		require.Equal(t, searcher.DefaultDepth, cfg.Depth)
		require.Equal(t, trainer.DEFAULT_EPISODES, cfg.Training.Episodes)
		require.Equal(t, trainer.DEFAULT_SAVE_INTERVAL, cfg.Training.SaveInterval)
		require.Equal(t, experiments.DEFAULT_GAMES, cfg.Match.Games)
		require.Equal(t, experiments.DEFAULT_WORKERS, cfg.Match.Workers)
	})

	t.Run("file values override the defaults", func(t *testing.T) {
		path := writeFile(t, `
depth: 6
learner:
  exploration: 0.25
  model: tables/q.db
training:
  episodes: 500
  credit: side-signed
match:
  first: minimax
  pause: 1500ms
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 6, cfg.Depth)
		require.Equal(t, 0.25, cfg.Learner.Exploration)
		require.Equal(t, 0.1, cfg.Learner.LearningRate, "Unset keys should keep the default")
		require.Equal(t, "tables/q.db", cfg.Learner.Model)
		require.Equal(t, 500, cfg.Training.Episodes)
		require.Equal(t, meta.SAVE_INTERVAL, cfg.Training.SaveInterval)
		require.Equal(t, CreditSideSigned, cfg.Training.Credit)
		require.Equal(t, FirstMinimax, cfg.Match.First)
		require.Equal(t, 1500*time.Millisecond, cfg.Match.Pause)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		_, err := Load(writeFile(t, "depth: [1, 2"))

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Default()

		warnings, err := cfg.Validate()

		require.NoError(t, err)
		require.Empty(t, warnings)
	})

	t.Run("out of range depth falls back to 4", func(t *testing.T) {
		for _, depth := range []int{0, -3, 11, 99} {
			cfg := Default()
			cfg.Depth = depth

			warnings, err := cfg.Validate()

			require.NoError(t, err)
			require.Len(t, warnings, 1)
			require.Equal(t, 4, cfg.Depth)
		}
	})

	t.Run("depth bounds are accepted", func(t *testing.T) {
		for _, depth := range []int{1, 10} {
			cfg := Default()
			cfg.Depth = depth

			warnings, err := cfg.Validate()

			require.NoError(t, err)
			require.Empty(t, warnings)
			require.Equal(t, depth, cfg.Depth)
		}
	})

	t.Run("invalid number of games plays one", func(t *testing.T) {
		cfg := Default()
		cfg.Match.Games = 0
		cfg.Match.Workers = -1

		warnings, err := cfg.Validate()

		require.NoError(t, err)
		require.Len(t, warnings, 2)
		require.Equal(t, 1, cfg.Match.Games)
		require.Equal(t, meta.GO_ROUTINES, cfg.Match.Workers)
	})

	t.Run("invalid settings are errors", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(c *Config)
		}{
			{"learning rate", func(c *Config) { c.Learner.LearningRate = 0 }},
			{"discount", func(c *Config) { c.Learner.Discount = 1.1 }},
			{"exploration", func(c *Config) { c.Learner.Exploration = -0.5 }},
			{"model", func(c *Config) { c.Learner.Model = "" }},
			{"episodes", func(c *Config) { c.Training.Episodes = -1 }},
			{"save interval", func(c *Config) { c.Training.SaveInterval = -1 }},
			{"credit", func(c *Config) { c.Training.Credit = "winner-takes-all" }},
			{"first player", func(c *Config) { c.Match.First = "human" }},
			{"pause", func(c *Config) { c.Match.Pause = -time.Second }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := Default()
				tt.mutate(&cfg)

				_, err := cfg.Validate()

				require.Error(t, err)
			})
		}
	})
}

func TestCredit(t *testing.T) {
	cfg := Default()
	credit, err := cfg.Credit()
	require.NoError(t, err)
	require.Equal(t, trainer.CreditLastMover(game.PlayerB, game.PlayerB), credit(game.PlayerB, game.PlayerB))

	cfg.Training.Credit = CreditSideSigned
	credit, err = cfg.Credit()
	require.NoError(t, err)
	require.Equal(t, -1.0, credit(game.PlayerB, game.PlayerB))
}
