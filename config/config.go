package config

import (
	"connect4/learner"
	"connect4/meta"
	"connect4/trainer"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Depth    int           `yaml:"depth"`
	Colors   bool          `yaml:"colors"`
	LogLevel string        `yaml:"log_level"`
	Learner  LearnerConfig `yaml:"learner"`
	Training TrainConfig   `yaml:"training"`
	Match    MatchConfig   `yaml:"match"`
}

type LearnerConfig struct {
	LearningRate float64 `yaml:"learning_rate"`
	Discount     float64 `yaml:"discount"`
	Exploration  float64 `yaml:"exploration"`
	Seed         uint64  `yaml:"seed"` // 0 seeds from the clock
	Model        string  `yaml:"model"`
}

type TrainConfig struct {
	Episodes     int    `yaml:"episodes"`
	SaveInterval int    `yaml:"save_interval"`
	Credit       string `yaml:"credit"` // "last-mover" or "side-signed"
	Chart        string `yaml:"chart"`
}

type MatchConfig struct {
	Games     int           `yaml:"games"`
	Workers   int           `yaml:"workers"`
	First     string        `yaml:"first"` // "agent" or "minimax"
	OutputDir string        `yaml:"output_dir"`
	Pause     time.Duration `yaml:"pause"`
}

const (
	CreditLastMover  = "last-mover"
	CreditSideSigned = "side-signed"

	FirstAgent   = "agent"
	FirstMinimax = "minimax"
)

func Default() Config {
	return Config{
		Depth:    meta.DEPTH,
		Colors:   true,
		LogLevel: "info",
		Learner: LearnerConfig{
			LearningRate: learner.DEFAULT_LEARNING_RATE,
			Discount:     learner.DEFAULT_DISCOUNT,
			Exploration:  learner.DEFAULT_EXPLORATION,
			Model:        meta.MODEL_PATH,
		},
		Training: TrainConfig{
			Episodes:     meta.EPISODES,
			SaveInterval: meta.SAVE_INTERVAL,
			Credit:       CreditLastMover,
		},
		Match: MatchConfig{
			Games:     meta.GAMES,
			Workers:   meta.GO_ROUTINES,
			First:     FirstAgent,
			OutputDir: meta.OUTPUT_DIR,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate resets out-of-range user choices to their defaults, returning a
// warning for each, and rejects settings that have no sensible fallback.
func (c *Config) Validate() ([]string, error) {
	warnings := []string{}

	if c.Depth < meta.MIN_DEPTH || c.Depth > meta.MAX_DEPTH {
		warnings = append(warnings, fmt.Sprintf("invalid depth %d, using %d", c.Depth, meta.DEPTH))
		c.Depth = meta.DEPTH
	}
	if c.Match.Games < 1 {
		warnings = append(warnings, fmt.Sprintf("invalid number of games %d, playing 1", c.Match.Games))
		c.Match.Games = 1
	}
	if c.Match.Workers < 1 {
		warnings = append(warnings, fmt.Sprintf("invalid number of workers %d, using %d", c.Match.Workers, meta.GO_ROUTINES))
		c.Match.Workers = meta.GO_ROUTINES
	}

	errs := []error{}
	if c.Learner.LearningRate <= 0 || c.Learner.LearningRate > 1 {
		errs = append(errs, fmt.Errorf("learning rate %v not in (0, 1]", c.Learner.LearningRate))
	}
	if c.Learner.Discount < 0 || c.Learner.Discount > 1 {
		errs = append(errs, fmt.Errorf("discount %v not in [0, 1]", c.Learner.Discount))
	}
	if c.Learner.Exploration < 0 || c.Learner.Exploration > 1 {
		errs = append(errs, fmt.Errorf("exploration rate %v not in [0, 1]", c.Learner.Exploration))
	}
	if c.Learner.Model == "" {
		errs = append(errs, errors.New("model path must not be empty"))
	}
	if c.Training.Episodes < 0 {
		errs = append(errs, fmt.Errorf("number of episodes %d is negative", c.Training.Episodes))
	}
	if c.Training.SaveInterval < 0 {
		errs = append(errs, fmt.Errorf("save interval %d is negative", c.Training.SaveInterval))
	}
	if _, err := c.Credit(); err != nil {
		errs = append(errs, err)
	}
	if c.Match.First != FirstAgent && c.Match.First != FirstMinimax {
		errs = append(errs, fmt.Errorf("first player %q must be %q or %q", c.Match.First, FirstAgent, FirstMinimax))
	}
	if c.Match.Pause < 0 {
		errs = append(errs, fmt.Errorf("pause %s is negative", c.Match.Pause))
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return warnings, nil
}

// Credit returns the credit assignment rule named by the training config.
func (c *Config) Credit() (trainer.Credit, error) {
	switch c.Training.Credit {
	case CreditLastMover:
		return trainer.CreditLastMover, nil
	case CreditSideSigned:
		return trainer.CreditSideSigned, nil
	default:
		return nil, fmt.Errorf("unknown credit rule %q", c.Training.Credit)
	}
}
