package main

import (
	"connect4/config"
	"connect4/experiments"
	"connect4/game"
	"connect4/learner"
	"connect4/render"
	"connect4/trainer"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "play", "What to run: play, train or match")
	configPath := flag.String("config", "", "YAML config file")
	depth := flag.Int("depth", 0, "Minimax search depth (1-10)")
	model := flag.String("model", "", "Q-table path (.json, .db, .sqlite)")
	episodes := flag.Int("episodes", 0, "Number of self-play training episodes")
	saveInterval := flag.Int("save-interval", 0, "Episodes between checkpoints")
	credit := flag.String("credit", "", "Credit rule: last-mover or side-signed")
	chart := flag.String("chart", "", "HTML chart of the training progress")
	seed := flag.Uint64("seed", 0, "Random seed for the agent, 0 for the clock")
	games := flag.Int("games", 0, "Number of agent vs minimax games")
	first := flag.String("first", "", "Who opens a match: agent or minimax")
	workers := flag.Int("workers", 0, "Games of a match played concurrently")
	output := flag.String("output", "", "Directory for match records")
	watch := flag.Bool("watch", false, "Show every move of a match")
	pause := flag.Duration("pause", 0, "Pause after each shown computer move")
	opponent := flag.String("vs", "minimax", "Play against: minimax, agent, random or human")
	humanFirst := flag.Bool("human-first", true, "Human moves first against the computer")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.Depth = *depth
		case "model":
			cfg.Learner.Model = *model
		case "episodes":
			cfg.Training.Episodes = *episodes
		case "save-interval":
			cfg.Training.SaveInterval = *saveInterval
		case "credit":
			cfg.Training.Credit = *credit
		case "chart":
			cfg.Training.Chart = *chart
		case "seed":
			cfg.Learner.Seed = *seed
		case "games":
			cfg.Match.Games = *games
		case "first":
			cfg.Match.First = *first
		case "workers":
			cfg.Match.Workers = *workers
		case "output":
			cfg.Match.OutputDir = *output
		case "pause":
			cfg.Match.Pause = *pause
		case "no-color":
			cfg.Colors = !*noColor
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	setupLogger(cfg)
	renderer := render.New(cfg.Colors)

	warnings, err := cfg.Validate()
	for _, warning := range warnings {
		fmt.Println(renderer.Warning(warning))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	switch *mode {
	case "train":
		err = runTraining(cfg)
	case "match":
		err = runMatch(cfg, renderer, *watch)
	case "play":
		err = runPlay(cfg, renderer, *opponent, *humanFirst)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly, NoColor: !cfg.Colors})
}

func newAgent(cfg config.Config, exploration float64) *learner.Agent {
	options := []learner.Option{
		learner.WithLearningRate(cfg.Learner.LearningRate),
		learner.WithDiscount(cfg.Learner.Discount),
		learner.WithExploration(exploration),
	}
	if cfg.Learner.Seed != 0 {
		options = append(options, learner.WithSeed(cfg.Learner.Seed))
	}
	return learner.NewAgent(options...)
}

// loadTrainedAgent returns a greedy agent for play, refusing to play without
// a trained table.
func loadTrainedAgent(cfg config.Config) (*learner.Agent, error) {
	agent := newAgent(cfg, 0)
	found, err := agent.Load(cfg.Learner.Model)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no trained model found at %s, train the agent first with -mode train", cfg.Learner.Model)
	}
	return agent, nil
}

func runTraining(cfg config.Config) error {
	credit, err := cfg.Credit()
	if err != nil {
		return err
	}

	t := trainer.NewTrainer(newAgent(cfg, cfg.Learner.Exploration),
		trainer.WithEpisodes(cfg.Training.Episodes),
		trainer.WithSaveInterval(cfg.Training.SaveInterval),
		trainer.WithModelPath(cfg.Learner.Model),
		trainer.WithCredit(credit),
		trainer.WithChart(cfg.Training.Chart),
	)

	results, err := t.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Training over %d games: PlayerA %d, PlayerB %d, draws %d\n",
		results.Total(), results.WinsA, results.WinsB, results.Draws)
	return nil
}

func runMatch(cfg config.Config, renderer *render.Renderer, watch bool) error {
	agent, err := loadTrainedAgent(cfg)
	if err != nil {
		return err
	}

	starting := game.PlayerA
	if cfg.Match.First == config.FirstMinimax {
		starting = game.PlayerB
	}

	options := []experiments.Option{
		experiments.WithGames(cfg.Match.Games),
		experiments.WithDepth(cfg.Depth),
		experiments.WithStartingSide(starting),
		experiments.WithWorkers(cfg.Match.Workers),
		experiments.WithOutputDir(cfg.Match.OutputDir),
		experiments.WithModel(cfg.Learner.Model),
	}
	if watch {
		options = append(options, experiments.WithObserver(spectator(renderer, map[game.Side]string{
			game.PlayerA: "Agent",
			game.PlayerB: "Minimax",
		}, cfg.Match.Pause)))
	}

	stats, err := experiments.NewSeries(agent, options...).Run()
	if err != nil {
		return err
	}

	fmt.Println(renderer.Banner(fmt.Sprintf("RESULTS AFTER %d GAMES", stats.Games)))
	fmt.Printf("Agent wins:   %d (%.1f%%)\n", stats.AgentWins, stats.Percent(stats.AgentWins))
	fmt.Printf("Minimax wins: %d (%.1f%%)\n", stats.MinimaxWins, stats.Percent(stats.MinimaxWins))
	fmt.Printf("Draws:        %d (%.1f%%)\n", stats.Draws, stats.Percent(stats.Draws))
	return nil
}
