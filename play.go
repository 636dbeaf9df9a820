package main

import (
	"connect4/config"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/player"
	"connect4/render"
	"connect4/searcher"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// spectator prints the board after every move along with who played where.
func spectator(renderer *render.Renderer, names map[game.Side]string, pause time.Duration) engine.Observer {
	return func(b *game.Board, move metrics.MoveMetric) {
		fmt.Printf("%s (%s) plays column %d\n", names[move.Player], renderer.Piece(move.Player), move.Column)
		if err := renderer.Fprint(os.Stdout, b); err != nil {
			log.Error().Err(err).Msg("failed to print board")
		}
		if pause > 0 {
			time.Sleep(pause)
		}
	}
}

// runPlay runs one game between a human at the console (PlayerA) and the
// chosen opponent (PlayerB).
func runPlay(cfg config.Config, renderer *render.Renderer, opponent string, humanFirst bool) error {
	fmt.Println(renderer.Banner("CONNECT FOUR"))

	human := player.NewHuman("You", os.Stdin, os.Stdout, renderer)
	humans := []*player.Human{human}
	names := map[game.Side]string{game.PlayerA: "You"}

	var other engine.Player
	switch opponent {
	case "minimax":
		minimax := engine.NewMinimaxPlayer(searcher.WithDepth(cfg.Depth))
		other = minimax
		names[game.PlayerB] = fmt.Sprintf("Minimax (depth %d)", minimax.Minimax.Depth())
	case "agent":
		agent, err := loadTrainedAgent(cfg)
		if err != nil {
			return err
		}
		other = &engine.LearnerPlayer{Agent: agent}
		names[game.PlayerB] = "Agent"
	case "random":
		seed := cfg.Learner.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		other = engine.NewRandomPlayer(seed)
		names[game.PlayerB] = "Random"
	case "human":
		human.Name = "Player 1"
		second := human.Share("Player 2")
		humans = append(humans, second)
		other = second
		names = map[game.Side]string{game.PlayerA: "Player 1", game.PlayerB: "Player 2"}
	default:
		return fmt.Errorf("unknown opponent %q", opponent)
	}

	starting := game.PlayerA
	if !humanFirst && opponent != "human" {
		starting = game.PlayerB
	}

	if err := renderer.Fprint(os.Stdout, game.NewBoard()); err != nil {
		return fmt.Errorf("failed to print board: %w", err)
	}
	e := engine.NewLocalEngine(human, other,
		engine.WithStartingSide(starting),
		engine.WithObserver(spectator(renderer, names, cfg.Match.Pause)),
	)
	winner, gameMetric, _ := e.Run()

	if gameMetric.Abandoned {
		for _, h := range humans {
			if err := h.Err(); err != nil {
				return fmt.Errorf("game abandoned: %w", err)
			}
		}
	}

	if winner == game.Empty {
		fmt.Println(renderer.Banner("Draw!"))
	} else {
		fmt.Println(renderer.Banner(fmt.Sprintf("%s won!", names[winner])))
	}
	return nil
}
