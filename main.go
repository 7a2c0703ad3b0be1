package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"sticks/communication/client"
	"sticks/communication/server"
	"sticks/config"
	"sticks/engine"
	"sticks/experiments"
	"sticks/experiments/metrics"
	"sticks/game"
	"sticks/gamemaster"
	"sticks/meta"
	"sticks/player"
	"sticks/policy"
	"sticks/trainer"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	modePlayerVsPlayer = 1
	modeUntrainedAI    = 2
	modeTrainedAI      = 3
)

func main() {
	configPath := flag.String("config", "sticks.yaml", "YAML config file")
	sticks := flag.Int("sticks", 0, "Initial number of sticks (0 asks)")
	mode := flag.Int("mode", 0, "1: player vs player, 2: untrained computer, 3: trained computer (0 asks)")
	rounds := flag.Int("rounds", 0, "Self-play rounds behind the trained computer")
	seed := flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	rules := flag.String("rules", "", "Win rules: standard or misere")
	export := flag.String("export", "", "File receiving the trained policy (.yaml for YAML)")
	logLevel := flag.String("log-level", "", "Log level")
	remote := flag.String("remote", "", "Play against the move service at this URL")
	serve := flag.Bool("serve", false, "Serve a trained computer over HTTP")
	experiment := flag.Bool("experiment", false, "Run the training strength experiment")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatal().Err(err).Msg("failed to read environment")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sticks":
			cfg.Sticks = *sticks
		case "rounds":
			cfg.Rounds = *rounds
		case "seed":
			cfg.Seed = *seed
		case "rules":
			cfg.Rules = *rules
		case "export":
			cfg.Export = *export
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	switch {
	case *serve:
		err = runServer(cfg)
	case *experiment:
		err = runExperiment(cfg)
	default:
		err = runConsole(cfg, *mode, *remote)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		log.Fatal().Err(err).Msg("sticks failed")
	}
}

func runConsole(cfg config.Config, mode int, remote string) error {
	console := player.NewConsole(os.Stdin, os.Stdout)
	fmt.Println("Welcome to the Game of Sticks!")

	pile := cfg.Sticks
	if pile == 0 {
		question := fmt.Sprintf("How many sticks are there on the table initially (%d-%d)? ", meta.MIN_STICKS, meta.MAX_STICKS)
		n, err := console.AskInt(question, meta.MIN_STICKS, meta.MAX_STICKS)
		if err != nil {
			return err
		}
		pile = n
	}

	if mode == 0 {
		question := "\nWhat gamemode would you like to play?\n" +
			"Enter 1 for Player vs. Player.\n" +
			"Enter 2 to play against computer.\n" +
			"Enter 3 to play against trained computer\n"
		n, err := console.AskInt(question, modePlayerVsPlayer, modeTrainedAI)
		if err != nil {
			return err
		}
		mode = n
	}

	switch {
	case mode == modePlayerVsPlayer:
		return playerVsPlayer(cfg, console, pile)
	case remote != "":
		return playerVsRemote(cfg, console, pile, remote)
	case mode == modeUntrainedAI:
		return playerVsAI(cfg, console, pile, 0)
	case mode == modeTrainedAI:
		return playerVsAI(cfg, console, pile, cfg.Rounds)
	default:
		return errors.Errorf("unknown game mode %d", mode)
	}
}

func playerVsPlayer(cfg config.Config, console *player.Console, pile int) error {
	for {
		fmt.Printf("\nThere are %d sticks on the board.\n", pile)
		result, err := gamemaster.PlayerVsPlayer(pile,
			console.Seat(game.Player1), console.Seat(game.Player2),
			cfg.GameRules(), console.Narrate(game.NoPlayer))
		if err != nil {
			return err
		}
		fmt.Printf("\n%s, you lose!\n", player.SeatName(result.Winner.Other()))

		again, err := console.AskYesNo("\nDo you want to play again? Yes/No")
		if err != nil || !again {
			fmt.Println("Thanks for playing!")
			return err
		}
	}
}

func playerVsAI(cfg config.Config, console *player.Console, pile, rounds int) error {
	rules := cfg.GameRules()
	table, err := trainer.Train(pile, rounds, trainer.WithSeed(cfg.Seed), trainer.WithRules(rules))
	if err != nil {
		return err
	}
	if cfg.Export != "" {
		if err := policy.SaveFile(cfg.Export, table); err != nil {
			log.Warn().Err(err).Msg("failed to export policy")
		} else {
			log.Info().Msgf("exported policy to %s", cfg.Export)
		}
	}

	rng := policy.NewRand(trainer.PlaySeed(cfg.Seed))
	for {
		fmt.Printf("\nThere are %d sticks on the board.\n", pile)
		match, err := gamemaster.NewMatch(pile, table, console.Seat(game.Player1),
			gamemaster.WithRules(rules),
			gamemaster.WithRand(rng),
			gamemaster.WithObserver(console.Narrate(game.Player2)),
		)
		if err != nil {
			return err
		}
		result, err := match.Play()
		if err != nil {
			return err
		}
		if result.AIWon {
			fmt.Println("The computer wins")
		} else {
			fmt.Println("Player 1 wins")
		}

		again, err := console.AskYesNo("Do you want to play again? Yes/No")
		if err != nil || !again {
			fmt.Println("Thanks for playing!")
			return err
		}
	}
}

func playerVsRemote(cfg config.Config, console *player.Console, pile int, url string) error {
	remote := client.New(url)
	for {
		fmt.Printf("\nThere are %d sticks on the board.\n", pile)
		e := engine.LocalEngine(console.Seat(game.Player1), remote, cfg.GameRules())
		e.Observe(console.Narrate(game.Player2))
		result, err := e.Run(pile)
		if err != nil {
			if abandonErr := remote.Abandon(); abandonErr != nil {
				log.Warn().Err(abandonErr).Msg("failed to abandon remote game")
			}
			return err
		}
		aiWon := result.Winner == game.Player2
		if err := remote.ReportOutcome(aiWon); err != nil {
			log.Warn().Err(err).Msg("failed to report outcome")
		}
		if aiWon {
			fmt.Println("The computer wins")
		} else {
			fmt.Println("Player 1 wins")
		}

		again, err := console.AskYesNo("Do you want to play again? Yes/No")
		if err != nil || !again {
			fmt.Println("Thanks for playing!")
			return err
		}
	}
}

func runServer(cfg config.Config) error {
	pile := cfg.Sticks
	if pile == 0 {
		pile = meta.MAX_STICKS
	}
	table, err := trainer.Train(pile, cfg.Rounds, trainer.WithSeed(cfg.Seed), trainer.WithRules(cfg.GameRules()))
	if err != nil {
		return err
	}
	return server.New(table, policy.NewRand(trainer.PlaySeed(cfg.Seed))).ListenAndServe(cfg.Addr)
}

func runExperiment(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pile := cfg.Sticks
	if pile == 0 {
		pile = meta.DEFAULT_STICKS
	}
	setup := experiments.Setup{
		Pile:      pile,
		Rounds:    cfg.ExperimentRounds,
		EvalGames: cfg.EvalGames,
		Seed:      cfg.Seed,
		Rules:     cfg.GameRules(),
	}

	start := time.Now()
	records, err := experiments.RunTrainingStrength(ctx, setup)
	if err != nil {
		return err
	}
	end := time.Now()

	writer, err := metrics.NewWriter("experiments", experiments.TrainingStrengthName)
	if err != nil {
		return err
	}
	return experiments.Store(writer, setup, start, end, records)
}
