package experiments

import (
	"context"
	"time"

	"sticks/agent"
	"sticks/engine"
	"sticks/experiments/metrics"
	"sticks/game"
	"sticks/policy"
	"sticks/trainer"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const TrainingStrengthName = "training_strength"

// Setup configures a training strength experiment.
type Setup struct {
	Pile      int
	Rounds    []int // One session per entry
	EvalGames int
	Seed      uint64
	Rules     game.Rules
	// Parallel caps concurrently training sessions; zero means unbounded
	Parallel int
}

// RunTrainingStrength trains one session per configured round count and
// scores each trained table against a random opponent. Sessions share
// nothing, so they train in parallel.
func RunTrainingStrength(ctx context.Context, setup Setup) ([]metrics.SessionRecord, error) {
	if setup.Pile <= 0 {
		return nil, errors.Wrapf(game.ErrInvalidPile, "experiment pile %d", setup.Pile)
	}
	if setup.Rules == nil {
		setup.Rules = game.NewStandardRules()
	}
	if setup.Seed == 0 {
		setup.Seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with %d sessions...", TrainingStrengthName, len(setup.Rounds))

	records := make([]metrics.SessionRecord, len(setup.Rounds))
	g, ctx := errgroup.WithContext(ctx)
	if setup.Parallel > 0 {
		g.SetLimit(setup.Parallel)
	}
	for i, rounds := range setup.Rounds {
		i, rounds := i, rounds
		config := metrics.SessionConfig{
			ID:     i + 1,
			Pile:   setup.Pile,
			Rounds: rounds,
			// Sessions draw from disjoint seed pairs
			Seed: setup.Seed + uint64(4*i),
		}
		g.Go(func() error {
			record, err := runSession(ctx, config, setup)
			if err != nil {
				return errors.Wrapf(err, "session %d", config.ID)
			}
			records[i] = record
			log.Info().Msgf("completed session %d of %d: rounds=%d win rate=%.3f optimal share=%.3f",
				config.ID, len(setup.Rounds), rounds, record.WinRate(), record.OptimalShare)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", TrainingStrengthName)
	return records, nil
}

func runSession(ctx context.Context, config metrics.SessionConfig, setup Setup) (metrics.SessionRecord, error) {
	t, err := trainer.New(config.Pile, config.Rounds,
		trainer.WithSeed(config.Seed),
		trainer.WithRules(setup.Rules),
		trainer.WithMetrics(metrics.NewCollector()),
		trainer.WithProgressEvery(0),
	)
	if err != nil {
		return metrics.SessionRecord{}, err
	}
	table, err := t.Run(ctx)
	if err != nil {
		return metrics.SessionRecord{}, err
	}

	wins, err := Evaluate(table, config.Pile, setup.EvalGames, setup.Rules, policy.NewRand(config.Seed+2))
	if err != nil {
		return metrics.SessionRecord{}, err
	}

	return metrics.SessionRecord{
		SessionConfig:  config,
		TrainingMetric: t.Metric(),
		EvalGames:      setup.EvalGames,
		EvalWins:       wins,
		OptimalShare:   OptimalShare(table, setup.Rules),
		Policy:         table,
	}, nil
}

// Evaluate plays games against a random opponent with the table's best
// moves, alternating who starts, and returns the number of games won. The
// table is only read.
func Evaluate(table *policy.Table, pile, games int, rules game.Rules, rng policy.Rand) (int, error) {
	trained := agent.NewEvaluationAgent(table)
	opponent := agent.NewRandomAgent(rng)

	wins := 0
	for i := 0; i < games; i++ {
		seat := game.Player1
		e := engine.LocalEngine(trained, opponent, rules)
		if i%2 == 1 {
			seat = game.Player2
			e = engine.LocalEngine(opponent, trained, rules)
		}
		result, err := e.Run(pile)
		if err != nil {
			return wins, errors.Wrapf(err, "evaluation game %d", i+1)
		}
		if result.Winner == seat {
			wins++
		}
	}
	return wins, nil
}

// OptimalShare is the fraction of piles with a winning move on which the
// table's best move is that winning move.
func OptimalShare(table *policy.Table, rules game.Rules) float64 {
	winnable, matched := 0, 0
	for pile := 1; pile <= table.Size(); pile++ {
		m, ok := game.OptimalMove(pile, rules)
		if !ok {
			continue
		}
		winnable++
		if table.Best(pile) == m {
			matched++
		}
	}
	if winnable == 0 {
		return 0
	}
	return float64(matched) / float64(winnable)
}

// Store writes the setup, the session records and every trained policy.
func Store(writer *metrics.Writer, setup Setup, start, end time.Time, records []metrics.SessionRecord) error {
	if setup.Rules == nil {
		setup.Rules = game.NewStandardRules()
	}
	configs := make([]metrics.SessionConfig, len(records))
	for i, r := range records {
		configs[i] = r.SessionConfig
	}
	err := writer.WriteSetup(metrics.Setup{
		Name:      TrainingStrengthName,
		Rules:     setup.Rules.Name(),
		Sessions:  configs,
		EvalGames: setup.EvalGames,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		return err
	}
	log.Info().Msg("stored experiment setup")

	if err := writer.WriteSessionRecords(records); err != nil {
		return err
	}
	log.Info().Msg("stored session records")

	for _, r := range records {
		if err := writer.WritePolicy(r.ID, r.Policy, setup.Rules); err != nil {
			return err
		}
	}
	log.Info().Msgf("stored %d policies in %s", len(records), writer.Dir())
	return nil
}
