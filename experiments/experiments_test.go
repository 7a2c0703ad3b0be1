package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sticks/experiments/metrics"
	"sticks/game"
	"sticks/policy"
	"sticks/trainer"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRunTrainingStrength(t *testing.T) {
	t.Run("one record per session, in order", func(t *testing.T) {
		setup := Setup{Pile: 10, Rounds: []int{0, 20, 1000}, EvalGames: 100, Seed: 12, Parallel: 2}

		records, err := RunTrainingStrength(context.Background(), setup)

		require.NoError(t, err)
		require.Len(t, records, 3)
		for i, r := range records {
			require.Equal(t, i+1, r.ID)
			require.Equal(t, setup.Rounds[i], r.SessionConfig.Rounds)
			require.Equal(t, setup.Rounds[i], r.TrainingMetric.Rounds)
			require.Equal(t, 100, r.EvalGames)
			require.NotNil(t, r.Policy)
		}
		untrained, trained := records[0], records[2]
		require.Greater(t, trained.WinRate(), untrained.WinRate(), "Training should beat the uniform table")
	})

	t.Run("rejects empty piles", func(t *testing.T) {
		_, err := RunTrainingStrength(context.Background(), Setup{Pile: 0, Rounds: []int{1}})
		require.True(t, errors.Is(err, game.ErrInvalidPile))
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunTrainingStrength(ctx, Setup{Pile: 10, Rounds: []int{100}, Seed: 1})

		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("perfect play wins every game it can", func(t *testing.T) {
		// Hand-built table whose best move is always optimal
		table, _ := policy.NewTable(9)
		rules := game.NewStandardRules()
		for pile := 1; pile <= 9; pile++ {
			if m, ok := game.OptimalMove(pile, rules); ok {
				trajectory := policy.Trajectory{{Pile: pile, Move: m}}
				table.Reinforce(&trajectory, true)
			}
		}
		require.Equal(t, 1.0, OptimalShare(table, rules))

		// Nine sticks is won by whoever moves first
		wins, err := Evaluate(table, 9, 200, rules, policy.NewRand(3))

		require.NoError(t, err)
		require.GreaterOrEqual(t, wins, 100, "Every game as first player is won")
	})

	t.Run("does not touch the table", func(t *testing.T) {
		table, _ := policy.NewTable(10)
		before := table.Clone()

		_, err := Evaluate(table, 10, 20, game.NewStandardRules(), policy.NewRand(4))

		require.NoError(t, err)
		require.Equal(t, before, table)
	})
}

func TestOptimalShare(t *testing.T) {
	table, err := trainer.Train(10, 0, trainer.WithSeed(1))
	require.NoError(t, err)

	// A uniform table prefers move 1 everywhere, which is optimal on piles 1, 5 and 9
	require.InDelta(t, 3.0/8.0, OptimalShare(table, game.NewStandardRules()), 1e-9)
}

func TestStore(t *testing.T) {
	setup := Setup{Pile: 10, Rounds: []int{0, 50}, EvalGames: 10, Seed: 5}
	records, err := RunTrainingStrength(context.Background(), setup)
	require.NoError(t, err)
	writer, err := metrics.NewWriter(t.TempDir(), TrainingStrengthName)
	require.NoError(t, err)

	err = Store(writer, setup, time.Now().Add(-time.Second), time.Now(), records)

	require.NoError(t, err)
	for _, name := range []string{"setup.json", "sessions.csv", "policy_1.csv", "policy_2.csv"} {
		_, err := os.Stat(filepath.Join(writer.Dir(), name))
		require.NoError(t, err, "Should store %s", name)
	}
}
