package trainer

import (
	"context"

	"sticks/agent"
	"sticks/engine"
	"sticks/experiments/metrics"
	"sticks/game"
	"sticks/policy"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(t *Trainer)

// WithSeed seeds both agents' generators; the second agent gets seed+1.
func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		if seed != 0 {
			t.rngs = []policy.Rand{policy.NewRand(seed), policy.NewRand(seed + 1)}
		}
	}
}

// PlaySeed derives the seed for games played after training from the seed
// given to WithSeed, so play never repeats either training stream. Zero
// stays zero and seeds from the clock.
func PlaySeed(seed uint64) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + 2
}

// WithRand hands each agent its own source of randomness.
func WithRand(first, second policy.Rand) Option {
	return func(t *Trainer) {
		if first != nil && second != nil {
			t.rngs = []policy.Rand{first, second}
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(t *Trainer) {
		if rules != nil {
			t.rules = rules
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(t *Trainer) {
		if collector != nil {
			t.metrics = collector
		}
	}
}

// WithProgressEvery logs progress every n rounds; zero disables it.
func WithProgressEvery(n int) Option {
	return func(t *Trainer) {
		if n >= 0 {
			t.progressEvery = n
		}
	}
}

// Trainer pits two learners with separate tables against each other for a
// fixed number of rounds. Both tables carry over from round to round.
type Trainer struct {
	pile          int
	rounds        int
	rngs          []policy.Rand
	rules         game.Rules
	metrics       metrics.Collector
	metric        metrics.TrainingMetric
	progressEvery int
	learners      []*agent.Learner
	engine        *engine.Engine
	played        int
}

func New(pile, rounds int, options ...Option) (*Trainer, error) {
	if pile <= 0 {
		return nil, errors.Wrapf(game.ErrInvalidPile, "cannot train on %d sticks", pile)
	}
	if rounds < 0 {
		return nil, errors.Errorf("rounds must be >= 0, got %d", rounds)
	}

	t := &Trainer{ // Default values
		pile:          pile,
		rounds:        rounds,
		rules:         game.NewStandardRules(),
		metrics:       metrics.NewDummyCollector(),
		progressEvery: max(rounds/10, 1),
	}
	for _, option := range options {
		option(t)
	}
	if t.rngs == nil {
		t.rngs = []policy.Rand{policy.NewRand(0), policy.NewRand(0)}
	}

	t.learners = make([]*agent.Learner, 2)
	for i := range t.learners {
		table, err := policy.NewTable(pile)
		if err != nil {
			return nil, err
		}
		t.learners[i] = agent.NewLearner(table, t.rngs[i])
	}
	t.engine = engine.LocalEngine(t.learners[0], t.learners[1], t.rules)
	return t, nil
}

// PlayRound plays one game on a full pile and reinforces both learners.
func (t *Trainer) PlayRound() (engine.Result, error) {
	result, err := t.engine.Run(t.pile)
	if err != nil {
		return engine.Result{}, errors.Wrapf(err, "round %d", t.played+1)
	}
	for i, learner := range t.learners {
		learner.Reinforce(result.Winner == game.Player(i+1))
	}
	t.metrics.AddRound(result.Winner, result.Turns())
	t.played++
	return result, nil
}

// Run plays the remaining rounds and returns the second learner's table.
// Cancelling ctx stops training between rounds.
func (t *Trainer) Run(ctx context.Context) (*policy.Table, error) {
	log.Info().Msgf("training on %d sticks for %d rounds", t.pile, t.rounds)

	t.metrics.Start()
	for t.played < t.rounds {
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "training stopped after %d of %d rounds", t.played, t.rounds)
		default:
		}

		if _, err := t.PlayRound(); err != nil {
			return nil, err
		}
		if t.progressEvery > 0 && t.played%t.progressEvery == 0 {
			log.Info().Msgf("completed round %d of %d", t.played, t.rounds)
		}
	}
	t.metric = t.metrics.Complete()

	log.Info().Msgf("completed training after %d rounds", t.played)
	return t.learners[1].Table(), nil
}

// Tables returns the first and second learner's tables.
func (t *Trainer) Tables() (first, second *policy.Table) {
	return t.learners[0].Table(), t.learners[1].Table()
}

// Played is the number of rounds finished so far.
func (t *Trainer) Played() int {
	return t.played
}

// Metric returns what the collector recorded during the last Run.
func (t *Trainer) Metric() metrics.TrainingMetric {
	return t.metric
}

// Train runs a full training session and returns the trained table.
func Train(pile, rounds int, options ...Option) (*policy.Table, error) {
	t, err := New(pile, rounds, options...)
	if err != nil {
		return nil, err
	}
	return t.Run(context.Background())
}
