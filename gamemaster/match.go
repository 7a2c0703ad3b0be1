package gamemaster

import (
	"sticks/agent"
	"sticks/engine"
	"sticks/game"
	"sticks/policy"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(m *Match)

func WithRules(rules game.Rules) Option {
	return func(m *Match) {
		if rules != nil {
			m.rules = rules
		}
	}
}

func WithRand(rng policy.Rand) Option {
	return func(m *Match) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithObserver reports every move, e.g. to narrate the game on a console.
func WithObserver(o engine.Observer) Option {
	return func(m *Match) {
		m.observers = append(m.observers, o)
	}
}

// Result is the outcome of one live match.
type Result struct {
	Winner  game.Player
	AIWon   bool
	History []engine.Update
}

// Match plays an outside move source, moving first, against a learner
// drawing from a trained table. The table keeps learning from the match.
type Match struct {
	pile      int
	table     *policy.Table
	source    agent.Agent
	rules     game.Rules
	rng       policy.Rand
	observers []engine.Observer
}

func NewMatch(pile int, table *policy.Table, source agent.Agent, options ...Option) (*Match, error) {
	if pile <= 0 {
		return nil, errors.Wrapf(game.ErrInvalidPile, "cannot play on %d sticks", pile)
	}
	if table == nil || source == nil {
		return nil, errors.New("match needs a policy table and a move source")
	}
	if pile > table.Size() {
		return nil, errors.Wrapf(game.ErrInvalidPile, "pile %d exceeds policy size %d", pile, table.Size())
	}

	m := &Match{
		pile:   pile,
		table:  table,
		source: source,
		rules:  game.NewStandardRules(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = policy.NewRand(0)
	}
	return m, nil
}

// Play runs the game to the end and reinforces the learner once with its
// outcome.
func (m *Match) Play() (Result, error) {
	ai := agent.NewLearner(m.table, m.rng)
	e := engine.LocalEngine(m.source, ai, m.rules)
	for _, o := range m.observers {
		e.Observe(o)
	}

	result, err := e.Run(m.pile)
	if err != nil {
		ai.Abandon()
		return Result{}, err
	}

	aiWon := result.Winner == game.Player2
	ai.Reinforce(aiWon)
	log.Info().Msgf("match on %d sticks won by %s after %d turns", m.pile, result.Winner, result.Turns())

	return Result{
		Winner:  result.Winner,
		AIWon:   aiWon,
		History: result.History,
	}, nil
}
