package engine

import (
	"sticks/agent"
	"sticks/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Engine alternates two agents on one pile until it is empty.
type Engine struct {
	Agents    []agent.Agent
	Rules     game.Rules
	observers []Observer
}

// LocalEngine seats first as Player1 and second as Player2. Nil rules mean
// standard rules.
func LocalEngine(first, second agent.Agent, rules game.Rules) *Engine {
	if first == nil || second == nil {
		panic("need two agents")
	}
	if rules == nil {
		rules = game.NewStandardRules()
	}
	return &Engine{
		Agents: []agent.Agent{first, second},
		Rules:  rules,
	}
}

// Observe registers o to be called after every move.
func (e *Engine) Observe(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Run plays one game from a full pile until a winner is found.
func (e *Engine) Run(pile int) (Result, error) {
	state, err := game.NewState(pile)
	if err != nil {
		return Result{}, err
	}

	log.Debug().Msgf("starting game on %d sticks", pile)

	history := make([]Update, 0, pile)
	for !state.GameOver() {
		current := state.Player()
		move, err := e.Agents[current.Index()].FindMove(state)
		if err != nil {
			return Result{}, errors.Wrapf(err, "%s failed to move on %d sticks", current, state.Pile)
		}

		next, err := state.Play(move)
		if err != nil {
			return Result{}, err
		}

		u := Update{Player: current, Pile: state.Pile, Move: move}
		history = append(history, u)
		state = next

		for _, o := range e.observers {
			o(u, state)
		}
	}

	winner := state.Winner(e.Rules)
	log.Debug().Msgf("game over after %d turns, winner: %s", len(history), winner)

	return Result{
		Winner:    winner,
		LastMover: state.LastMover,
		History:   history,
	}, nil
}
