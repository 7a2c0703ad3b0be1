package agent

import (
	"sticks/game"
	"sticks/policy"

	"github.com/pkg/errors"
)

// Learner plays by drawing moves from its policy table and learns from the
// outcome of every game it finishes.
type Learner struct {
	table      *policy.Table
	rng        policy.Rand
	trajectory policy.Trajectory
}

// NewLearner returns a learner that owns table from now on.
func NewLearner(table *policy.Table, rng policy.Rand) *Learner {
	return &Learner{table: table, rng: rng}
}

func (l *Learner) FindMove(state game.State) (game.Move, error) {
	if state.GameOver() {
		return 0, game.ErrGameOver
	}
	if state.Pile > l.table.Size() {
		return 0, errors.Wrapf(game.ErrInvalidPile, "pile %d exceeds policy size %d", state.Pile, l.table.Size())
	}
	return l.table.Sample(state.Pile, l.rng, &l.trajectory), nil
}

// Reinforce scores the moves drawn since the last call and forgets them.
func (l *Learner) Reinforce(won bool) {
	l.table.Reinforce(&l.trajectory, won)
}

// Abandon puts the drawn tokens back as they were, for a game that never
// finished.
func (l *Learner) Abandon() {
	l.table.Restore(&l.trajectory)
}

func (l *Learner) Table() *policy.Table {
	return l.table
}

// Trajectory returns a copy of the moves drawn since the last Reinforce.
func (l *Learner) Trajectory() policy.Trajectory {
	return append(policy.Trajectory(nil), l.trajectory...)
}
