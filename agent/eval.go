package agent

import (
	"sticks/game"
	"sticks/policy"

	"github.com/pkg/errors"
)

type evaluationAgent struct {
	table *policy.Table
}

// NewEvaluationAgent returns an agent that always plays the move holding the
// most tokens. It reads the table without drawing from it.
func NewEvaluationAgent(table *policy.Table) Agent {
	return evaluationAgent{table: table}
}

func (a evaluationAgent) FindMove(state game.State) (game.Move, error) {
	if state.GameOver() {
		return 0, game.ErrGameOver
	}
	if state.Pile > a.table.Size() {
		return 0, errors.Wrapf(game.ErrInvalidPile, "pile %d exceeds policy size %d", state.Pile, a.table.Size())
	}
	return a.table.Best(state.Pile), nil
}
