package agent

import (
	"sticks/game"
	"sticks/policy"
)

type randomAgent struct {
	rng policy.Rand
}

// NewRandomAgent returns an agent picking uniformly among the legal moves.
func NewRandomAgent(rng policy.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return 0, game.ErrGameOver
	}
	return moves[a.rng.Intn(len(moves))], nil
}

type maxAgent struct{}

// NewMaxAgent returns an agent that always takes as many sticks as allowed.
func NewMaxAgent() Agent {
	return maxAgent{}
}

func (maxAgent) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return 0, game.ErrGameOver
	}
	return moves[len(moves)-1], nil
}
