package agent

import "sticks/game"

type Agent interface {
	// FindMove returns a legal move for the player to move in state
	FindMove(state game.State) (game.Move, error)
}

// Func adapts a plain function to the Agent interface.
type Func func(state game.State) (game.Move, error)

func (f Func) FindMove(state game.State) (game.Move, error) {
	return f(state)
}
