package engine

import "sticks/game"

// Update records one turn: who moved, the pile they moved on, and the move.
type Update struct {
	Player game.Player
	Pile   int
	Move   game.Move
}

// Result describes a finished game.
type Result struct {
	Winner    game.Player
	LastMover game.Player
	History   []Update
}

// Turns is the number of moves played.
func (r Result) Turns() int {
	return len(r.History)
}

// Observer is told about every move after it is applied.
type Observer func(update Update, state game.State)
