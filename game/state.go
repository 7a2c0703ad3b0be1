package game

import "github.com/pkg/errors"

// State is immutable - Play always returns a new copy.
//
// A state with Pile > 0 is awaiting a move from Turn; a state with Pile == 0
// is game over and LastMover took the final stick.
type State struct {
	Pile      int
	Turn      Player
	LastMover Player
}

// NewState returns the opening state of a game played on pile sticks.
func NewState(pile int) (State, error) {
	if pile <= 0 {
		return State{}, errors.Wrapf(ErrInvalidPile, "got %d", pile)
	}
	return State{Pile: pile, Turn: Player1}, nil
}

func (s State) Player() Player {
	return s.Turn
}

func (s State) LegalMoves() []Move {
	if s.GameOver() {
		return nil
	}
	return LegalMoves(s.Pile)
}

func (s State) GameOver() bool {
	return s.Pile == 0
}

// Play removes m sticks for the player to move and hands the turn over.
func (s State) Play(m Move) (State, error) {
	if s.GameOver() {
		return s, ErrGameOver
	}
	if !IsLegal(s.Pile, m) {
		return s, errors.Wrapf(ErrIllegalMove, "%s cannot take %d from %d", s.Turn, m, s.Pile)
	}
	return State{
		Pile:      s.Pile - int(m),
		Turn:      s.Turn.Other(),
		LastMover: s.Turn,
	}, nil
}

// Winner returns NoPlayer until the pile is empty.
func (s State) Winner(r Rules) Player {
	if !s.GameOver() {
		return NoPlayer
	}
	return r.Winner(s.LastMover)
}
