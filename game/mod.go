package game

import "github.com/pkg/errors"

// MaxTake is the largest number of sticks a player may remove in one turn.
const MaxTake = 3

var (
	ErrInvalidPile = errors.New("pile must hold at least one stick")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// Player identifies a seat at the table. Player1 always moves first.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "none"
	}
}

// Index maps Player1 and Player2 to 0 and 1 for per-seat slices.
func (p Player) Index() int {
	if p != Player1 && p != Player2 {
		panic("no index for " + p.String())
	}
	return int(p) - 1
}
