package policy

import (
	"fmt"

	"sticks/game"

	"github.com/pkg/errors"
)

// Rand is the randomness a Table samples with. *rand.Rand from
// golang.org/x/exp/rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
}

// Segment records one draw: the pile the move was drawn for and the move.
type Segment struct {
	Pile int
	Move game.Move
}

// Trajectory lists one agent's draws during one game, in play order.
type Trajectory []Segment

// Table holds a hat of move tokens for every pile size 1..N. A move's share
// of the tokens in a hat is its probability of being drawn.
type Table struct {
	hats [][game.MaxTake]int // hats[pile-1][move-1] = token count
}

// NewTable returns a table with exactly one token for every legal move.
func NewTable(size int) (*Table, error) {
	if size <= 0 {
		return nil, errors.Wrapf(game.ErrInvalidPile, "policy size %d", size)
	}
	t := &Table{hats: make([][game.MaxTake]int, size)}
	for pile := 1; pile <= size; pile++ {
		for _, m := range game.LegalMoves(pile) {
			t.hats[pile-1][m-1] = 1
		}
	}
	return t, nil
}

// Size is the largest pile the table covers.
func (t *Table) Size() int {
	return len(t.hats)
}

func (t *Table) hat(pile int) *[game.MaxTake]int {
	if pile < 1 || pile > len(t.hats) {
		panic(fmt.Sprintf("pile %d outside policy range 1..%d", pile, len(t.hats)))
	}
	return &t.hats[pile-1]
}

// Count returns the number of m tokens in the hat for pile.
func (t *Table) Count(pile int, m game.Move) int {
	if m < 1 || int(m) > game.MaxTake {
		return 0
	}
	return t.hat(pile)[m-1]
}

// Counts returns the token counts for moves 1, 2 and 3.
func (t *Table) Counts(pile int) [game.MaxTake]int {
	return *t.hat(pile)
}

// Total returns the number of tokens in the hat for pile.
func (t *Table) Total(pile int) int {
	total := 0
	for _, count := range t.hat(pile) {
		total += count
	}
	return total
}

// Frequency returns the probability that m is drawn at pile.
func (t *Table) Frequency(pile int, m game.Move) float64 {
	total := t.Total(pile)
	if total == 0 {
		return 0
	}
	return float64(t.Count(pile, m)) / float64(total)
}

// Best returns the move holding the most tokens at pile, preferring the
// smaller move on ties. It does not touch the hat.
func (t *Table) Best(pile int) game.Move {
	var best game.Move
	maxCount := 0
	for i, count := range t.hat(pile) {
		if count > maxCount {
			maxCount = count
			best = game.Move(i + 1)
		}
	}
	if best == 0 {
		panic(fmt.Sprintf("empty hat for pile %d", pile))
	}
	return best
}

// Sample draws one token from the hat for pile, weighted by count, and sets
// it aside on the trajectory until Reinforce puts it back.
func (t *Table) Sample(pile int, rng Rand, trajectory *Trajectory) game.Move {
	hat := t.hat(pile)
	total := 0
	for _, count := range hat {
		total += count
	}
	if total == 0 {
		panic(fmt.Sprintf("empty hat for pile %d", pile))
	}

	token := rng.Intn(total)
	for i, count := range hat {
		if token < count {
			hat[i]--
			m := game.Move(i + 1)
			*trajectory = append(*trajectory, Segment{Pile: pile, Move: m})
			return m
		}
		token -= count
	}
	panic(fmt.Sprintf("token %d out of range for pile %d", token, pile))
}

// Reinforce returns the trajectory's tokens to their hats. After a win every
// drawn move gets two tokens back; after a loss a move gets one token back
// only if none of its kind is left, so no legal move ever dies out.
// The trajectory is emptied.
func (t *Table) Reinforce(trajectory *Trajectory, won bool) {
	for _, segment := range *trajectory {
		if !game.IsLegal(segment.Pile, segment.Move) {
			panic(fmt.Sprintf("illegal segment %+v", segment))
		}
		hat := t.hat(segment.Pile)
		i := segment.Move - 1
		if won {
			hat[i] += 2
		} else if hat[i] == 0 {
			hat[i] = 1
		}
	}
	*trajectory = (*trajectory)[:0]
}

// Restore puts back exactly the tokens the trajectory drew, without any
// reinforcement, and empties the trajectory.
func (t *Table) Restore(trajectory *Trajectory) {
	for _, segment := range *trajectory {
		if !game.IsLegal(segment.Pile, segment.Move) {
			panic(fmt.Sprintf("illegal segment %+v", segment))
		}
		t.hat(segment.Pile)[segment.Move-1]++
	}
	*trajectory = (*trajectory)[:0]
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	hats := make([][game.MaxTake]int, len(t.hats))
	copy(hats, t.hats)
	return &Table{hats: hats}
}
