package game

// Move is the number of sticks taken in one turn.
type Move int

// LegalMoves returns 1..min(MaxTake, pile) in ascending order.
func LegalMoves(pile int) []Move {
	n := min(MaxTake, pile)
	if n <= 0 {
		return nil
	}
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = Move(i + 1)
	}
	return moves
}

// IsLegal reports whether m may be taken from a pile of the given size.
func IsLegal(pile int, m Move) bool {
	return m >= 1 && int(m) <= MaxTake && int(m) <= pile
}
