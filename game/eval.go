package game

// OptimalMove returns the move that leaves the opponent in a losing position
// under r. ok is false when every legal move leaves a winning position, that
// is when the player to move is already lost against perfect play.
//
// The learning agents never call this; it is the yardstick experiments and
// tests use to score a trained policy.
func OptimalMove(pile int, r Rules) (m Move, ok bool) {
	for _, candidate := range LegalMoves(pile) {
		rest := pile - int(candidate)
		if rest == 0 {
			// Taking the last stick decides the game outright
			if r.Winner(Player1) == Player1 {
				return candidate, true
			}
			continue
		}
		if r.Losing(rest) {
			return candidate, true
		}
	}
	return 0, false
}
