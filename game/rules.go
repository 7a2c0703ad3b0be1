package game

type Rules interface {
	Name() string
	// Winner decides the game from the player who took the final stick
	Winner(lastMover Player) Player
	// Losing reports whether the player to move on pile sticks loses against perfect play
	Losing(pile int) bool
}
