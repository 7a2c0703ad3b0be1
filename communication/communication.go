package communication

// Wire types shared by the move service and its client.

type MoveRequest struct {
	Pile int `json:"pile"`
}

type MoveResponse struct {
	Move int `json:"move"`
}

type OutcomeRequest struct {
	Won bool `json:"won"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// PolicyResponse lists the token counts for moves 1, 2 and 3 per pile.
type PolicyResponse struct {
	Size   int      `json:"size"`
	Counts [][3]int `json:"counts"` // Counts[pile-1]
}
