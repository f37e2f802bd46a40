package room

// Card is a playing card as it appears in broadcast snapshots. Hand
// valuation lives in the round engine.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func (c Card) String() string {
	return c.Rank + " of " + c.Suit
}
