package room

// PlayerState is the public projection of a seated player.
type PlayerState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   int    `json:"balance"`
	Bet       int    `json:"bet"`
	HasBet    bool   `json:"hasBet"`
	Connected bool   `json:"connected"`
	InTurn    bool   `json:"inTurn"`
	Hand      []Card `json:"hand"`
}

// RoomState is the read-only snapshot broadcast to clients after every
// room-affecting mutation. It is built on demand and never persisted by
// this package.
type RoomState struct {
	ID         string        `json:"id"`
	Status     Status        `json:"status"`
	MinPlayers int           `json:"minPlayers"`
	MaxPlayers int           `json:"maxPlayers"`
	Players    []PlayerState `json:"players"`
	Dealer     []Card        `json:"dealer,omitempty"`
}

// Snapshot projects the current room state. It takes the room lock, so a
// snapshot never observes a half-applied mutation.
func (r *Room) Snapshot() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := RoomState{
		ID:         r.id,
		Status:     r.status,
		MinPlayers: r.minPlayers,
		MaxPlayers: r.maxPlayers,
		Players:    make([]PlayerState, 0, len(r.players)),
	}
	for _, p := range r.players {
		state.Players = append(state.Players, PlayerState{
			ID:        p.ID,
			Name:      p.Name,
			Balance:   p.Balance,
			Bet:       p.Bet,
			HasBet:    p.HasBet,
			Connected: p.Connected,
			InTurn:    p.InTurn,
			Hand:      append([]Card(nil), p.Hand...),
		})
	}
	if r.engine != nil {
		state.Dealer = append([]Card(nil), r.engine.DealerHand()...)
	}
	return state
}
