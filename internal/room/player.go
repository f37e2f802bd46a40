package room

import "strings"

// User is the durable identity behind a seat, resolved through the external
// user directory.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

// chipValues maps the chip colors a client may stake to their value.
var chipValues = map[string]int{
	"white": 5,
	"red":   10,
	"green": 25,
	"blue":  50,
	"black": 100,
}

// Player is a per-room participant record. The Room owns roster membership
// and InTurn; the round engine mutates Hand, Bet and Balance during play.
type Player struct {
	ID        string
	Name      string
	RoomID    string
	Balance   int
	Bet       int
	HasBet    bool
	Connected bool
	InTurn    bool
	Hand      []Card
}

func NewPlayer(id, name, roomID string, balance int) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		RoomID:    roomID,
		Balance:   balance,
		Connected: true,
	}
}

// placeBet validates the chip selection against the balance and reserves
// the stake. A single unknown color rejects the whole selection with no
// mutation.
func (p *Player) placeBet(chips []string) bool {
	if len(chips) == 0 {
		return false
	}
	total := 0
	for _, c := range chips {
		v, ok := chipValues[strings.ToLower(c)]
		if !ok {
			return false
		}
		total += v
	}
	if total > p.Balance {
		return false
	}
	p.Balance -= total
	p.Bet = total
	return true
}
