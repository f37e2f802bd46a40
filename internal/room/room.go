// Package room implements the authoritative state machine for a Blackjack
// table: roster membership, phase transitions, the betting gate and turn
// dispatch into the round engine.
package room

import (
	"errors"
	"sync"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusBetting  Status = "BETTING"
	StatusPlaying  Status = "PLAYING"
	StatusFinished Status = "FINISHED"
)

var (
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("cannot join, the game already started")
	ErrGameFinished     = errors.New("the game has finished")
	ErrAlreadySeated    = errors.New("player is already in the room")
	ErrNotSeated        = errors.New("player is not in the room")
	ErrNotBetting       = errors.New("bets cannot be placed right now")
	ErrBetAlreadyPlaced = errors.New("bet was already placed")
	ErrBetRejected      = errors.New("insufficient balance or invalid chip color")
	ErrNotPlaying       = errors.New("room is not in the playing phase")
	ErrNotYourTurn      = errors.New("it is not this player's turn")
)

// RoundEngine resolves a single round of play. The room instantiates one on
// the BETTING -> PLAYING transition and drops it on reset.
type RoundEngine interface {
	// PlayTurn resolves one action for the in-turn player, advancing the
	// turn pointer when the action ends the turn.
	PlayTurn(p *Player, action string) error
	// Active reports false once the round has been settled.
	Active() bool
	// NextPlayer surrenders the current turn, used when the in-turn player
	// disconnects mid-round.
	NextPlayer()
	// DealerHand exposes the dealer's cards for snapshots.
	DealerHand() []Card
}

// EngineFactory builds a round engine over the roster in join order.
type EngineFactory func(players []*Player) RoundEngine

// Room serializes all mutation behind its own mutex: every exported
// operation is a single validate -> mutate -> derived-transition critical
// section, so concurrent events for one room cannot interleave while
// different rooms proceed in parallel.
type Room struct {
	mu         sync.Mutex
	id         string
	status     Status
	players    []*Player
	minPlayers int
	maxPlayers int
	engine     RoundEngine
	newEngine  EngineFactory
}

func New(id string, minPlayers, maxPlayers int, factory EngineFactory) *Room {
	return &Room{
		id:         id,
		status:     StatusWaiting,
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		newEngine:  factory,
	}
}

func (r *Room) ID() string { return r.id }

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerByID(playerID) != nil
}

// Join seats a player, preserving join order. Reaching minPlayers while
// WAITING opens the betting phase; later joins (capacity permitting) widen
// the all-bets-in gate.
func (r *Room) Join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.status {
	case StatusPlaying:
		return ErrGameInProgress
	case StatusFinished:
		return ErrGameFinished
	}
	if r.playerByID(p.ID) != nil {
		return ErrAlreadySeated
	}
	if len(r.players) >= r.maxPlayers {
		return ErrRoomFull
	}
	r.players = append(r.players, p)
	if r.status == StatusWaiting && len(r.players) >= r.minPlayers {
		r.status = StatusBetting
	}
	return nil
}

// Leave removes the player outright. An emptied room resets; a PLAYING room
// dropping below minPlayers abandons the round as FINISHED.
func (r *Room) Leave(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.playerByID(playerID)
	if p == nil {
		return false
	}
	if r.status == StatusPlaying && p.InTurn {
		p.InTurn = false
		p.Connected = false
		if r.engine != nil {
			r.engine.NextPlayer()
		}
	}
	r.removePlayer(playerID)
	r.afterRosterShrink()
	return true
}

// MarkDisconnected flags the player as gone. Outside PLAYING the seat is
// forfeited; mid-round the seat persists and an in-turn player surrenders
// the turn to the engine.
func (r *Room) MarkDisconnected(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.playerByID(playerID)
	if p == nil {
		return false
	}
	p.Connected = false
	if r.status != StatusPlaying {
		r.removePlayer(playerID)
		if len(r.players) == 0 {
			r.resetLocked()
		}
		return true
	}
	if p.InTurn {
		p.InTurn = false
		if r.engine != nil {
			r.engine.NextPlayer()
		}
	}
	return true
}

// PlaceBet applies one bet and, when it completes the all-bets-in gate,
// transitions BETTING -> PLAYING in the same critical section. It reports
// whether play started.
func (r *Room) PlaceBet(playerID string, chips []string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusBetting {
		return false, ErrNotBetting
	}
	p := r.playerByID(playerID)
	if p == nil {
		return false, ErrNotSeated
	}
	if p.HasBet {
		return false, ErrBetAlreadyPlaced
	}
	if !p.placeBet(chips) {
		return false, ErrBetRejected
	}
	p.HasBet = true
	for _, q := range r.players {
		if !q.HasBet {
			return false, nil
		}
	}
	r.endBettingLocked()
	return true, nil
}

// Act resolves one turn action through the round engine and reports whether
// the round concluded. The room stays PLAYING after a concluded round until
// an explicit restart.
func (r *Room) Act(playerID, action string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusPlaying || r.engine == nil {
		return false, ErrNotPlaying
	}
	p := r.playerByID(playerID)
	if p == nil {
		return false, ErrNotSeated
	}
	if !p.InTurn {
		return false, ErrNotYourTurn
	}
	if err := r.engine.PlayTurn(p, action); err != nil {
		return false, err
	}
	return !r.engine.Active(), nil
}

// Reset clears the roster and any round engine and returns to WAITING. It
// is accepted unconditionally: restarts are an operator/host action.
func (r *Room) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

func (r *Room) endBettingLocked() {
	r.status = StatusPlaying
	r.engine = r.newEngine(append([]*Player(nil), r.players...))
}

func (r *Room) afterRosterShrink() {
	// Seats held only by disconnected players count as an empty room.
	if !r.anyConnected() {
		r.resetLocked()
		return
	}
	if r.status == StatusPlaying && len(r.players) < r.minPlayers {
		r.status = StatusFinished
		r.engine = nil
		for _, p := range r.players {
			p.InTurn = false
		}
	}
}

func (r *Room) resetLocked() {
	r.players = nil
	r.engine = nil
	r.status = StatusWaiting
}

func (r *Room) anyConnected() bool {
	for _, p := range r.players {
		if p.Connected {
			return true
		}
	}
	return false
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) removePlayer(id string) {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return
		}
	}
}
