// Package blackjack is the round engine behind room.RoundEngine: it deals,
// resolves player actions, plays the dealer and settles balances.
package blackjack

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

const (
	ActionHit    = "HIT"
	ActionStand  = "STAND"
	ActionDouble = "DOUBLE"

	dealerStand = 17
)

var (
	ErrUnknownAction = errors.New("unknown action type")
	ErrRoundOver     = errors.New("the round is already over")
	ErrCannotDouble  = errors.New("double requires two cards and enough balance")
)

// Game plays one round for a fixed roster in join order. It is driven
// exclusively from inside the owning room's critical section and does no
// locking of its own.
type Game struct {
	players []*room.Player
	dealer  []room.Card
	deck    []room.Card
	current int
	done    map[string]bool
	active  bool
	rng     *rand.Rand
}

// New is the room.EngineFactory used in production wiring.
func New(players []*room.Player) room.RoundEngine {
	return NewWithSeed(players, time.Now().UnixNano())
}

// NewWithSeed deals the opening hands from a deterministic shuffle and
// gives the turn to the first eligible player.
func NewWithSeed(players []*room.Player, seed int64) *Game {
	g := &Game{
		players: players,
		current: -1,
		done:    make(map[string]bool),
		active:  true,
		rng:     rand.New(rand.NewSource(seed)),
	}
	g.deck = newDeck(g.rng)
	for _, p := range players {
		p.Hand = nil
		p.InTurn = false
	}
	for i := 0; i < 2; i++ {
		for _, p := range players {
			p.Hand = append(p.Hand, g.draw())
		}
		g.dealer = append(g.dealer, g.draw())
	}
	g.advance()
	return g
}

func (g *Game) Active() bool { return g.active }

func (g *Game) DealerHand() []room.Card {
	return append([]room.Card(nil), g.dealer...)
}

func (g *Game) PlayTurn(p *room.Player, action string) error {
	if !g.active {
		return ErrRoundOver
	}
	switch strings.ToUpper(action) {
	case ActionHit:
		p.Hand = append(p.Hand, g.draw())
		if HandValue(p.Hand) > 21 {
			g.finishTurn(p)
		}
	case ActionStand:
		g.finishTurn(p)
	case ActionDouble:
		if len(p.Hand) != 2 || p.Balance < p.Bet {
			return ErrCannotDouble
		}
		p.Balance -= p.Bet
		p.Bet *= 2
		p.Hand = append(p.Hand, g.draw())
		g.finishTurn(p)
	default:
		return ErrUnknownAction
	}
	return nil
}

// NextPlayer surrenders the current turn without resolving it, e.g. when
// the in-turn player disconnects. The caller has already cleared InTurn.
func (g *Game) NextPlayer() {
	if g.active {
		g.advance()
	}
}

func (g *Game) finishTurn(p *room.Player) {
	g.done[p.ID] = true
	p.InTurn = false
	g.advance()
}

// advance hands the turn to the next eligible player in join order,
// skipping finished and disconnected seats. Past the last player the
// dealer plays and the round settles.
func (g *Game) advance() {
	for i := g.current + 1; i < len(g.players); i++ {
		p := g.players[i]
		if p.Connected && !g.done[p.ID] {
			g.current = i
			p.InTurn = true
			return
		}
	}
	g.current = len(g.players)
	g.playDealer()
	g.settle()
	g.active = false
}

func (g *Game) playDealer() {
	for HandValue(g.dealer) < dealerStand {
		g.dealer = append(g.dealer, g.draw())
	}
}

// settle pays out against the dealer: natural pays 3:2, win 1:1, push
// refunds the stake, bust and loss forfeit it.
func (g *Game) settle() {
	d := HandValue(g.dealer)
	for _, p := range g.players {
		v := HandValue(p.Hand)
		switch {
		case v > 21:
		case IsBlackjack(p.Hand) && !IsBlackjack(g.dealer):
			p.Balance += p.Bet + p.Bet*3/2
		case d > 21 || v > d:
			p.Balance += p.Bet * 2
		case v == d:
			p.Balance += p.Bet
		}
	}
}

func (g *Game) draw() room.Card {
	if len(g.deck) == 0 {
		g.deck = newDeck(g.rng)
	}
	c := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return c
}
