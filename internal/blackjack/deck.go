package blackjack

import (
	"math/rand"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

var suits = []string{"clubs", "diamonds", "hearts", "spades"}

var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var rankValues = map[string]int{
	"A": 11, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
	"8": 8, "9": 9, "10": 10, "J": 10, "Q": 10, "K": 10,
}

func newDeck(rng *rand.Rand) []room.Card {
	deck := make([]room.Card, 0, len(suits)*len(ranks))
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, room.Card{Rank: r, Suit: s})
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// HandValue scores a hand, demoting aces from 11 to 1 while the hand would
// bust.
func HandValue(hand []room.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += rankValues[c.Rank]
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack reports a natural: twenty-one from the first two cards.
func IsBlackjack(hand []room.Card) bool {
	return len(hand) == 2 && HandValue(hand) == 21
}
