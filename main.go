package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/blackjack"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

// Plays a single round against the dealer in the terminal, driving the
// round engine directly without the server.
func main() {
	player := room.NewPlayer("you", "You", "local", 500)
	player.Balance -= 25
	player.Bet = 25

	g := blackjack.NewWithSeed([]*room.Player{player}, time.Now().UnixNano())
	reader := bufio.NewReader(os.Stdin)

	for g.Active() {
		fmt.Printf("\nYour hand: %v (%d)\n", handNames(player.Hand), blackjack.HandValue(player.Hand))
		fmt.Printf("Dealer shows: %v\n", g.DealerHand()[0])
		fmt.Print("hit/stand/double > ")
		line, _ := reader.ReadString('\n')
		action := strings.ToUpper(strings.TrimSpace(line))
		if err := g.PlayTurn(player, action); err != nil {
			fmt.Println(err)
		}
	}

	fmt.Printf("\nDealer hand: %v (%d)\n", handNames(g.DealerHand()), blackjack.HandValue(g.DealerHand()))
	fmt.Printf("Your hand: %v (%d)\n", handNames(player.Hand), blackjack.HandValue(player.Hand))
	fmt.Printf("Balance: %d\n", player.Balance)
}

func handNames(hand []room.Card) []string {
	out := make([]string, 0, len(hand))
	for _, c := range hand {
		out = append(out, c.String())
	}
	return out
}
