package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceBetChipValuation(t *testing.T) {
	tests := []struct {
		name        string
		balance     int
		chips       []string
		wantOK      bool
		wantBet     int
		wantBalance int
	}{
		{"single chip", 100, []string{"red"}, true, 10, 90},
		{"mixed chips", 100, []string{"white", "red", "green"}, true, 40, 60},
		{"case insensitive", 100, []string{"BLACK"}, true, 100, 0},
		{"empty selection", 100, nil, false, 0, 100},
		{"unknown color", 100, []string{"red", "mauve"}, false, 0, 100},
		{"over balance", 40, []string{"black"}, false, 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("a", "a", "r1", tt.balance)
			ok := p.placeBet(tt.chips)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBet, p.Bet)
			assert.Equal(t, tt.wantBalance, p.Balance)
		})
	}
}
