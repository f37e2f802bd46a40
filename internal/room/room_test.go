package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine stands in for the blackjack engine: linear turn order over
// connected players, manual round conclusion.
type stubEngine struct {
	players   []*Player
	current   int
	active    bool
	nextCalls int
}

func newStubEngine(players []*Player) *stubEngine {
	g := &stubEngine{players: players, current: -1, active: true}
	g.advance()
	return g
}

func stubFactory(players []*Player) RoundEngine {
	return newStubEngine(players)
}

func (g *stubEngine) PlayTurn(p *Player, action string) error {
	p.InTurn = false
	g.advance()
	return nil
}

func (g *stubEngine) Active() bool { return g.active }

func (g *stubEngine) NextPlayer() {
	g.nextCalls++
	g.advance()
}

func (g *stubEngine) DealerHand() []Card { return nil }

func (g *stubEngine) advance() {
	for i := g.current + 1; i < len(g.players); i++ {
		if g.players[i].Connected {
			g.current = i
			g.players[i].InTurn = true
			return
		}
	}
	g.active = false
}

func seated(t *testing.T, r *Room, ids ...string) []*Player {
	t.Helper()
	players := make([]*Player, 0, len(ids))
	for _, id := range ids {
		p := NewPlayer(id, id, r.ID(), 500)
		require.NoError(t, r.Join(p))
		players = append(players, p)
	}
	return players
}

func TestJoinRejections(t *testing.T) {
	t.Run("full room", func(t *testing.T) {
		r := New("r1", 2, 2, stubFactory)
		seated(t, r, "a", "b")
		err := r.Join(NewPlayer("c", "c", "r1", 500))
		assert.ErrorIs(t, err, ErrRoomFull)
		assert.Len(t, r.Snapshot().Players, 2)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		r := New("r1", 2, 4, stubFactory)
		seated(t, r, "a")
		err := r.Join(NewPlayer("a", "a", "r1", 500))
		assert.ErrorIs(t, err, ErrAlreadySeated)
	})

	t.Run("playing room", func(t *testing.T) {
		r := roomInPlay(t)
		err := r.Join(NewPlayer("c", "c", "r1", 500))
		assert.ErrorIs(t, err, ErrGameInProgress)
	})

	t.Run("finished room", func(t *testing.T) {
		r := roomInPlay(t)
		require.True(t, r.Leave("b"))
		require.Equal(t, StatusFinished, r.Status())
		err := r.Join(NewPlayer("c", "c", "r1", 500))
		assert.ErrorIs(t, err, ErrGameFinished)
	})
}

func TestJoinOpensBetting(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	seated(t, r, "a")
	assert.Equal(t, StatusWaiting, r.Status())
	seated(t, r, "b")
	assert.Equal(t, StatusBetting, r.Status())
}

// roomInPlay returns a 2-seat room with a and b mid-round, a in turn.
func roomInPlay(t *testing.T) *Room {
	t.Helper()
	r := New("r1", 2, 3, stubFactory)
	seated(t, r, "a", "b")
	_, err := r.PlaceBet("a", []string{"red"})
	require.NoError(t, err)
	started, err := r.PlaceBet("b", []string{"red"})
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, StatusPlaying, r.Status())
	return r
}

func TestBettingGate(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	players := seated(t, r, "a", "b")

	started, err := r.PlaceBet("a", []string{"red", "white"})
	require.NoError(t, err)
	assert.False(t, started, "one straggler must block the transition")
	assert.Equal(t, StatusBetting, r.Status())
	assert.Equal(t, 485, players[0].Balance)

	started, err = r.PlaceBet("b", []string{"black"})
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, StatusPlaying, r.Status())
	assert.True(t, players[0].InTurn, "turn order follows join order")
	assert.False(t, players[1].InTurn)
}

func TestBettingErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) *Room
		player  string
		chips   []string
		wantErr error
	}{
		{
			name:    "room not in betting",
			setup:   func(t *testing.T) *Room { r := New("r1", 2, 4, stubFactory); seated(t, r, "a"); return r },
			player:  "a",
			chips:   []string{"red"},
			wantErr: ErrNotBetting,
		},
		{
			name: "player not seated",
			setup: func(t *testing.T) *Room {
				r := New("r1", 2, 4, stubFactory)
				seated(t, r, "a", "b")
				return r
			},
			player:  "z",
			chips:   []string{"red"},
			wantErr: ErrNotSeated,
		},
		{
			name: "unknown chip color",
			setup: func(t *testing.T) *Room {
				r := New("r1", 2, 4, stubFactory)
				seated(t, r, "a", "b")
				return r
			},
			player:  "a",
			chips:   []string{"mauve"},
			wantErr: ErrBetRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.setup(t)
			_, err := r.PlaceBet(tt.player, tt.chips)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBetIsNotRepeatable(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	players := seated(t, r, "a", "b")
	_, err := r.PlaceBet("a", []string{"red"})
	require.NoError(t, err)

	_, err = r.PlaceBet("a", []string{"red"})
	assert.ErrorIs(t, err, ErrBetAlreadyPlaced)
	assert.Equal(t, 490, players[0].Balance, "rejected bet must not mutate")
}

func TestLateJoinWidensGate(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	seated(t, r, "a", "b")
	_, err := r.PlaceBet("a", []string{"red"})
	require.NoError(t, err)

	seated(t, r, "c")

	started, err := r.PlaceBet("b", []string{"red"})
	require.NoError(t, err)
	assert.False(t, started, "late joiner must be counted by the gate")

	started, err = r.PlaceBet("c", []string{"red"})
	require.NoError(t, err)
	assert.True(t, started)
}

func TestLeaveEmptiesAndResets(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	seated(t, r, "a")
	require.True(t, r.Leave("a"))
	assert.Equal(t, StatusWaiting, r.Status())
	assert.Empty(t, r.Snapshot().Players)

	assert.False(t, r.Leave("a"), "leave is idempotent")
}

func TestLeaveBelowMinDuringPlayFinishes(t *testing.T) {
	r := roomInPlay(t)
	require.True(t, r.Leave("b"))

	snap := r.Snapshot()
	assert.Equal(t, StatusFinished, snap.Status)
	require.Len(t, snap.Players, 1)
	assert.False(t, snap.Players[0].InTurn, "no turn flag outside PLAYING")
}

func TestMarkDisconnectedOutsidePlayForfeitsSeat(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	seated(t, r, "a", "b")
	require.True(t, r.MarkDisconnected("a"))
	snap := r.Snapshot()
	require.Len(t, snap.Players, 1)
	assert.Equal(t, "b", snap.Players[0].ID)

	require.True(t, r.MarkDisconnected("b"))
	assert.Equal(t, StatusWaiting, r.Status())
	assert.Empty(t, r.Snapshot().Players)
}

func TestMarkDisconnectedMidRoundKeepsSeatAndPassesTurn(t *testing.T) {
	r := roomInPlay(t)
	require.True(t, r.MarkDisconnected("a"))

	snap := r.Snapshot()
	assert.Equal(t, StatusPlaying, snap.Status)
	require.Len(t, snap.Players, 2)
	assert.False(t, snap.Players[0].Connected)
	assert.False(t, snap.Players[0].InTurn)
	assert.True(t, snap.Players[1].InTurn, "turn must pass to the next player")

	assert.False(t, r.MarkDisconnected("z"), "unknown player is a no-op")
}

func TestActValidation(t *testing.T) {
	r := New("r1", 2, 4, stubFactory)
	seated(t, r, "a", "b")
	_, err := r.Act("a", "HIT")
	assert.ErrorIs(t, err, ErrNotPlaying)

	r = roomInPlay(t)
	_, err = r.Act("b", "HIT")
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = r.Act("z", "HIT")
	assert.ErrorIs(t, err, ErrNotSeated)
}

func TestActReportsRoundConclusion(t *testing.T) {
	r := roomInPlay(t)

	over, err := r.Act("a", "STAND")
	require.NoError(t, err)
	assert.False(t, over)

	over, err = r.Act("b", "STAND")
	require.NoError(t, err)
	assert.True(t, over)
	assert.Equal(t, StatusPlaying, r.Status(), "no auto-reset after a concluded round")
}

func TestResetIsUnconditional(t *testing.T) {
	r := roomInPlay(t)
	r.Reset()
	snap := r.Snapshot()
	assert.Equal(t, StatusWaiting, snap.Status)
	assert.Empty(t, snap.Players)
	assert.Nil(t, snap.Dealer)
}

func TestAtMostOneInTurn(t *testing.T) {
	r := roomInPlay(t)
	steps := []func(){
		func() { _, _ = r.Act("a", "STAND") },
		func() { r.MarkDisconnected("b") },
	}
	for _, step := range steps {
		step()
		inTurn := 0
		for _, p := range r.Snapshot().Players {
			if p.InTurn {
				inTurn++
			}
		}
		assert.LessOrEqual(t, inTurn, 1)
	}
}

// The end-to-end scenario from the room lifecycle contract: join, reject
// over capacity, bet into play, disconnect the turn holder, drain the room.
func TestRoomLifecycleScenario(t *testing.T) {
	r := New("R1", 2, 2, stubFactory)

	require.NoError(t, r.Join(NewPlayer("A", "A", "R1", 500)))
	require.NoError(t, r.Join(NewPlayer("B", "B", "R1", 500)))
	assert.ErrorIs(t, r.Join(NewPlayer("C", "C", "R1", 500)), ErrRoomFull)

	_, err := r.PlaceBet("A", []string{"green"})
	require.NoError(t, err)
	started, err := r.PlaceBet("B", []string{"green"})
	require.NoError(t, err)
	require.True(t, started)

	snap := r.Snapshot()
	require.Equal(t, StatusPlaying, snap.Status)
	assert.True(t, snap.Players[0].InTurn)

	require.True(t, r.MarkDisconnected("A"))
	snap = r.Snapshot()
	require.Len(t, snap.Players, 2, "disconnected player keeps the seat mid-round")
	assert.False(t, snap.Players[0].Connected)
	assert.True(t, snap.Players[1].InTurn)

	require.True(t, r.Leave("B"))
	snap = r.Snapshot()
	assert.Equal(t, StatusWaiting, snap.Status)
	assert.Empty(t, snap.Players)
}
