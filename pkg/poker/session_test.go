package poker

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, players []Player, cfg SessionConfig) *Session {
	t.Helper()
	if cfg.Blinds == (Blinds{}) {
		cfg.Blinds = testBlinds
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	cfg.Log = createTestLogger()
	s, err := NewSession(newTestEngine(nil), players, cfg)
	require.NoError(t, err)
	return s
}

func TestNewSessionValidation(t *testing.T) {
	engine := newTestEngine(nil)
	tests := []struct {
		name    string
		players []Player
		blinds  Blinds
	}{
		{name: "one player", players: fixedStack(nil, 100), blinds: testBlinds},
		{name: "duplicate names", players: []Player{NewPlayer("a", 100, nil), NewPlayer("a", 100, nil)}, blinds: testBlinds},
		{name: "empty name", players: []Player{NewPlayer("", 100, nil), NewPlayer("a", 100, nil)}, blinds: testBlinds},
		{name: "zero small blind", players: fixedStack(nil, 100, 100), blinds: Blinds{Small: 0, Big: 20}},
		{name: "big below small", players: fixedStack(nil, 100, 100), blinds: Blinds{Small: 20, Big: 10}},
		{name: "too many players", players: fixedStack(nil, make([]int64, 23)...), blinds: testBlinds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(engine, tt.players, SessionConfig{Blinds: tt.blinds})
			assert.Error(t, err)
		})
	}
}

func TestSessionDealerRotation(t *testing.T) {
	s := newTestSession(t, fixedStack(PassiveDecider{}, 1000, 1000, 1000), SessionConfig{})
	assert.Equal(t, 0, s.Dealer())

	var dealers []int
	for i := 0; i < 4; i++ {
		res, err := s.PlayHand(context.Background())
		require.NoError(t, err)
		dealers = append(dealers, res.Dealer)
		assert.Equal(t, i+1, res.HandNumber)
	}
	assert.Equal(t, []int{0, 1, 2, 0}, dealers)
	assert.Equal(t, 4, s.HandsPlayed())
}

func TestSessionSkipsEliminatedPlayers(t *testing.T) {
	// p1 starts broke: it never receives cards and never holds the button.
	var results []HandResult
	s := newTestSession(t, fixedStack(PassiveDecider{}, 1000, 0, 1000), SessionConfig{
		Dealer:         1,
		OnHandComplete: func(r HandResult) { results = append(results, r) },
	})
	assert.Equal(t, 2, s.Dealer(), "button moves off an empty seat")

	for i := 0; i < 3; i++ {
		_, err := s.PlayHand(context.Background())
		require.NoError(t, err)
	}
	require.Len(t, results, 3)
	for _, r := range results {
		require.Len(t, r.Players, 2)
		for _, p := range r.Players {
			assert.NotEqual(t, "p1", p.Name)
		}
	}
	assert.EqualValues(t, 0, s.Players()[1].Chips)
}

func TestSessionRunUntilOneStackRemains(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	players := []Player{
		NewPlayer("alice", 200, NewRuleBot(0.9, rng)),
		NewPlayer("bob", 200, randomDecider{rng: rng}),
		NewPlayer("carol", 200, randomDecider{rng: rng}),
	}
	var hands int
	s := newTestSession(t, players, SessionConfig{
		Rand:           rng,
		OnHandComplete: func(HandResult) { hands++ },
	})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, s.Funded())
	assert.Equal(t, hands, s.HandsPlayed())
	var total int64
	for _, p := range s.Players() {
		total += p.Chips
	}
	assert.EqualValues(t, 600, total)

	_, err := s.PlayHand(context.Background())
	assert.ErrorIs(t, err, ErrSessionOver)
}

func TestSessionHandLimit(t *testing.T) {
	s := newTestSession(t, fixedStack(PassiveDecider{}, 1000, 1000), SessionConfig{Hands: 3})
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 3, s.HandsPlayed())
}

func TestSessionRunCanceled(t *testing.T) {
	s := newTestSession(t, fixedStack(PassiveDecider{}, 1000, 1000), SessionConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Zero(t, s.HandsPlayed())
}
