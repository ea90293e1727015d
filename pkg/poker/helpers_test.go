package poker

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/decred/slog"
)

func createTestLogger() slog.Logger {
	log := slog.NewBackend(io.Discard).Logger("TEST")
	log.SetLevel(slog.LevelTrace)
	return log
}

func newTestEngine(obs Observer) *Engine {
	return NewEngine(EngineConfig{Log: createTestLogger(), Observer: obs})
}

// scriptedDecider replays a fixed list of decisions per player name and
// plays passively once a script runs out.
type scriptedDecider struct {
	mu      sync.Mutex
	scripts map[string][]Decision
	asked   []string
}

func newScriptedDecider(scripts map[string][]Decision) *scriptedDecider {
	return &scriptedDecider{scripts: scripts}
}

func (d *scriptedDecider) Decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asked = append(d.asked, p.Name)
	queue := d.scripts[p.Name]
	if len(queue) == 0 {
		return PassiveDecider{}.Decide(ctx, p, s, legal)
	}
	d.scripts[p.Name] = queue[1:]
	return queue[0], nil
}

// randomDecider picks uniformly among the legal actions and, for raises, a
// uniform target anywhere in (and slightly outside) the legal range.
type randomDecider struct {
	rng *rand.Rand
}

func (d randomDecider) Decide(_ context.Context, p Player, s TableState, legal []Action) (Decision, error) {
	a := legal[d.rng.Intn(len(legal))]
	if a != Raise {
		return Decision{Action: a}, nil
	}
	lo, hi := RaiseBounds(p, s)
	return Decision{Action: Raise, Amount: lo - 5 + d.rng.Int63n(hi-lo+11)}, nil
}

// fixedStack builds players p0..pn-1 with the given stacks sharing one decider.
func fixedStack(d Decider, stacks ...int64) []Player {
	players := make([]Player, len(stacks))
	for i, chips := range stacks {
		players[i] = NewPlayer(fmt.Sprintf("p%d", i), chips, d)
	}
	return players
}

// dealt returns a fresh hand dealt from the unshuffled deck.
func dealt(players []Player, dealer int, minRaise int64) TableState {
	s, err := NewTableState(FullDeck(), players, dealer, minRaise)
	if err != nil {
		panic(err)
	}
	return s
}

// onFlop deals a hand and moves it to a fresh flop street.
func onFlop(players []Player, dealer int, minRaise int64) TableState {
	s := dealt(players, dealer, minRaise)
	deck, board, err := Reveal(s.Deck, s.Community, 3)
	if err != nil {
		panic(err)
	}
	s.Deck, s.Community = deck, board
	return s.ResetStreet()
}

// withBets sets per-hand fields directly for resolver tests.
func withBets(s TableState, bets []int64, folded []bool) TableState {
	players := make([]Player, len(s.Players))
	var pot int64
	for i, p := range s.Players {
		p.HandBet = bets[i]
		p.StreetBet = 0
		p.Folded = folded[i]
		p.Chips -= bets[i]
		p.AllIn = p.Chips == 0
		pot += bets[i]
		players[i] = p
	}
	s.Players = players
	s.Pot = pot
	return s
}

// setHoles replaces hole cards and the board without touching the deck.
func setHoles(s TableState, board string, holes ...string) TableState {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hole = MustParseCards(holes[i])
		players[i] = p
	}
	s.Players = players
	s.Community = MustParseCards(board)
	s.Deck = nil
	return s
}
