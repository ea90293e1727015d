package poker

import (
	"fmt"
)

// Street identifies a betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "PRE_FLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	case Showdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}

// TableState is one immutable snapshot of a hand in progress. Transitions
// return a new TableState; slices in a snapshot are never written after the
// snapshot is handed out.
type TableState struct {
	Deck       []Card
	Players    []Player // Seat order, fixed for the hand
	Community  []Card
	Pot        int64
	CurrentBet int64 // Highest street bet the table must match
	Dealer     int
	MinRaise   int64 // Smallest legal raise increment
	BaseRaise  int64 // MinRaise restored at the start of each street

	// raiseRound counts full raises on the current street. A short all-in
	// does not advance it.
	raiseRound int
}

// NewTableState builds a fresh hand from an already shuffled deck, dealing
// hole cards in seat order. Every player's per-hand fields are reset.
func NewTableState(deck []Card, players []Player, dealer int, minRaise int64) (TableState, error) {
	cleared := make([]Player, len(players))
	for i, p := range players {
		cleared[i] = p.clearHand()
	}
	dealt, rest, err := DealHoleCards(deck, cleared)
	if err != nil {
		return TableState{}, fmt.Errorf("deal hole cards: %w", err)
	}
	if len(players) > 0 {
		dealer = ((dealer % len(players)) + len(players)) % len(players)
	}
	return TableState{
		Deck:      rest,
		Players:   dealt,
		Dealer:    dealer,
		MinRaise:  minRaise,
		BaseRaise: minRaise,
	}, nil
}

// Clone returns a deep copy whose slices share nothing with s.
func (s TableState) Clone() TableState {
	c := s
	c.Deck = cloneCards(s.Deck)
	c.Community = cloneCards(s.Community)
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hole = cloneCards(p.Hole)
		c.Players[i] = p
	}
	return c
}

// withPlayer returns a copy of s with seat i replaced by p. Only the player
// slice is copied; card slices are shared because they are never mutated.
func (s TableState) withPlayer(i int, p Player) TableState {
	players := make([]Player, len(s.Players))
	copy(players, s.Players)
	players[i] = p
	s.Players = players
	return s
}

// Street reports the betting round implied by the board size.
func (s TableState) Street() Street {
	switch {
	case len(s.Community) == 0:
		return Preflop
	case len(s.Community) <= 3:
		return Flop
	case len(s.Community) == 4:
		return Turn
	default:
		return River
	}
}

// InHand counts players who have not folded.
func (s TableState) InHand() int {
	n := 0
	for _, p := range s.Players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// Actors counts players who can still act voluntarily.
func (s TableState) Actors() int {
	n := 0
	for _, p := range s.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// TotalChips is the sum of all stacks plus the pot.
func (s TableState) TotalChips() int64 {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// ResetStreet clears street bets and restores the minimum raise before a new
// betting round.
func (s TableState) ResetStreet() TableState {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.StreetBet = 0
		p.actedRound = notActed
		players[i] = p
	}
	s.Players = players
	s.CurrentBet = 0
	s.MinRaise = s.BaseRaise
	s.raiseRound = 0
	return s
}

// Validate checks the snapshot invariants: disjoint card sets, non-negative
// stacks and bets, pot equal to the sum of hand contributions, and a table
// bet no lower than any player's street bet. A non-nil error means the engine
// has a bug.
func (s TableState) Validate() error {
	seen := make(map[Card]string, 52)
	mark := func(c Card, where string) error {
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("card %s in both %s and %s", c, prev, where)
		}
		seen[c] = where
		return nil
	}
	for _, c := range s.Deck {
		if err := mark(c, "deck"); err != nil {
			return err
		}
	}
	for _, c := range s.Community {
		if err := mark(c, "community"); err != nil {
			return err
		}
	}

	var contributed int64
	for _, p := range s.Players {
		for _, c := range p.Hole {
			if err := mark(c, p.Name); err != nil {
				return err
			}
		}
		if p.Chips < 0 {
			return fmt.Errorf("player %s has negative chips %d", p.Name, p.Chips)
		}
		if p.StreetBet < 0 || p.HandBet < p.StreetBet {
			return fmt.Errorf("player %s has inconsistent bets street=%d hand=%d", p.Name, p.StreetBet, p.HandBet)
		}
		if p.StreetBet > s.CurrentBet {
			return fmt.Errorf("player %s street bet %d exceeds table bet %d", p.Name, p.StreetBet, s.CurrentBet)
		}
		contributed += p.HandBet
	}
	if contributed != s.Pot {
		return fmt.Errorf("pot %d does not match contributions %d", s.Pot, contributed)
	}
	if s.MinRaise < 0 {
		return fmt.Errorf("negative min raise %d", s.MinRaise)
	}
	return nil
}
