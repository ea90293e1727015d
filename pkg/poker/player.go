package poker

import (
	"fmt"
)

// PlayerStatus is a player's standing within the current hand.
type PlayerStatus int

const (
	StatusActive PlayerStatus = iota
	StatusFolded
	StatusAllIn
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusFolded:
		return "FOLDED"
	case StatusAllIn:
		return "ALL_IN"
	default:
		return "UNKNOWN"
	}
}

// notActed marks a player who has not acted voluntarily this street.
const notActed = -1

// Player is a seated player. It is a value type: engine transitions copy it
// rather than mutating a shared instance.
type Player struct {
	// Identity
	Name string

	// Chips persist across hands.
	Chips int64

	// Per-hand state, cleared by the resolver.
	Hole      []Card
	Folded    bool
	AllIn     bool
	StreetBet int64 // Amount wagered on the current street
	HandBet   int64 // Amount wagered over the whole hand

	// actedRound is the table's raise round in which the player last acted
	// voluntarily, or notActed. Used to close raising after a short all-in.
	actedRound int

	decider Decider
}

// NewPlayer creates a player with a starting stack and the decision source
// that will act for it.
func NewPlayer(name string, chips int64, d Decider) Player {
	return Player{
		Name:       name,
		Chips:      chips,
		actedRound: notActed,
		decider:    d,
	}
}

// Decider returns the decision source attached to the player.
func (p Player) Decider() Decider {
	return p.decider
}

// WithDecider returns a copy of p using d for decisions.
func (p Player) WithDecider(d Decider) Player {
	p.decider = d
	return p
}

// Status derives the player's hand status from the folded and all-in flags.
func (p Player) Status() PlayerStatus {
	switch {
	case p.Folded:
		return StatusFolded
	case p.AllIn:
		return StatusAllIn
	default:
		return StatusActive
	}
}

// CanAct reports whether the player still takes voluntary actions this hand.
func (p Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// ToCall returns the chips needed to match currentBet.
func (p Player) ToCall(currentBet int64) int64 {
	if currentBet <= p.StreetBet {
		return 0
	}
	return currentBet - p.StreetBet
}

// clearHand drops every per-hand field, keeping identity and chips.
func (p Player) clearHand() Player {
	p.Hole = nil
	p.Folded = false
	p.AllIn = false
	p.StreetBet = 0
	p.HandBet = 0
	p.actedRound = notActed
	return p
}

// commit moves amount from the stack into the player's bets.
func (p Player) commit(amount int64) Player {
	p.Chips -= amount
	p.StreetBet += amount
	p.HandBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return p
}

// GetStatus returns a string representation of the player's status
func (p Player) GetStatus() string {
	status := fmt.Sprintf("Player %s:\n", p.Name)
	status += fmt.Sprintf("Chips: %d\n", p.Chips)
	status += fmt.Sprintf("Street Bet: %d chips\n", p.StreetBet)
	status += fmt.Sprintf("Hand Bet: %d chips\n", p.HandBet)
	status += fmt.Sprintf("Hand: %s\n", FormatCards(p.Hole))
	status += fmt.Sprintf("State: %s\n", p.Status())
	return status
}
