package poker

import (
	"errors"
	"fmt"
)

// ErrDecisionCanceled is returned by deciders whose context ended before a
// decision arrived. The engine treats it as an implicit fold.
var ErrDecisionCanceled = errors.New("decision canceled")

// InsufficientCardsError reports a deal or reveal that needs more cards than
// the deck holds.
type InsufficientCardsError struct {
	Need int
	Have int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("insufficient cards: need %d, have %d", e.Need, e.Have)
}

// InvalidActionError reports a decider choosing an action outside the legal set.
type InvalidActionError struct {
	Player string
	Action Action
	Legal  []Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %s for %s (legal: %v)", e.Action, e.Player, e.Legal)
}

// InvalidRaiseAmountError reports a raise target outside [Min, Max].
type InvalidRaiseAmountError struct {
	Player string
	Amount int64
	Min    int64
	Max    int64
}

func (e *InvalidRaiseAmountError) Error() string {
	return fmt.Sprintf("invalid raise amount %d for %s (range %d-%d)", e.Amount, e.Player, e.Min, e.Max)
}

// ErrSessionOver is returned when fewer than two players have chips left.
var ErrSessionOver = errors.New("session over: fewer than two players with chips")
