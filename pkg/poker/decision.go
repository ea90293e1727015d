package poker

import (
	"context"
	"fmt"
)

// Action is a betting action.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "FOLD"
	case Check:
		return "CHECK"
	case Call:
		return "CALL"
	case Raise:
		return "RAISE"
	case AllIn:
		return "ALL_IN"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is a decider's answer. Amount is only read for Raise, where it is
// the player's new total bet for the street.
type Decision struct {
	Action Action
	Amount int64
}

// Decider chooses an action for a player. It may block (for example while a
// human decides); ctx cancellation must make it return promptly.
type Decider interface {
	Decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error) {
	return f(ctx, p, s, legal)
}

// PassiveDecider checks when possible and calls otherwise.
type PassiveDecider struct{}

// Decide implements Decider.
func (PassiveDecider) Decide(_ context.Context, _ Player, _ TableState, legal []Action) (Decision, error) {
	if hasAction(legal, Check) {
		return Decision{Action: Check}, nil
	}
	return Decision{Action: Call}, nil
}

// DecisionRequest is a pending decision handed to an interactive surface.
type DecisionRequest struct {
	Player Player
	State  TableState
	Legal  []Action
	Min    int64 // Smallest legal raise target
	Max    int64 // Largest legal raise target

	reply chan Decision
}

// Respond delivers the decision. Only the first call has an effect.
func (r DecisionRequest) Respond(d Decision) {
	select {
	case r.reply <- d:
	default:
	}
}

// ChannelDecider bridges the engine to an interactive surface. Each Decide
// call sends one DecisionRequest and waits for the reply.
type ChannelDecider struct {
	requests chan<- DecisionRequest
}

// NewChannelDecider returns a decider publishing requests on ch.
func NewChannelDecider(ch chan<- DecisionRequest) *ChannelDecider {
	return &ChannelDecider{requests: ch}
}

// Decide implements Decider. It returns ErrDecisionCanceled when ctx ends
// before the surface answers.
func (d *ChannelDecider) Decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error) {
	lo, hi := RaiseBounds(p, s)
	req := DecisionRequest{
		Player: p,
		State:  s,
		Legal:  append([]Action(nil), legal...),
		Min:    lo,
		Max:    hi,
		reply:  make(chan Decision, 1),
	}
	select {
	case d.requests <- req:
	case <-ctx.Done():
		return Decision{}, fmt.Errorf("%w: %v", ErrDecisionCanceled, ctx.Err())
	}
	select {
	case dec := <-req.reply:
		return dec, nil
	case <-ctx.Done():
		return Decision{}, fmt.Errorf("%w: %v", ErrDecisionCanceled, ctx.Err())
	}
}

func hasAction(legal []Action, a Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
