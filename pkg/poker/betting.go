package poker

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	Log      slog.Logger
	Observer Observer // Optional
}

// Engine runs betting streets and whole hands. It holds no hand state; every
// call threads a TableState through and returns the transformed snapshot.
type Engine struct {
	log      slog.Logger
	observer Observer
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(cfg EngineConfig) *Engine {
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	return &Engine{log: log, observer: cfg.Observer}
}

// LegalActions lists what p may do in s. Fold is always legal; Check or Call
// depending on whether p has matched the table; Raise when the stack covers
// more than the call; AllIn whenever chips remain. A player who already acted
// since the last full raise cannot raise again (a short all-in does not
// reopen the betting) and may only go all-in when that does not exceed a call.
func LegalActions(p Player, s TableState) []Action {
	legal := []Action{Fold}
	toCall := p.ToCall(s.CurrentBet)
	if toCall == 0 {
		legal = append(legal, Check)
	} else {
		legal = append(legal, Call)
	}
	open := p.actedRound != s.raiseRound
	if p.Chips > toCall && open {
		legal = append(legal, Raise)
	}
	if p.Chips > 0 && (open || p.Chips <= toCall) {
		legal = append(legal, AllIn)
	}
	return legal
}

// RaiseBounds returns the smallest and largest legal raise targets (new total
// street bet) for p. When p cannot afford a full raise both bounds equal p's
// all-in total.
func RaiseBounds(p Player, s TableState) (int64, int64) {
	hi := p.Chips + p.StreetBet
	lo := s.CurrentBet + s.MinRaise
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// NormalizeDecision turns a decider's answer into a legal decision. An
// action outside legal becomes Check when legal, else Fold, and the returned
// error is an *InvalidActionError. A raise target outside RaiseBounds is
// clamped to the nearest bound and the error is an *InvalidRaiseAmountError.
func NormalizeDecision(p Player, s TableState, legal []Action, d Decision) (Decision, error) {
	if !hasAction(legal, d.Action) {
		fallback := Decision{Action: Fold}
		if hasAction(legal, Check) {
			fallback = Decision{Action: Check}
		}
		return fallback, &InvalidActionError{Player: p.Name, Action: d.Action, Legal: legal}
	}
	if d.Action != Raise {
		return Decision{Action: d.Action}, nil
	}
	lo, hi := RaiseBounds(p, s)
	switch {
	case d.Amount < lo:
		return Decision{Action: Raise, Amount: lo}, &InvalidRaiseAmountError{Player: p.Name, Amount: d.Amount, Min: lo, Max: hi}
	case d.Amount > hi:
		return Decision{Action: Raise, Amount: hi}, &InvalidRaiseAmountError{Player: p.Name, Amount: d.Amount, Min: lo, Max: hi}
	}
	return d, nil
}

// ApplyAction applies a legal decision for the player in seat and returns the
// new snapshot plus the event describing it. Illegal actions and raise
// targets outside RaiseBounds are rejected; use NormalizeDecision first to
// recover them.
func ApplyAction(s TableState, seat int, d Decision) (TableState, Event, error) {
	if seat < 0 || seat >= len(s.Players) {
		return s, Event{}, fmt.Errorf("seat %d out of range", seat)
	}
	p := s.Players[seat]
	legal := LegalActions(p, s)
	if !hasAction(legal, d.Action) {
		return s, Event{}, &InvalidActionError{Player: p.Name, Action: d.Action, Legal: legal}
	}

	ev := Event{Kind: EventAction, Street: s.Street(), Player: p.Name, Action: d.Action}
	switch d.Action {
	case Fold:
		p.Folded = true
		ev.Message = fmt.Sprintf("%s folds", p.Name)

	case Check:
		ev.Message = fmt.Sprintf("%s checks", p.Name)

	case Call:
		actual := p.ToCall(s.CurrentBet)
		if actual > p.Chips {
			actual = p.Chips
		}
		p = p.commit(actual)
		s.Pot += actual
		ev.Amount = actual
		ev.Message = fmt.Sprintf("%s calls %d", p.Name, actual)

	case Raise:
		lo, hi := RaiseBounds(p, s)
		if d.Amount < lo || d.Amount > hi {
			return s, Event{}, &InvalidRaiseAmountError{Player: p.Name, Amount: d.Amount, Min: lo, Max: hi}
		}
		contribution := d.Amount - p.StreetBet
		p = p.commit(contribution)
		s.Pot += contribution
		s = raiseTo(s, d.Amount)
		ev.Amount = d.Amount
		ev.Message = fmt.Sprintf("%s raises to %d", p.Name, d.Amount)

	case AllIn:
		contribution := p.Chips
		p = p.commit(contribution)
		s.Pot += contribution
		if p.StreetBet > s.CurrentBet {
			s = raiseTo(s, p.StreetBet)
		}
		ev.Amount = contribution
		ev.Message = fmt.Sprintf("%s goes all-in (%d)", p.Name, contribution)
	}

	p.actedRound = s.raiseRound
	return s.withPlayer(seat, p), ev, nil
}

// raiseTo lifts the table bet to total. Only an increment of at least
// MinRaise is a full raise that resets MinRaise and reopens the betting.
func raiseTo(s TableState, total int64) TableState {
	increment := total - s.CurrentBet
	if increment >= s.MinRaise {
		s.MinRaise = increment
		s.raiseRound++
	}
	s.CurrentBet = total
	return s
}

// firstToAct returns the seat that opens a street: three after the dealer
// preflop (the dealer in a heads-up hand) and the seat after the dealer
// postflop.
func firstToAct(s TableState) int {
	n := len(s.Players)
	if s.Street() == Preflop {
		if n == 2 {
			return s.Dealer
		}
		return (s.Dealer + 3) % n
	}
	return (s.Dealer + 1) % n
}

// streetComplete reports whether the betting round is over given the number
// of actions taken since the last bet increase.
func streetComplete(s TableState, acted int) bool {
	if s.InHand() <= 1 {
		return true
	}
	actors := s.Actors()
	matched := true
	var lastActor Player
	for _, p := range s.Players {
		if !p.CanAct() {
			continue
		}
		lastActor = p
		if p.StreetBet != s.CurrentBet {
			matched = false
		}
	}
	if matched && acted >= actors {
		return true
	}
	if actors < 2 {
		return actors == 0 || lastActor.StreetBet >= s.CurrentBet
	}
	return false
}

// RunBettingRound drives one street to completion. Players act in seat order
// from firstToAct, skipping folded and all-in seats. A bet increase resets the
// acted counter to one; any other action increments it.
func (e *Engine) RunBettingRound(ctx context.Context, s TableState) (TableState, []Event) {
	var events []Event
	n := len(s.Players)
	if n == 0 {
		return s, nil
	}

	actor := firstToAct(s)
	acted := 0
	for !streetComplete(s, acted) {
		seat := actor % n
		actor++
		p := s.Players[seat]
		if !p.CanAct() {
			continue
		}

		legal := LegalActions(p, s)
		dec, subEvents := e.decide(ctx, p, s, legal)
		events = append(events, subEvents...)

		prevBet := s.CurrentBet
		next, ev, err := ApplyAction(s, seat, dec)
		if err != nil {
			// NormalizeDecision only yields legal decisions.
			panic(fmt.Sprintf("poker: normalized decision rejected: %v", err))
		}
		s = next
		e.mustValidate(s)
		e.log.Debugf("%s: %s (pot=%d bet=%d minRaise=%d)", s.Street(), ev.Message, s.Pot, s.CurrentBet, s.MinRaise)
		events = append(events, ev)
		e.notify(s, ev)

		if s.CurrentBet > prevBet {
			acted = 1
		} else {
			acted++
		}
	}
	return s, events
}

// decide asks the player's decider and recovers any bad answer. Canceled
// decisions fold; other decider failures take the safest legal action.
func (e *Engine) decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, []Event) {
	var events []Event
	fallback := Decision{Action: Fold}
	if hasAction(legal, Check) {
		fallback = Decision{Action: Check}
	}

	d := p.Decider()
	if d == nil {
		return fallback, nil
	}
	e.log.Tracef("asking %s, legal %v\n%s", p.Name, legal, p.GetStatus())

	dec, err := d.Decide(ctx, p, s.Clone(), append([]Action(nil), legal...))
	if err != nil {
		dec = fallback
		if errors.Is(err, ErrDecisionCanceled) || ctx.Err() != nil {
			dec = Decision{Action: Fold}
		}
		e.log.Warnf("decision for %s failed: %v; using %s", p.Name, err, dec.Action)
		ev := Event{
			Kind:    EventSubstitution,
			Street:  s.Street(),
			Player:  p.Name,
			Action:  dec.Action,
			Message: fmt.Sprintf("%s: decision failed (%v), %s substituted", p.Name, err, dec.Action),
		}
		events = append(events, ev)
		e.notify(s, ev)
		return dec, events
	}

	fixed, err := NormalizeDecision(p, s, legal, dec)
	if err != nil {
		ev := Event{Street: s.Street(), Player: p.Name, Action: fixed.Action, Amount: fixed.Amount}
		var invalidAction *InvalidActionError
		if errors.As(err, &invalidAction) {
			ev.Kind = EventSubstitution
			ev.Message = fmt.Sprintf("%s: illegal %s, %s substituted", p.Name, dec.Action, fixed.Action)
		} else {
			ev.Kind = EventClamp
			ev.Message = fmt.Sprintf("%s: raise to %d clamped to %d", p.Name, dec.Amount, fixed.Amount)
		}
		e.log.Warnf("%v", err)
		events = append(events, ev)
		e.notify(s, ev)
	}
	return fixed, events
}

// notify hands the observer a private copy of s. Observer panics are logged
// and swallowed.
func (e *Engine) notify(s TableState, ev Event) {
	if e.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("observer panic on %q: %v", ev.Message, r)
		}
	}()
	e.observer.Observe(s.Clone(), ev)
}

// mustValidate panics when s breaks a snapshot invariant.
func (e *Engine) mustValidate(s TableState) {
	if err := s.Validate(); err != nil {
		e.log.Criticalf("invariant violated: %v", err)
		panic(fmt.Sprintf("poker: invariant violated: %v\n%s", err, spew.Sdump(s)))
	}
}
