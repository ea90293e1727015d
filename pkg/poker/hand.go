package poker

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/vctt94/holdemengine/pkg/statemachine"
)

// Blinds are the forced bets posted before the preflop street.
type Blinds struct {
	Small int64
	Big   int64
}

// ShowdownHand is one non-folded player's cards as shown at the end of a
// hand, captured before the resolver clears them.
type ShowdownHand struct {
	Seat int
	Name string
	Hole []Card
	Rank HandRank
}

// HandResult summarizes a finished hand.
type HandResult struct {
	HandNumber int
	Dealer     int
	Board      []Card
	Showdown   []ShowdownHand // Empty when the hand ended uncontested
	Payouts    []Payout
	Events     []Event
	Players    []Player // Stacks after payouts
}

// Winnings returns the chips each player name collected from the hand.
func (r HandResult) Winnings() map[string]int64 {
	won := make(map[string]int64)
	for _, p := range r.Payouts {
		if p.Refund {
			continue
		}
		for i, seat := range p.Winners {
			won[r.Players[seat].Name] += p.Shares[i]
		}
	}
	return won
}

// handRun is the entity driven by the orchestrator's state machine.
type handRun struct {
	ctx    context.Context
	engine *Engine
	blinds Blinds
	state  TableState
	events []Event
	result HandResult
}

// PlayHand plays one hand from a freshly dealt snapshot: blinds, the four
// betting streets with board reveals between them, and payout resolution.
// Later streets are skipped once a single player remains. The returned
// snapshot has every per-hand field cleared and carries the final stacks.
func (e *Engine) PlayHand(ctx context.Context, s TableState, blinds Blinds) (TableState, HandResult) {
	before := s.TotalChips()
	h := &handRun{
		ctx:    ctx,
		engine: e,
		blinds: blinds,
		state:  s,
		result: HandResult{Dealer: s.Dealer},
	}

	sm := statemachine.NewStateMachine(h, statePostBlinds)
	sm.Run()

	if after := h.state.TotalChips(); after != before {
		e.log.Criticalf("chip total changed from %d to %d", before, after)
		panic(fmt.Sprintf("poker: chip total changed from %d to %d\n%s", before, after, spew.Sdump(h.result)))
	}
	h.result.Events = h.events
	h.result.Players = h.state.Players
	return h.state, h.result
}

// PostBlinds charges the small and big blinds. The small blind is the seat
// after the dealer and the big blind the seat after that; heads-up the dealer
// posts the small blind. A short stack posts what it has and is all-in. The
// table bet is set to the big blind amount.
func PostBlinds(s TableState, blinds Blinds) (TableState, []Event) {
	n := len(s.Players)
	if n < 2 {
		return s, nil
	}
	sb, bb := (s.Dealer+1)%n, (s.Dealer+2)%n
	if n == 2 {
		sb, bb = s.Dealer, (s.Dealer+1)%n
	}

	events := make([]Event, 0, 2)
	post := func(seat int, amount int64, label string) {
		p := s.Players[seat]
		if amount > p.Chips {
			amount = p.Chips
		}
		p = p.commit(amount)
		s.Pot += amount
		s = s.withPlayer(seat, p)
		msg := fmt.Sprintf("%s posts %s blind %d", p.Name, label, amount)
		if p.AllIn {
			msg += " and is all-in"
		}
		events = append(events, Event{
			Kind:    EventBlind,
			Street:  Preflop,
			Player:  p.Name,
			Amount:  amount,
			Message: msg,
		})
	}
	post(sb, blinds.Small, "small")
	post(bb, blinds.Big, "big")
	s.CurrentBet = blinds.Big
	return s, events
}

func (h *handRun) emit(evs ...Event) {
	for _, ev := range evs {
		h.events = append(h.events, ev)
		h.engine.notify(h.state, ev)
	}
}

func statePostBlinds(h *handRun) statemachine.StateFn[handRun] {
	s, evs := PostBlinds(h.state, h.blinds)
	h.state = s
	h.engine.mustValidate(s)
	for _, ev := range evs {
		h.engine.log.Debugf("%s", ev.Message)
	}
	h.emit(evs...)
	return stateBetting
}

// stateBetting runs the betting round for whatever street the board implies
// and then moves to the next reveal.
func stateBetting(h *handRun) statemachine.StateFn[handRun] {
	s, evs := h.engine.RunBettingRound(h.ctx, h.state)
	h.state = s
	h.events = append(h.events, evs...)
	return stateAdvance
}

// stateAdvance decides what follows a betting round.
func stateAdvance(h *handRun) statemachine.StateFn[handRun] {
	if h.state.InHand() <= 1 {
		return stateShowdown
	}
	switch len(h.state.Community) {
	case 0:
		return revealState(3)
	case 3:
		return revealState(1)
	case 4:
		return revealState(1)
	default:
		return stateShowdown
	}
}

// revealState burns and turns n board cards, resets the street and returns to
// betting. When the deck runs short the street is skipped.
func revealState(n int) statemachine.StateFn[handRun] {
	return func(h *handRun) statemachine.StateFn[handRun] {
		s := h.state
		deck, board, err := Reveal(s.Deck, s.Community, n)
		if err != nil {
			h.engine.log.Warnf("reveal %d cards: %v", n, err)
			h.emit(Event{
				Kind:    EventError,
				Street:  s.Street(),
				Message: fmt.Sprintf("cannot reveal %d cards: %v", n, err),
			})
			return stateShowdown
		}
		s.Deck, s.Community = deck, board
		s = s.ResetStreet()
		h.state = s
		h.engine.mustValidate(s)

		ev := Event{
			Kind:    EventReveal,
			Street:  s.Street(),
			Cards:   cloneCards(board[len(board)-n:]),
			Message: fmt.Sprintf("%s: %s", s.Street(), FormatCards(board)),
		}
		h.engine.log.Debugf("%s", ev.Message)
		h.emit(ev)
		return stateBetting
	}
}

// stateShowdown shows the remaining hands and pays every pot.
func stateShowdown(h *handRun) statemachine.StateFn[handRun] {
	s := h.state
	h.result.Board = cloneCards(s.Community)

	if s.InHand() > 1 {
		n := len(s.Players)
		for k := 1; k <= n; k++ {
			seat := (s.Dealer + k) % n
			p := s.Players[seat]
			if p.Folded {
				continue
			}
			rank := BestHand(p.Hole, s.Community)
			h.result.Showdown = append(h.result.Showdown, ShowdownHand{
				Seat: seat,
				Name: p.Name,
				Hole: cloneCards(p.Hole),
				Rank: rank,
			})
			h.emit(Event{
				Kind:     EventShowdown,
				Street:   Showdown,
				Player:   p.Name,
				Cards:    cloneCards(p.Hole),
				Category: rank.Category,
				Message:  fmt.Sprintf("%s shows %s (%s)", p.Name, FormatCards(p.Hole), rank),
			})
		}
	}

	s, payouts, evs := ResolvePayouts(s)
	h.state = s
	h.result.Payouts = payouts
	for _, ev := range evs {
		h.engine.log.Infof("%s", ev.Message)
	}
	h.emit(evs...)
	return nil
}
