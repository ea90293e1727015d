package poker

// EventKind classifies an Event.
type EventKind int

const (
	EventBlind EventKind = iota
	EventAction
	EventSubstitution
	EventClamp
	EventReveal
	EventError
	EventShowdown
	EventPayout
	EventRefund
)

func (k EventKind) String() string {
	switch k {
	case EventBlind:
		return "BLIND"
	case EventAction:
		return "ACTION"
	case EventSubstitution:
		return "SUBSTITUTION"
	case EventClamp:
		return "CLAMP"
	case EventReveal:
		return "REVEAL"
	case EventError:
		return "ERROR"
	case EventShowdown:
		return "SHOWDOWN"
	case EventPayout:
		return "PAYOUT"
	case EventRefund:
		return "REFUND"
	default:
		return "UNKNOWN"
	}
}

// Event is an immutable log record of one state transition. Events exist for
// observers only; the engine never reads them back.
type Event struct {
	Kind     EventKind
	Street   Street
	Player   string
	Action   Action
	Amount   int64
	Cards    []Card
	Winners  []string
	Category HandCategory
	Message  string
}

func (e Event) String() string {
	return e.Message
}

// Observer is notified after every applied transition with the resulting
// snapshot. Observers receive a private copy of the state and cannot affect
// the hand.
type Observer interface {
	Observe(state TableState, ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(state TableState, ev Event)

// Observe calls f(state, ev).
func (f ObserverFunc) Observe(state TableState, ev Event) {
	f(state, ev)
}

// TableEvent pairs an event with the snapshot it produced.
type TableEvent struct {
	Event Event
	State TableState
}

// EventPublisher is an Observer that forwards events onto a channel without
// ever blocking the engine.
type EventPublisher struct {
	eventChannel chan<- TableEvent
}

// NewEventPublisher returns a publisher writing to ch.
func NewEventPublisher(ch chan<- TableEvent) *EventPublisher {
	return &EventPublisher{eventChannel: ch}
}

// Observe publishes the event (non-blocking). Events are dropped when the
// channel is full.
func (p *EventPublisher) Observe(state TableState, ev Event) {
	if p == nil || p.eventChannel == nil {
		return
	}
	select {
	case p.eventChannel <- TableEvent{Event: ev, State: state}:
	default:
	}
}
