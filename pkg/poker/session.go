package poker

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/decred/slog"
)

// SessionConfig holds configuration for a run of consecutive hands.
type SessionConfig struct {
	Log      slog.Logger
	Blinds   Blinds
	MinRaise int64      // Defaults to the big blind
	Hands    int        // Stop after this many hands; 0 plays until one stack remains
	Rand     *rand.Rand // Shuffle source; nil seeds from the clock
	Dealer   int        // Seat holding the button for the first hand

	// OnHandComplete is called after every hand with its result. It runs on
	// the session goroutine before the next hand is dealt.
	OnHandComplete func(HandResult)
}

// Session plays hands over a fixed roster. Stacks carry over between hands,
// the button moves to the next seat with chips, and players with no chips sit
// out every later hand.
type Session struct {
	log     slog.Logger
	engine  *Engine
	cfg     SessionConfig
	rng     *rand.Rand
	players []Player
	dealer  int
	hands   int
}

// NewSession seats players in the given order.
func NewSession(engine *Engine, players []Player, cfg SessionConfig) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("poker: engine is required")
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("poker: need at least 2 players, got %d", len(players))
	}
	if maxSeats := (52 - 8) / HoleCards; len(players) > maxSeats {
		return nil, fmt.Errorf("poker: at most %d players fit one deck, got %d", maxSeats, len(players))
	}
	if cfg.Blinds.Small <= 0 || cfg.Blinds.Big < cfg.Blinds.Small {
		return nil, fmt.Errorf("poker: invalid blinds %d/%d", cfg.Blinds.Small, cfg.Blinds.Big)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("poker: player name is required")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("poker: duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Chips < 0 {
			return nil, fmt.Errorf("poker: player %s has negative chips", p.Name)
		}
	}
	if cfg.MinRaise <= 0 {
		cfg.MinRaise = cfg.Blinds.Big
	}
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		log:     log,
		engine:  engine,
		cfg:     cfg,
		rng:     rng,
		players: append([]Player(nil), players...),
	}
	s.dealer = s.nextFunded(cfg.Dealer - 1)
	return s, nil
}

// Players returns the roster with current stacks.
func (s *Session) Players() []Player {
	return append([]Player(nil), s.players...)
}

// HandsPlayed returns the number of completed hands.
func (s *Session) HandsPlayed() int {
	return s.hands
}

// Dealer returns the roster seat holding the button for the next hand.
func (s *Session) Dealer() int {
	return s.dealer
}

// Funded counts roster players with chips.
func (s *Session) Funded() int {
	n := 0
	for _, p := range s.players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}

// shouldEnd reports whether no further hand can be dealt.
func (s *Session) shouldEnd() bool {
	if s.cfg.Hands > 0 && s.hands >= s.cfg.Hands {
		return true
	}
	return s.Funded() < 2
}

// Run plays hands until the hand limit is reached, a single player holds
// every chip, or ctx ends. Cancellation takes effect between hands; a hand in
// progress folds any player whose decision is pending and then finishes.
func (s *Session) Run(ctx context.Context) error {
	for !s.shouldEnd() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.PlayHand(ctx); err != nil {
			return err
		}
	}
	s.log.Infof("Session finished after %d hands", s.hands)
	return nil
}

// PlayHand deals and plays one hand among the funded players.
func (s *Session) PlayHand(ctx context.Context) (HandResult, error) {
	if s.Funded() < 2 {
		return HandResult{}, ErrSessionOver
	}

	// seats maps hand positions back to roster seats.
	seats := make([]int, 0, len(s.players))
	seated := make([]Player, 0, len(s.players))
	dealerPos := 0
	for i, p := range s.players {
		if p.Chips <= 0 {
			continue
		}
		if i == s.dealer {
			dealerPos = len(seats)
		}
		seats = append(seats, i)
		seated = append(seated, p)
	}

	deck := Shuffle(s.rng, FullDeck())
	state, err := NewTableState(deck, seated, dealerPos, s.cfg.MinRaise)
	if err != nil {
		return HandResult{}, fmt.Errorf("new hand: %w", err)
	}

	s.hands++
	s.log.Infof("Hand %d: %d players, dealer %s", s.hands, len(seated), s.players[s.dealer].Name)

	final, result := s.engine.PlayHand(ctx, state, s.cfg.Blinds)
	result.HandNumber = s.hands

	for pos, p := range final.Players {
		s.players[seats[pos]] = p
		if p.Chips == 0 {
			s.log.Infof("%s is eliminated", p.Name)
		}
	}
	s.dealer = s.nextFunded(s.dealer)

	if s.cfg.OnHandComplete != nil {
		s.cfg.OnHandComplete(result)
	}
	return result, nil
}

// nextFunded returns the first seat after from whose player has chips. When
// nobody does, it returns the seat after from.
func (s *Session) nextFunded(from int) int {
	n := len(s.players)
	for k := 1; k <= n; k++ {
		seat := ((from+k)%n + n) % n
		if s.players[seat].Chips > 0 {
			return seat
		}
	}
	return ((from+1)%n + n) % n
}
