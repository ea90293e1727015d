package poker

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	cpoker "github.com/chehsunliu/poker"
)

const (
	// equityIterations is the number of Monte Carlo runouts per postflop
	// decision.
	equityIterations = 100

	// strongPreflop is the hole-card score above which the bot considers
	// raising before the flop.
	strongPreflop = 50
)

// RuleBot is an automated policy: a hole-card score before the flop and a
// Monte Carlo equity estimate against one random hand after it. Aggression in
// [0, 1] raises its bluff and value-bet frequency.
type RuleBot struct {
	aggression float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRuleBot creates a bot drawing randomness from rng.
func NewRuleBot(aggression float64, rng *rand.Rand) *RuleBot {
	if aggression < 0 {
		aggression = 0
	}
	if aggression > 1 {
		aggression = 1
	}
	return &RuleBot{aggression: aggression, rng: rng}
}

// Decide implements Decider.
func (b *RuleBot) Decide(ctx context.Context, p Player, s TableState, legal []Action) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrDecisionCanceled, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	toCall := p.ToCall(s.CurrentBet)
	committed := 1.0
	if p.Chips > 0 {
		committed = float64(toCall) / float64(p.Chips)
	}
	canRaise := committed < 0.30 && hasAction(legal, Raise)

	if len(s.Community) == 0 {
		return b.preflop(p, s, legal, canRaise), nil
	}

	strength := b.equity(p.Hole, s.Community, equityIterations) + b.uniform(-0.01, 0.01)

	if strength > 0.90 {
		if canRaise {
			return b.raise(p, s, int64(float64(s.Pot)*b.uniform(0.4, 0.6))), nil
		}
		if hasAction(legal, Call) {
			return Decision{Action: Call}, nil
		}
	}

	bluff := s.CurrentBet == 0 && b.rng.Float64() < b.aggression*0.05
	if (strength > 0.80-b.aggression*0.05 || bluff) && canRaise {
		return b.raise(p, s, int64(float64(s.Pot)*b.uniform(0.3, 0.45))), nil
	}

	required := 0.0
	if s.Pot+toCall > 0 {
		required = float64(toCall) / float64(s.Pot+toCall)
	}
	if float64(toCall) > float64(p.Chips)*0.2 {
		required += 0.15
	}
	if strength > required && hasAction(legal, Call) {
		return Decision{Action: Call}, nil
	}
	if hasAction(legal, Check) {
		return Decision{Action: Check}, nil
	}
	return Decision{Action: Fold}, nil
}

func (b *RuleBot) preflop(p Player, s TableState, legal []Action, canRaise bool) Decision {
	score := PreflopScore(p.Hole)
	if score > strongPreflop && canRaise && b.rng.Float64() < 0.60 {
		target := s.CurrentBet + int64(float64(s.MinRaise)*b.uniform(1, 2))
		return b.raise(p, s, target)
	}
	if hasAction(legal, Check) {
		return Decision{Action: Check}
	}

	toCall := p.ToCall(s.CurrentBet)
	unraised := s.CurrentBet <= s.BaseRaise
	cheap := toCall <= 2*s.BaseRaise
	switch {
	case unraised, score > 30:
		return Decision{Action: Call}
	case cheap && b.rng.Float64() < 0.9:
		return Decision{Action: Call}
	case b.rng.Float64() < b.aggression*0.05:
		return Decision{Action: Call}
	}
	return Decision{Action: Fold}
}

// raise clamps target into the legal raise range and shoves instead when the
// raise would commit nearly the whole stack.
func (b *RuleBot) raise(p Player, s TableState, target int64) Decision {
	lo, hi := RaiseBounds(p, s)
	if target < lo {
		target = lo
	}
	if target > hi {
		target = hi
	}
	if float64(target) > float64(p.Chips)*0.9+float64(p.StreetBet) {
		return Decision{Action: AllIn}
	}
	return Decision{Action: Raise, Amount: target}
}

func (b *RuleBot) uniform(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

// equity estimates the share of pots hole wins against one random hand by
// dealing out the rest of the board iterations times. Ties count half.
func (b *RuleBot) equity(hole, community []Card, iterations int) float64 {
	if iterations <= 0 || len(hole) != HoleCards {
		return 0
	}
	known := make(map[Card]bool, len(hole)+len(community))
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range community {
		known[c] = true
	}
	unknown := make([]Card, 0, 52)
	for _, c := range FullDeck() {
		if !known[c] {
			unknown = append(unknown, c)
		}
	}

	need := 5 - len(community)
	if need < 0 {
		need = 0
	}
	if len(unknown) < need+HoleCards {
		return 0
	}

	mine := toLibCards(hole)
	board := toLibCards(community)
	var score float64
	for i := 0; i < iterations; i++ {
		b.rng.Shuffle(len(unknown), func(x, y int) {
			unknown[x], unknown[y] = unknown[y], unknown[x]
		})
		runout := append(append([]cpoker.Card(nil), board...), toLibCards(unknown[:need])...)
		opp := toLibCards(unknown[need : need+HoleCards])

		my := cpoker.Evaluate(append(append([]cpoker.Card(nil), mine...), runout...))
		their := cpoker.Evaluate(append(opp, runout...))
		// Lower scores are stronger.
		switch {
		case my < their:
			score++
		case my == their:
			score += 0.5
		}
	}
	return score / float64(iterations)
}

// PreflopScore rates two hole cards: pairs score 50 plus twice their rank,
// other hands the high rank plus half the low, with bonuses for suited and
// connected cards.
func PreflopScore(hole []Card) float64 {
	if len(hole) != HoleCards {
		return 0
	}
	high, low := hole[0].Rank(), hole[1].Rank()
	if low > high {
		high, low = low, high
	}
	var score float64
	if high == low {
		score = 50 + float64(high)*2
	} else {
		score = float64(high) + float64(low)*0.5
	}
	if hole[0].Suit() == hole[1].Suit() {
		score += 10
	}
	switch high - low {
	case 1:
		score += 8
	case 2:
		score += 4
	}
	return score
}
