package poker

import (
	"fmt"
	"sort"
	"strings"
)

// Pot is one eligibility tier of the hand's wagers.
type Pot struct {
	Level        int64 // Contribution level capping this tier
	Amount       int64 // Chips in this tier
	Eligible     []int // Non-folded seats that contributed at least Level
	Contributors []int // Every seat that put chips into this tier
	shares       map[int]int64
}

// Payout records how one pot was settled.
type Payout struct {
	Pot     Pot
	Winners []int   // Seats paid from this pot, in odd-chip order
	Shares  []int64 // Chips paid to each winner
	Hand    HandRank
	Refund  bool // No eligible player remained; contributors were repaid
}

// BuildPots partitions the hand's contributions into tiers. Levels are the
// distinct positive HandBet values; the tier between the previous level P and
// level L takes min(HandBet, L) - P from every player who contributed more
// than P.
func BuildPots(players []Player) []Pot {
	seen := map[int64]bool{}
	for _, p := range players {
		if p.HandBet > 0 {
			seen[p.HandBet] = true
		}
	}
	levels := make([]int64, 0, len(seen))
	for lvl := range seen {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	pots := make([]Pot, 0, len(levels))
	prev := int64(0)
	for _, lvl := range levels {
		pot := Pot{Level: lvl, shares: make(map[int]int64)}
		for i, p := range players {
			if p.HandBet <= prev {
				continue
			}
			c := p.HandBet
			if c > lvl {
				c = lvl
			}
			c -= prev
			pot.Amount += c
			pot.shares[i] = c
			pot.Contributors = append(pot.Contributors, i)
			if !p.Folded && p.HandBet >= lvl {
				pot.Eligible = append(pot.Eligible, i)
			}
		}
		pots = append(pots, pot)
		prev = lvl
	}
	return pots
}

// ResolvePayouts settles the hand. Each tier goes to the best hand(s) among
// its eligible players; ties split evenly and odd chips go one at a time to
// winners in seat order starting left of the dealer. A tier with no eligible
// player is refunded to its contributors. The returned state has chips paid
// out and every per-hand field cleared.
func ResolvePayouts(s TableState) (TableState, []Payout, []Event) {
	n := len(s.Players)
	pots := BuildPots(s.Players)

	// Rank every non-folded player once, in odd-chip order.
	order := make([]int, 0, n)
	for k := 1; k <= n; k++ {
		order = append(order, (s.Dealer+k)%n)
	}
	ranks := make(map[int]HandRank, n)
	for _, seat := range order {
		if !s.Players[seat].Folded {
			ranks[seat] = BestHand(s.Players[seat].Hole, s.Community)
		}
	}

	won := make([]int64, n)
	payouts := make([]Payout, 0, len(pots))
	events := make([]Event, 0, len(pots))
	for _, pot := range pots {
		payout := settlePot(pot, order, ranks)
		for i, seat := range payout.Winners {
			won[seat] += payout.Shares[i]
		}
		payouts = append(payouts, payout)
		events = append(events, payoutEvent(s, payout))
	}

	players := make([]Player, n)
	for i, p := range s.Players {
		p.Chips += won[i]
		players[i] = p.clearHand()
	}
	s.Players = players
	s.Pot = 0
	s.Community = nil
	s.CurrentBet = 0
	s.MinRaise = s.BaseRaise
	s.raiseRound = 0
	return s, payouts, events
}

func settlePot(pot Pot, order []int, ranks map[int]HandRank) Payout {
	payout := Payout{Pot: pot}

	eligible := make(map[int]bool, len(pot.Eligible))
	for _, seat := range pot.Eligible {
		eligible[seat] = true
	}

	if len(eligible) == 0 {
		payout.Refund = true
		for _, seat := range order {
			if c, ok := pot.shares[seat]; ok {
				payout.Winners = append(payout.Winners, seat)
				payout.Shares = append(payout.Shares, c)
			}
		}
		return payout
	}

	var best HandRank
	for _, seat := range order {
		if !eligible[seat] {
			continue
		}
		r := ranks[seat]
		switch {
		case payout.Winners == nil || r.Compare(best) > 0:
			best = r
			payout.Winners = []int{seat}
		case r.Compare(best) == 0:
			payout.Winners = append(payout.Winners, seat)
		}
	}
	payout.Hand = best

	count := int64(len(payout.Winners))
	share := pot.Amount / count
	extra := pot.Amount % count
	payout.Shares = make([]int64, len(payout.Winners))
	for i := range payout.Winners {
		payout.Shares[i] = share
		if extra > 0 {
			payout.Shares[i]++
			extra--
		}
	}
	return payout
}

func payoutEvent(s TableState, p Payout) Event {
	names := make([]string, len(p.Winners))
	for i, seat := range p.Winners {
		names[i] = s.Players[seat].Name
	}
	ev := Event{
		Kind:     EventPayout,
		Street:   Showdown,
		Amount:   p.Pot.Amount,
		Winners:  names,
		Category: p.Hand.Category,
	}
	switch {
	case p.Refund:
		ev.Kind = EventRefund
		ev.Message = fmt.Sprintf("Pot %d refunded to %s", p.Pot.Amount, strings.Join(names, ", "))
	case len(p.Pot.Eligible) == 1:
		ev.Message = fmt.Sprintf("Pot %d to %s (uncontested)", p.Pot.Amount, names[0])
	default:
		ev.Message = fmt.Sprintf("Pot %d to %s (%s)", p.Pot.Amount, strings.Join(names, ", "), p.Hand.Category)
	}
	return ev
}
