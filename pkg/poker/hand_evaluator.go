package poker

import (
	"sort"

	cpoker "github.com/chehsunliu/poker"
)

// HandCategory is the class of a poker hand, ordered weakest to strongest.
type HandCategory int

const (
	HighCard HandCategory = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the evaluated strength of a hand: a category plus the ranks
// used to break ties within it, most significant first.
type HandRank struct {
	Category HandCategory
	TieBreak []Rank
}

// Compare returns -1, 0 or 1 when h is weaker than, equal to, or stronger
// than o. Category dominates; tie-breaks are compared element-wise and a
// sequence that is a strict prefix of the other is the weaker one.
func (h HandRank) Compare(o HandRank) int {
	if h.Category != o.Category {
		if h.Category < o.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(h.TieBreak) && i < len(o.TieBreak); i++ {
		if h.TieBreak[i] != o.TieBreak[i] {
			if h.TieBreak[i] < o.TieBreak[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(h.TieBreak) < len(o.TieBreak):
		return -1
	case len(h.TieBreak) > len(o.TieBreak):
		return 1
	}
	return 0
}

func (h HandRank) String() string {
	s := h.Category.String()
	if len(h.TieBreak) == 0 {
		return s
	}
	s += " ["
	for i, r := range h.TieBreak {
		if i > 0 {
			s += " "
		}
		s += r.String()
	}
	return s + "]"
}

// BestHand evaluates a player's hole cards together with the board.
func BestHand(hole, community []Card) HandRank {
	all := make([]Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	return Evaluate(all)
}

// Evaluate ranks a set of cards (normally 5 to 7). The result does not depend
// on input order. Five to seven cards take their category from the
// Cactus-Kev evaluator; fewer are ranked by the same rules locally, so an
// incomplete board still yields a total order.
func Evaluate(cards []Card) HandRank {
	if len(cards) == 0 {
		return HandRank{Category: HighCard}
	}
	shape := shapeOf(cards)
	cat := shape.category()
	if len(cards) >= 5 && len(cards) <= 7 {
		cat = libCategory(cards)
	}
	return HandRank{Category: cat, TieBreak: shape.tieBreak(cat)}
}

// libCategory maps the chehsunliu/poker rank class (1 straight flush through
// 9 high card) onto HandCategory.
func libCategory(cards []Card) HandCategory {
	class := cpoker.RankClass(cpoker.Evaluate(toLibCards(cards)))
	return HandCategory(10 - class)
}

// handShape holds the rank structure tie-breaks are read from.
type handShape struct {
	ranks  []Rank // Descending
	groups []rankGroup
	flush  []Rank // Best five suited ranks, if any suit has five
	sfHigh Rank   // Straight flush high card, 0 when none
}

func shapeOf(cards []Card) handShape {
	var h handShape
	h.ranks = make([]Rank, len(cards))
	counts := make(map[Rank]int)
	bySuit := make(map[Suit][]Rank)
	for i, c := range cards {
		h.ranks[i] = c.rank
		counts[c.rank]++
		bySuit[c.suit] = append(bySuit[c.suit], c.rank)
	}
	sortDesc(h.ranks)
	h.groups = groupRanks(counts)

	for _, suit := range Suits {
		suited := bySuit[suit]
		if len(suited) < 5 {
			continue
		}
		sortDesc(suited)
		if high, ok := straightHigh(suited); ok && high > h.sfHigh {
			h.sfHigh = high
		}
		if h.flush == nil || compareRanks(suited[:5], h.flush) > 0 {
			h.flush = append([]Rank(nil), suited[:5]...)
		}
	}
	return h
}

// category classifies the shape by the standard category order.
func (h handShape) category() HandCategory {
	g := h.groups
	_, straight := straightHigh(h.ranks)
	switch {
	case h.sfHigh > 0:
		return StraightFlush
	case g[0].count >= 4:
		return FourOfAKind
	case g[0].count == 3 && len(g) > 1 && g[1].count >= 2:
		return FullHouse
	case h.flush != nil:
		return Flush
	case straight:
		return Straight
	case g[0].count == 3:
		return ThreeOfAKind
	case g[0].count == 2 && len(g) > 1 && g[1].count == 2:
		return TwoPair
	case g[0].count == 2:
		return Pair
	}
	return HighCard
}

// tieBreak returns the ranks that order hands within cat, most significant
// first.
func (h handShape) tieBreak(cat HandCategory) []Rank {
	g := h.groups
	switch cat {
	case StraightFlush:
		return []Rank{h.sfHigh}
	case FourOfAKind:
		return append([]Rank{g[0].rank}, kickers(h.ranks, 1, g[0].rank)...)
	case FullHouse:
		return []Rank{g[0].rank, g[1].rank}
	case Flush:
		return h.flush
	case Straight:
		high, _ := straightHigh(h.ranks)
		return []Rank{high}
	case ThreeOfAKind:
		return append([]Rank{g[0].rank}, kickers(h.ranks, 2, g[0].rank)...)
	case TwoPair:
		hi, lo := g[0].rank, g[1].rank
		return append([]Rank{hi, lo}, kickers(h.ranks, 1, hi, lo)...)
	case Pair:
		return append([]Rank{g[0].rank}, kickers(h.ranks, 3, g[0].rank)...)
	}
	top := h.ranks
	if len(top) > 5 {
		top = top[:5]
	}
	return append([]Rank(nil), top...)
}

// toLibCard converts a card to the chehsunliu/poker representation.
func toLibCard(c Card) cpoker.Card {
	ranks := "23456789TJQKA"
	var suit byte
	switch c.Suit() {
	case Hearts:
		suit = 'h'
	case Diamonds:
		suit = 'd'
	case Spades:
		suit = 's'
	default:
		suit = 'c'
	}
	return cpoker.NewCard(string([]byte{ranks[c.Rank()-Two], suit}))
}

func toLibCards(cards []Card) []cpoker.Card {
	out := make([]cpoker.Card, len(cards))
	for i, c := range cards {
		out[i] = toLibCard(c)
	}
	return out
}

type rankGroup struct {
	rank  Rank
	count int
}

// groupRanks orders ranks by multiplicity, then by rank, both descending.
func groupRanks(counts map[Rank]int) []rankGroup {
	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// straightHigh finds the highest five-long run among the distinct values of
// ranks (sorted descending). The wheel A-2-3-4-5 reports 5.
func straightHigh(ranks []Rank) (Rank, bool) {
	var present [Ace + 1]bool
	for _, r := range ranks {
		present[r] = true
	}
	for high := Ace; high >= Six; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}
		if run {
			return high, true
		}
	}
	if present[Ace] && present[Two] && present[Three] && present[Four] && present[Five] {
		return Five, true
	}
	return 0, false
}

// kickers returns up to n of the highest ranks not in exclude.
func kickers(sorted []Rank, n int, exclude ...Rank) []Rank {
	out := make([]Rank, 0, n)
	for _, r := range sorted {
		if len(out) == n {
			break
		}
		skip := false
		for _, e := range exclude {
			if r == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, r)
		}
	}
	return out
}

func compareRanks(a, b []Rank) int {
	return HandRank{Category: Flush, TieBreak: a}.Compare(HandRank{Category: Flush, TieBreak: b})
}

func sortDesc(ranks []Rank) {
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
}
