package poker

import (
	"math/rand"
	"testing"

	cpoker "github.com/chehsunliu/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category HandCategory
		tieBreak []Rank
	}{
		{
			name:     "royal flush with two unrelated cards",
			cards:    "As Ks Qs Js Ts 2d 7c",
			category: StraightFlush,
			tieBreak: []Rank{Ace},
		},
		{
			name:     "wheel straight",
			cards:    "Ah 2d 3c 4s 5h 9d Jc",
			category: Straight,
			tieBreak: []Rank{Five},
		},
		{
			name:     "steel wheel",
			cards:    "Ad 2d 3d 4d 5d Kc Kh",
			category: StraightFlush,
			tieBreak: []Rank{Five},
		},
		{
			name:     "straight flush beats a higher plain flush",
			cards:    "9h 8h 7h 6h 5h Ah Kc",
			category: StraightFlush,
			tieBreak: []Rank{Nine},
		},
		{
			name:     "quads take the best kicker",
			cards:    "8h 8s 8d 8c Ah Kc Qs",
			category: FourOfAKind,
			tieBreak: []Rank{Eight, Ace},
		},
		{
			name:     "quads with a paired kicker",
			cards:    "3h 3s 3d 3c 9h 9c 2s",
			category: FourOfAKind,
			tieBreak: []Rank{Three, Nine},
		},
		{
			name:     "two trips make the highest full house",
			cards:    "Kh Ks Kd 7c 7h 7s 2d",
			category: FullHouse,
			tieBreak: []Rank{King, Seven},
		},
		{
			name:     "full house picks the highest pair",
			cards:    "5h 5s 5d Qc Qh 9s 9d",
			category: FullHouse,
			tieBreak: []Rank{Five, Queen},
		},
		{
			name:     "flush keeps the top five of the suit",
			cards:    "Ac Jc 9c 6c 4c 2c Kd",
			category: Flush,
			tieBreak: []Rank{Ace, Jack, Nine, Six, Four},
		},
		{
			name:     "broadway straight",
			cards:    "Ah Kd Qc Js Th 2d 2c",
			category: Straight,
			tieBreak: []Rank{Ace},
		},
		{
			name:     "six card run uses the top",
			cards:    "4h 5d 6c 7s 8h 9d Kc",
			category: Straight,
			tieBreak: []Rank{Nine},
		},
		{
			name:     "three of a kind",
			cards:    "7h 7s 7d Ac Jh 4s 2d",
			category: ThreeOfAKind,
			tieBreak: []Rank{Seven, Ace, Jack},
		},
		{
			name:     "three pairs keep the best kicker",
			cards:    "Ah As 9d 9c 4h 4s Kd",
			category: TwoPair,
			tieBreak: []Rank{Ace, Nine, King},
		},
		{
			name:     "third pair can be the kicker",
			cards:    "Qh Qs Jd Jc 8h 8s 2d",
			category: TwoPair,
			tieBreak: []Rank{Queen, Jack, Eight},
		},
		{
			name:     "one pair",
			cards:    "Th Ts Ad 8c 6h 4s 2d",
			category: Pair,
			tieBreak: []Rank{Ten, Ace, Eight, Six},
		},
		{
			name:     "high card",
			cards:    "Ah Js 9d 7c 5h 3s 2d",
			category: HighCard,
			tieBreak: []Rank{Ace, Jack, Nine, Seven, Five},
		},
		{
			name:     "five cards",
			cards:    "Kh Kd 4c 4s Kc",
			category: FullHouse,
			tieBreak: []Rank{King, Four},
		},
		{
			name:     "hole cards only",
			cards:    "Qh Qd",
			category: Pair,
			tieBreak: []Rank{Queen},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(MustParseCards(tt.cards))
			assert.Equal(t, tt.category, got.Category, "got %s", got)
			assert.Equal(t, tt.tieBreak, got.TieBreak, "got %s", got)
		})
	}
}

func TestEvaluateOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		cards := Shuffle(rng, FullDeck())[:7]
		want := Evaluate(cards)
		for j := 0; j < 5; j++ {
			perm := Shuffle(rng, cards)
			require.Equal(t, 0, want.Compare(Evaluate(perm)), "cards %s", FormatCards(perm))
			require.Equal(t, want, Evaluate(perm))
		}
	}
}

func TestHandRankCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b HandRank
		want int
	}{
		{
			name: "category dominates tie-break",
			a:    HandRank{Category: Pair, TieBreak: []Rank{Two, Five, Four, Three}},
			b:    HandRank{Category: HighCard, TieBreak: []Rank{Ace, King, Queen, Jack, Nine}},
			want: 1,
		},
		{
			name: "higher kicker wins",
			a:    HandRank{Category: Pair, TieBreak: []Rank{Ten, Ace, Eight, Six}},
			b:    HandRank{Category: Pair, TieBreak: []Rank{Ten, Ace, Eight, Five}},
			want: 1,
		},
		{
			name: "identical hands tie",
			a:    HandRank{Category: FullHouse, TieBreak: []Rank{King, Seven}},
			b:    HandRank{Category: FullHouse, TieBreak: []Rank{King, Seven}},
			want: 0,
		},
		{
			name: "wheel loses to six high straight",
			a:    HandRank{Category: Straight, TieBreak: []Rank{Five}},
			b:    HandRank{Category: Straight, TieBreak: []Rank{Six}},
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ranks := make([]HandRank, 300)
	for i := range ranks {
		ranks[i] = Evaluate(Shuffle(rng, FullDeck())[:7])
	}
	for _, a := range ranks[:60] {
		for _, b := range ranks[:60] {
			require.Equal(t, a.Compare(b), -b.Compare(a), "antisymmetry %s vs %s", a, b)
			for _, c := range ranks[:60] {
				if a.Compare(b) >= 0 && b.Compare(c) >= 0 {
					require.GreaterOrEqual(t, a.Compare(c), 0, "transitivity %s %s %s", a, b, c)
				}
			}
		}
	}
}

// TestEvaluateMatchesReferenceLibrary checks the evaluator's ordering and
// categories against chehsunliu/poker on random seven card hands.
func TestEvaluateMatchesReferenceLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < 2000; i++ {
		deck := Shuffle(rng, FullDeck())
		board := deck[4:9]
		a := append(append([]Card(nil), deck[0:2]...), board...)
		b := append(append([]Card(nil), deck[2:4]...), board...)

		ourA, ourB := Evaluate(a), Evaluate(b)
		libA, libB := cpoker.Evaluate(toLibCards(a)), cpoker.Evaluate(toLibCards(b))

		// Library classes run 1 (straight flush) to 9 (high card).
		require.Equal(t, HandCategory(10-cpoker.RankClass(libA)), ourA.Category, "cards %s", FormatCards(a))
		// The local classifier, used below five cards, agrees with the library.
		require.Equal(t, ourA.Category, shapeOf(a).category(), "cards %s", FormatCards(a))
		require.Equal(t, ourB.Category, shapeOf(b).category(), "cards %s", FormatCards(b))

		var want int
		switch {
		case libA < libB:
			want = 1
		case libA > libB:
			want = -1
		}
		require.Equal(t, want, ourA.Compare(ourB), "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func TestBestHand(t *testing.T) {
	hole := MustParseCards("Ah Kh")
	board := MustParseCards("Qh Jh Th 2c 3d")
	got := BestHand(hole, board)
	assert.Equal(t, StraightFlush, got.Category)
	assert.Equal(t, "Straight Flush [A]", got.String())
	assert.Len(t, hole, 2, "inputs must not grow")
}

func TestEvaluatePartialBoard(t *testing.T) {
	tests := []struct {
		cards string
		want  HandRank
	}{
		{cards: "As", want: HandRank{Category: HighCard, TieBreak: []Rank{Ace}}},
		{cards: "Kd Ks", want: HandRank{Category: Pair, TieBreak: []Rank{King}}},
		{cards: "9c 9d 4h", want: HandRank{Category: Pair, TieBreak: []Rank{Nine, Four}}},
		{cards: "7c 7d 7h 2s", want: HandRank{Category: ThreeOfAKind, TieBreak: []Rank{Seven, Two}}},
		{cards: "Jc Jd 3h 3s", want: HandRank{Category: TwoPair, TieBreak: []Rank{Jack, Three}}},
		{cards: "Qc Qd Qh Qs", want: HandRank{Category: FourOfAKind, TieBreak: []Rank{Queen}}},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(MustParseCards(tt.cards)))
		})
	}
}
