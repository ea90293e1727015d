package poker

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeck(t *testing.T) {
	deck := FullDeck()
	require.Len(t, deck, 52)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}

	// Canonical order: suits in Suits order, ranks ascending.
	assert.Equal(t, NewCard(Two, Hearts), deck[0])
	assert.Equal(t, NewCard(Ace, Hearts), deck[12])
	assert.Equal(t, NewCard(Two, Diamonds), deck[13])
	assert.Equal(t, NewCard(Ace, Clubs), deck[51])
}

func TestShuffle(t *testing.T) {
	deck := FullDeck()
	shuffled := Shuffle(rand.New(rand.NewSource(42)), deck)

	assert.Equal(t, FullDeck(), deck, "input must not be modified")
	assert.ElementsMatch(t, deck, shuffled)
	assert.NotEqual(t, deck, shuffled)

	again := Shuffle(rand.New(rand.NewSource(42)), deck)
	assert.Equal(t, shuffled, again, "same seed must give the same order")
}

func TestShuffleIsUniform(t *testing.T) {
	// Every card should land in position 0 roughly 1/52 of the time.
	rng := rand.New(rand.NewSource(7))
	deck := FullDeck()
	counts := make(map[Card]int)
	const trials = 52000
	for i := 0; i < trials; i++ {
		counts[Shuffle(rng, deck)[0]]++
	}
	require.Len(t, counts, 52)
	for c, n := range counts {
		assert.InDelta(t, trials/52, n, 250, "card %s", c)
	}
}

func TestDealHoleCards(t *testing.T) {
	deck := FullDeck()
	players := fixedStack(nil, 100, 100, 100)

	dealtPlayers, rest, err := DealHoleCards(deck, players)
	require.NoError(t, err)
	require.Len(t, rest, 46)

	for i, p := range dealtPlayers {
		assert.Equal(t, deck[2*i:2*i+2], p.Hole, "player %d", i)
	}
	assert.Equal(t, deck[6:], rest)
	assert.Nil(t, players[0].Hole, "input players must not be modified")
}

func TestDealHoleCardsInsufficient(t *testing.T) {
	deck := FullDeck()[:5]
	players := fixedStack(nil, 100, 100, 100)

	gotPlayers, gotDeck, err := DealHoleCards(deck, players)
	var insufficient *InsufficientCardsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 6, insufficient.Need)
	assert.Equal(t, 5, insufficient.Have)
	assert.Equal(t, deck, gotDeck)
	assert.Equal(t, players, gotPlayers)
}

func TestReveal(t *testing.T) {
	deck := FullDeck()

	rest, board, err := Reveal(deck, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, deck[1:4], board, "first card is burned")
	assert.Equal(t, deck[4:], rest)

	rest, board, err = Reveal(rest, board, 1)
	require.NoError(t, err)
	require.Len(t, board, 4)
	assert.Equal(t, deck[5], board[3])
	assert.Equal(t, deck[6:], rest)
}

func TestRevealInsufficient(t *testing.T) {
	deck := FullDeck()[:3]
	community := MustParseCards("As Kd Qh")

	gotDeck, gotBoard, err := Reveal(deck, community, 3)
	var insufficient *InsufficientCardsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 4, insufficient.Need)
	assert.Equal(t, deck, gotDeck)
	assert.Equal(t, community, gotBoard)
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
		err  bool
	}{
		{in: "As", want: NewCard(Ace, Spades)},
		{in: "10h", want: NewCard(Ten, Hearts)},
		{in: "Td", want: NewCard(Ten, Diamonds)},
		{in: "Q♠", want: NewCard(Queen, Spades)},
		{in: "2c", want: NewCard(Two, Clubs)},
		{in: "1s", err: true},
		{in: "Ax", err: true},
		{in: "A", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardJSON(t *testing.T) {
	c := NewCard(Jack, Diamonds)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back Card
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}

func TestFormatCards(t *testing.T) {
	assert.Equal(t, "None", FormatCards(nil))
	assert.Equal(t, "A♠ 10♥", FormatCards(MustParseCards("As Th")))
}
