package poker

import (
	"math/rand"
)

// HoleCards is the number of private cards dealt to each player.
const HoleCards = 2

// FullDeck returns the 52 cards in canonical order: suits in Suits order,
// ranks ascending within each suit.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of deck. The input slice is
// left untouched.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// DealHoleCards gives each player two cards from the front of the deck in
// player order (player i receives deck[2i] and deck[2i+1]). It returns the
// updated players and the remaining deck; the inputs are not modified.
func DealHoleCards(deck []Card, players []Player) ([]Player, []Card, error) {
	need := HoleCards * len(players)
	if len(deck) < need {
		return players, deck, &InsufficientCardsError{Need: need, Have: len(deck)}
	}

	dealt := make([]Player, len(players))
	for i, p := range players {
		p.Hole = append([]Card(nil), deck[i*HoleCards:(i+1)*HoleCards]...)
		p.Folded = false
		p.AllIn = false
		p.StreetBet = 0
		p.HandBet = 0
		p.actedRound = notActed
		dealt[i] = p
	}
	return dealt, cloneCards(deck[need:]), nil
}

// Reveal burns one card and appends the next n cards to community. On
// failure both inputs are returned unchanged.
func Reveal(deck, community []Card, n int) ([]Card, []Card, error) {
	if len(deck) < n+1 {
		return deck, community, &InsufficientCardsError{Need: n + 1, Have: len(deck)}
	}
	board := make([]Card, 0, len(community)+n)
	board = append(board, community...)
	board = append(board, deck[1:n+1]...)
	return cloneCards(deck[n+1:]), board, nil
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
