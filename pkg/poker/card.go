package poker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists the four suits in canonical deck order.
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank is a card rank from 2 through 14 (ace high).
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card represents a playing card. It is an immutable value compared by
// (rank, suit).
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Rank returns the card's rank
func (c Card) Rank() Rank {
	return c.rank
}

// Suit returns the card's suit
func (c Card) Suit() Suit {
	return c.suit
}

// String returns a string representation of the card
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// CardJSON represents a card for JSON serialization
type CardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler interface for Card
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(CardJSON{
		Suit:  c.suit.String(),
		Value: c.rank.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface for Card
func (c *Card) UnmarshalJSON(data []byte) error {
	var cardJSON CardJSON
	if err := json.Unmarshal(data, &cardJSON); err != nil {
		return err
	}
	suit, err := parseSuit(cardJSON.Suit)
	if err != nil {
		return err
	}
	rank, err := parseRank(cardJSON.Value)
	if err != nil {
		return err
	}
	c.rank, c.suit = rank, suit
	return nil
}

// ParseCard parses short notation such as "As", "Td", "10h" or "Q♠".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}
	runes := []rune(s)
	suit, err := parseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	rank, err := parseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	return NewCard(rank, suit), nil
}

// MustParseCards parses a space separated card list and panics on error.
// Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

func parseSuit(s string) (Suit, error) {
	switch s {
	case "♠", "s", "S", "spades", "Spades":
		return Spades, nil
	case "♥", "h", "H", "hearts", "Hearts":
		return Hearts, nil
	case "♦", "d", "D", "diamonds", "Diamonds":
		return Diamonds, nil
	case "♣", "c", "C", "clubs", "Clubs":
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit: %s", s)
	}
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "A", "a", "ace", "Ace", "14":
		return Ace, nil
	case "K", "k", "king", "King", "13":
		return King, nil
	case "Q", "q", "queen", "Queen", "12":
		return Queen, nil
	case "J", "j", "jack", "Jack", "11":
		return Jack, nil
	case "10", "T", "t", "ten", "Ten":
		return Ten, nil
	case "9", "nine", "Nine":
		return Nine, nil
	case "8", "eight", "Eight":
		return Eight, nil
	case "7", "seven", "Seven":
		return Seven, nil
	case "6", "six", "Six":
		return Six, nil
	case "5", "five", "Five":
		return Five, nil
	case "4", "four", "Four":
		return Four, nil
	case "3", "three", "Three":
		return Three, nil
	case "2", "two", "Two":
		return Two, nil
	default:
		return 0, fmt.Errorf("invalid value: %s", s)
	}
}

// FormatCards joins cards with a single space, or "None" for an empty list.
func FormatCards(cards []Card) string {
	if len(cards) == 0 {
		return "None"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
