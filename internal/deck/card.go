package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRank is returned when a rank value or label is outside A..K.
var ErrInvalidRank = errors.New("invalid rank")

// Rank is a card value from Ace (1) to King (13). Suits are not modelled;
// two cards of the same rank are interchangeable.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// RanksPerDeck is the number of distinct ranks; CopiesPerRank is how many
// cards of each rank a standard deck holds.
const (
	RanksPerDeck  = 13
	CopiesPerRank = 4
	StandardSize  = RanksPerDeck * CopiesPerRank
)

var rankLabels = [...]string{
	Ace:   "A",
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

// Valid reports whether r is one of Ace..King.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the rank label (A, 2..10, J, Q, K)
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankLabels[r]
}

// Next returns the rank that follows r, wrapping King back to Ace.
func (r Rank) Next() Rank {
	if r >= King {
		return Ace
	}
	return r + 1
}

// RankForTurn maps a monotonically increasing turn counter onto A..K.
func RankForTurn(turn int) Rank {
	return Rank(turn%RanksPerDeck) + Ace
}

// ParseRank converts a label such as "A", "10" or "q" into a Rank.
func ParseRank(label string) (Rank, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	for r := Ace; r <= King; r++ {
		if rankLabels[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRank, label)
}

// Card is a single playing card. Equality and ordering are by rank only.
type Card struct {
	Rank Rank
}

// NewCard creates a card, rejecting ranks outside A..K.
func NewCard(r Rank) (Card, error) {
	if !r.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, int(r))
	}
	return Card{Rank: r}, nil
}

// MustCard is NewCard for constants and tests.
func MustCard(r Rank) Card {
	c, err := NewCard(r)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the rank label of the card
func (c Card) String() string {
	return c.Rank.String()
}

// Equal reports whether both cards share a rank.
func (c Card) Equal(other Card) bool {
	return c.Rank == other.Rank
}

// Compare orders cards by rank: -1 if c sorts before other, 0 if equal, +1 after.
func (c Card) Compare(other Card) int {
	switch {
	case c.Rank < other.Rank:
		return -1
	case c.Rank > other.Rank:
		return 1
	default:
		return 0
	}
}

// ParseCards parses rank labels into cards. A single bad label fails the
// whole batch so callers never act on a partial selection.
func ParseCards(labels []string) ([]Card, error) {
	cards := make([]Card, 0, len(labels))
	for _, label := range labels {
		r, err := ParseRank(label)
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{Rank: r})
	}
	return cards, nil
}

// MustParseCards parses a space separated list of labels, panicking on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(strings.Fields(s))
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card labels with spaces.
func FormatCards(cards []Card) string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.String()
	}
	return strings.Join(labels, " ")
}
