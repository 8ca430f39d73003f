package deck

import (
	"slices"

	"github.com/lox/bluff/internal/randutil"
)

// Cards is an ordered multiset of cards used for the draw deck, every hand
// and the shared pile. Index 0 is the top.
type Cards struct {
	cards []Card
}

// NewCards creates a collection holding the given cards in order
func NewCards(cards ...Card) *Cards {
	return &Cards{cards: slices.Clone(cards)}
}

// NewStandardDeck creates an unshuffled 52-card deck, four of each rank
func NewStandardDeck() *Cards {
	d := &Cards{cards: make([]Card, 0, StandardSize)}
	for i := 0; i < CopiesPerRank; i++ {
		for r := Ace; r <= King; r++ {
			d.cards = append(d.cards, Card{Rank: r})
		}
	}
	return d
}

// Len returns the number of cards in the collection
func (c *Cards) Len() int {
	return len(c.cards)
}

// IsEmpty returns true if the collection has no cards left
func (c *Cards) IsEmpty() bool {
	return len(c.cards) == 0
}

// Shuffle randomizes the order of cards in place
func (c *Cards) Shuffle(rng randutil.Source) {
	rng.Shuffle(len(c.cards), func(i, j int) {
		c.cards[i], c.cards[j] = c.cards[j], c.cards[i]
	})
}

// DrawTop removes and returns the top card. ok is false when empty.
func (c *Cards) DrawTop() (card Card, ok bool) {
	if len(c.cards) == 0 {
		return Card{}, false
	}
	card = c.cards[0]
	c.cards = c.cards[1:]
	return card, true
}

// RemoveMatching removes one card equal to want, if there is one.
func (c *Cards) RemoveMatching(want Card) (Card, bool) {
	i := slices.IndexFunc(c.cards, want.Equal)
	if i < 0 {
		return Card{}, false
	}
	card := c.cards[i]
	c.cards = slices.Delete(c.cards, i, i+1)
	return card, true
}

// DrawRandom removes and returns a card chosen uniformly at random.
func (c *Cards) DrawRandom(rng randutil.Source) (Card, bool) {
	if len(c.cards) == 0 {
		return Card{}, false
	}
	i := rng.IntN(len(c.cards))
	card := c.cards[i]
	c.cards = slices.Delete(c.cards, i, i+1)
	return card, true
}

// InsertFront puts a card on top.
func (c *Cards) InsertFront(card Card) {
	c.cards = slices.Insert(c.cards, 0, card)
}

// InsertMany appends cards at the bottom, keeping their order.
func (c *Cards) InsertMany(cards ...Card) {
	c.cards = append(c.cards, cards...)
}

// TransferAllInto moves every card into dst and leaves c empty.
func (c *Cards) TransferAllInto(dst *Cards) {
	if dst == c {
		return
	}
	dst.cards = append(dst.cards, c.cards...)
	c.cards = nil
}

// CountOf returns how many cards share want's rank
func (c *Cards) CountOf(want Card) int {
	n := 0
	for _, card := range c.cards {
		if card.Equal(want) {
			n++
		}
	}
	return n
}

// Contains reports whether at least one card of want's rank is present
func (c *Cards) Contains(want Card) bool {
	return slices.ContainsFunc(c.cards, want.Equal)
}

// TakeAll removes every requested card, honouring duplicates, or removes
// nothing and returns false. The collection is never left half-modified.
func (c *Cards) TakeAll(want []Card) bool {
	need := make(map[Rank]int, len(want))
	for _, card := range want {
		need[card.Rank]++
	}
	for r, n := range need {
		if c.CountOf(Card{Rank: r}) < n {
			return false
		}
	}
	for _, card := range want {
		c.RemoveMatching(card)
	}
	return true
}

// Slice returns a copy of the cards in collection order
func (c *Cards) Slice() []Card {
	return slices.Clone(c.cards)
}

// Sorted returns a copy of the cards ordered A..K
func (c *Cards) Sorted() []Card {
	out := slices.Clone(c.cards)
	slices.SortFunc(out, Card.Compare)
	return out
}

// String returns the cards as space separated labels in collection order
func (c *Cards) String() string {
	return FormatCards(c.cards)
}
