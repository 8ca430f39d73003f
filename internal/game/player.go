package game

import (
	"fmt"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/randutil"
)

// Kind distinguishes the human at the keyboard from automated opponents
type Kind int

const (
	Human Kind = iota
	Automated
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Automated:
		return "automated"
	default:
		return "unknown"
	}
}

// Participant is a seat at the table: a unique name and one hand.
// Automated participants carry the Bot that makes their decisions; human
// decisions go through the engine's HumanIO.
type Participant struct {
	Name string
	Kind Kind
	Hand *deck.Cards

	bot *Bot
}

// NewHuman creates the human participant
func NewHuman(name string) *Participant {
	return &Participant{
		Name: name,
		Kind: Human,
		Hand: deck.NewCards(),
	}
}

// NewAutomated creates an automated participant whose bot draws from rng
func NewAutomated(name string, rng randutil.Source) *Participant {
	p := &Participant{
		Name: name,
		Kind: Automated,
		Hand: deck.NewCards(),
	}
	p.bot = NewBot(p, rng)
	return p
}

// IsHuman reports whether decisions for this seat come from HumanIO
func (p *Participant) IsHuman() bool {
	return p.Kind == Human
}

// Bot returns the decision maker of an automated participant, nil for humans
func (p *Participant) Bot() *Bot {
	return p.bot
}

// HandSize returns the number of cards held
func (p *Participant) HandSize() int {
	return p.Hand.Len()
}

// String returns the participant's name and hand, as shown to its owner
func (p *Participant) String() string {
	return fmt.Sprintf("%s's hand: %s", p.Name, deck.FormatCards(p.Hand.Sorted()))
}

// OpponentName returns the default name for the n-th automated seat (1-based)
func OpponentName(n int) string {
	return fmt.Sprintf("player%d", n)
}
