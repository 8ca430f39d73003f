package game

import (
	"fmt"
	"strings"

	"github.com/lox/bluff/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Perspective string // human's name; their own lines read "You"
	RevealPlays bool   // show the cards a call revealed
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event, returning "" for events with no text
func (ef *EventFormatter) Format(event GameEvent) string {
	switch ev := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(ev)
	case TurnStartEvent:
		return ef.FormatTurnStart(ev.Snapshot)
	case CardsPlayedEvent:
		return ef.FormatCardsPlayed(ev)
	case ChallengeEvent:
		return ef.FormatChallenge(ev)
	case GameEndEvent:
		return ef.FormatGameEnd(ev)
	default:
		return ""
	}
}

// FormatGameStart formats the deal announcement
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	names := make([]string, len(event.Players))
	for i, p := range event.Players {
		names[i] = p.Name
	}
	return fmt.Sprintf("Game %s\n%d players: %s", event.GameID, len(event.Players), strings.Join(names, ", "))
}

// FormatTurnStart formats the per-turn table header
func (ef *EventFormatter) FormatTurnStart(snap Snapshot) string {
	return fmt.Sprintf("Card being played: %s | Cards in pile: %d\nTurn: %s", snap.Required, snap.PileSize, snap.Acting)
}

// FormatCardTotals formats every participant's hand size on one line
func (ef *EventFormatter) FormatCardTotals(players []PlayerSummary) string {
	parts := make([]string, len(players))
	for i, p := range players {
		parts[i] = fmt.Sprintf("%s: %d", p.Name, p.HandSize)
	}
	return strings.Join(parts, "  ")
}

// FormatHand formats the human's sorted hand
func (ef *EventFormatter) FormatHand(name string, cards []deck.Card) string {
	return fmt.Sprintf("%s's hand: %s", name, deck.FormatCards(cards))
}

// FormatCardsPlayed formats a play, which reveals only the count
func (ef *EventFormatter) FormatCardsPlayed(event CardsPlayedEvent) string {
	if ef.isPerspective(event.Claim.Player) {
		return "Card(s) played successfully"
	}
	noun := "cards"
	if event.Claim.Count == 1 {
		noun = "card"
	}
	return fmt.Sprintf("%s plays %d %s", event.Claim.Player, event.Claim.Count, noun)
}

// FormatChallenge formats a resolved call
func (ef *EventFormatter) FormatChallenge(event ChallengeEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s calls BS!\n", event.Challenger)
	if event.Truthful {
		fmt.Fprintf(&b, "%s was wrong! %s takes the pile.", event.Challenger, event.Taker)
	} else {
		fmt.Fprintf(&b, "%s was right! %s takes the pile.", event.Challenger, event.Taker)
	}
	if ef.opts.RevealPlays && len(event.Played) > 0 {
		fmt.Fprintf(&b, " (%s played %s)", event.Actor, deck.FormatCards(event.Played))
	}
	return b.String()
}

// FormatGameEnd formats the winner announcement
func (ef *EventFormatter) FormatGameEnd(event GameEndEvent) string {
	return fmt.Sprintf("%s won!", event.Winner)
}

func (ef *EventFormatter) isPerspective(name string) bool {
	return ef.opts.Perspective != "" && ef.opts.Perspective == name
}
