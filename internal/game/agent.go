package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/bluff/internal/deck"
)

// Input errors reported back to the human before re-prompting. None of
// them change game state.
var (
	ErrSelectionSize   = errors.New("play between 1 and 4 cards")
	ErrNotInHand       = errors.New("you don't have all of those cards")
	ErrInvalidResponse = errors.New("answer y or n")
)

// MaxPlayCards is the most cards a single play may contain
const MaxPlayCards = deck.CopiesPerRank

// Claim is what the acting participant announces: Count cards of Required.
type Claim struct {
	Player   string
	Required deck.Card
	Count    int
}

// HumanIO is the presentation layer seen from the engine. Every call blocks
// until the human answers. A returned error ends the game.
type HumanIO interface {
	// RequestPlay asks for the rank labels of the cards to play.
	RequestPlay(snap Snapshot) ([]string, error)
	// RequestChallenge asks whether to call the claim, as a y/n answer.
	RequestChallenge(snap Snapshot, claim Claim) (string, error)
	// Reject reports an invalid answer; the engine asks again afterwards.
	Reject(err error)
}

// ParseChallengeResponse accepts y, yes, n or no in any case
func ParseChallengeResponse(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidResponse, s)
	}
}

// parseSelection turns the human's tokens into cards without touching the
// hand. Rank errors win over size errors so a typo is reported as such.
func parseSelection(tokens []string) ([]deck.Card, error) {
	cards, err := deck.ParseCards(tokens)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 || len(cards) > MaxPlayCards {
		return nil, fmt.Errorf("%w, got %d", ErrSelectionSize, len(cards))
	}
	return cards, nil
}
