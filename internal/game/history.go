package game

import (
	"fmt"
	"strings"

	"github.com/lox/bluff/internal/deck"
)

// TurnRecord is the permanent record of one turn
type TurnRecord struct {
	Turn       int
	Actor      string
	Required   deck.Card
	Count      int
	Truthful   bool
	Challenger string // empty when nobody called
	Taker      string
	PileTaken  int
}

// Challenged reports whether someone called this turn
func (r TurnRecord) Challenged() bool {
	return r.Challenger != ""
}

// CallerRight reports whether a call caught a bluff
func (r TurnRecord) CallerRight() bool {
	return r.Challenged() && !r.Truthful
}

// History collects the turn records of a game
type History struct {
	GameID  string
	Winner  string
	Records []TurnRecord
}

// Add records a finished turn
func (h *History) Add(result *TurnResult) {
	rec := TurnRecord{
		Turn:      result.Turn,
		Actor:     result.Actor.Name,
		Required:  result.Claim.Required,
		Count:     result.Claim.Count,
		Truthful:  result.Truthful,
		PileTaken: result.PileTaken,
	}
	if result.Challenger != nil {
		rec.Challenger = result.Challenger.Name
		rec.Taker = result.Taker.Name
	}
	h.Records = append(h.Records, rec)
}

// Turns returns the number of recorded turns
func (h *History) Turns() int {
	return len(h.Records)
}

// Bluffs counts plays that did not match the required rank
func (h *History) Bluffs() int {
	n := 0
	for _, r := range h.Records {
		if !r.Truthful {
			n++
		}
	}
	return n
}

// Challenges counts turns with a call, and how many of those caught a bluff
func (h *History) Challenges() (total, correct int) {
	for _, r := range h.Records {
		if r.Challenged() {
			total++
			if r.CallerRight() {
				correct++
			}
		}
	}
	return total, correct
}

// Summary renders a short end-of-game report
func (h *History) Summary() string {
	var b strings.Builder
	calls, correct := h.Challenges()

	fmt.Fprintf(&b, "*** SUMMARY ***\n")
	fmt.Fprintf(&b, "Game %s: %d turns, %d bluffs\n", h.GameID, h.Turns(), h.Bluffs())
	fmt.Fprintf(&b, "BS called %d times, %d correctly\n", calls, correct)
	if h.Winner != "" {
		fmt.Fprintf(&b, "Winner: %s\n", h.Winner)
	}
	return b.String()
}
