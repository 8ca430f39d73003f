package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/bluff/internal/deck"
)

func TestHistoryCounts(t *testing.T) {
	alice := NewHuman("alice")
	bob := NewAutomated("bob", &fixedRand{})
	ace := deck.MustCard(deck.Ace)
	two := deck.MustCard(deck.Two)
	three := deck.MustCard(deck.Three)

	h := &History{GameID: "g1"}
	h.Add(&TurnResult{Turn: 0, Actor: alice, Claim: Claim{Player: "alice", Required: ace, Count: 2}, Truthful: true})
	h.Add(&TurnResult{Turn: 1, Actor: bob, Claim: Claim{Player: "bob", Required: two, Count: 1}, Truthful: false,
		Challenger: alice, Taker: bob, PileTaken: 3})
	h.Add(&TurnResult{Turn: 2, Actor: alice, Claim: Claim{Player: "alice", Required: three, Count: 1}, Truthful: true,
		Challenger: bob, Taker: bob, PileTaken: 1})

	assert.Equal(t, 3, h.Turns())
	assert.Equal(t, 1, h.Bluffs())

	total, correct := h.Challenges()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, correct)

	assert.False(t, h.Records[0].Challenged())
	assert.Empty(t, h.Records[0].Taker)
	assert.True(t, h.Records[1].CallerRight())
	assert.False(t, h.Records[2].CallerRight())
	assert.Equal(t, "bob", h.Records[2].Taker)
}

func TestHistorySummary(t *testing.T) {
	h := &History{GameID: "g1"}
	h.Add(&TurnResult{Actor: NewHuman("alice"), Claim: Claim{Player: "alice", Required: deck.MustCard(deck.Ace), Count: 1}})

	assert.Equal(t, "*** SUMMARY ***\nGame g1: 1 turns, 1 bluffs\nBS called 0 times, 0 correctly\n", h.Summary())

	h.Winner = "alice"
	assert.Contains(t, h.Summary(), "Winner: alice\n")
}
