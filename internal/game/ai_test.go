package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/deck"
)

func TestEvaluate(t *testing.T) {
	ace := deck.MustCard(deck.Ace)

	tests := []struct {
		name        string
		in          ChallengeInput
		wantP       float64
		wantCertain bool
	}{
		{
			name:        "more than four copies accounted for",
			in:          ChallengeInput{ActingHandSize: 10, TotalParticipants: 4, Required: ace, Claimed: 3, PileSize: 13, HandMatches: 1},
			wantP:       1,
			wantCertain: true,
		},
		{
			name:        "actor emptied their hand",
			in:          ChallengeInput{ActingHandSize: 0, TotalParticipants: 4, Required: ace, Claimed: 1, PileSize: 1},
			wantP:       1,
			wantCertain: true,
		},
		{
			name:  "claiming all four copies",
			in:    ChallengeInput{ActingHandSize: 8, TotalParticipants: 4, Required: ace, Claimed: 4, PileSize: 6},
			wantP: math.Pow(0.9, 6),
		},
		{
			name:  "ordinary claim",
			in:    ChallengeInput{ActingHandSize: 8, TotalParticipants: 5, Required: ace, Claimed: 2, PileSize: 14, HandMatches: 1},
			wantP: (1 - (5.0-4.0)/5.0) - 0.3,
		},
		{
			name:  "low estimate goes negative",
			in:    ChallengeInput{ActingHandSize: 8, TotalParticipants: 4, Required: ace, Claimed: 1, PileSize: 2},
			wantP: (1 - 4.0/4.0) - 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, certain := Evaluate(tt.in)
			assert.Equal(t, tt.wantCertain, certain)
			assert.InDelta(t, tt.wantP, p, 1e-12)
		})
	}
}

func TestShouldChallengeForcedCalls(t *testing.T) {
	forced := []ChallengeInput{
		{ActingHandSize: 5, TotalParticipants: 4, Claimed: 4, HandMatches: 1},
		{ActingHandSize: 5, TotalParticipants: 4, Claimed: 1, PileSize: 39, HandMatches: 2},
		{ActingHandSize: 0, TotalParticipants: 4, Claimed: 1},
		{ActingHandSize: 0, TotalParticipants: 7, Claimed: 4, PileSize: 40},
	}

	// Both extremes of the random draw must give the same answer.
	for _, draw := range []float64{0, 0.9999999} {
		for _, in := range forced {
			rng := &fixedRand{float: draw}
			assert.True(t, ShouldChallenge(in, rng), "input %+v draw %v", in, draw)
			assert.Zero(t, rng.draws, "forced calls never consume a draw")
		}
	}
}

func TestShouldChallengeUsesOneDraw(t *testing.T) {
	in := ChallengeInput{ActingHandSize: 8, TotalParticipants: 4, Claimed: 4, PileSize: 4}
	p, certain := Evaluate(in)
	require.False(t, certain)

	below := &fixedRand{float: p - 0.01}
	assert.True(t, ShouldChallenge(in, below))
	assert.Equal(t, 1, below.draws)

	above := &fixedRand{float: p + 0.01}
	assert.False(t, ShouldChallenge(in, above))
	assert.Equal(t, 1, above.draws)
}

func TestBotPlaysEveryMatchingCard(t *testing.T) {
	rng := &fixedRand{}
	p := withHand(NewAutomated("bot", rng), "7 2 7 K 7")

	played := p.Bot().ChooseCards(deck.MustCard(deck.Seven))
	assert.Equal(t, deck.MustParseCards("7 7 7"), played)
	assert.Equal(t, "2 K", p.Hand.String())
}

func TestBotBluffs(t *testing.T) {
	t.Run("one to three random cards", func(t *testing.T) {
		rng := &fixedRand{intn: 2}
		p := withHand(NewAutomated("bot", rng), "2 3 4 5 6")

		played := p.Bot().ChooseCards(deck.MustCard(deck.Ace))
		assert.Len(t, played, 3)
		assert.Equal(t, 2, p.HandSize())
		for _, c := range played {
			assert.NotEqual(t, deck.Ace, c.Rank)
		}
	})

	t.Run("capped by hand size", func(t *testing.T) {
		rng := &fixedRand{intn: 2}
		p := withHand(NewAutomated("bot", rng), "9")

		played := p.Bot().ChooseCards(deck.MustCard(deck.Ace))
		assert.Equal(t, deck.MustParseCards("9"), played)
		assert.Zero(t, p.HandSize())
	})
}

func TestBotShouldChallengeCountsOwnHand(t *testing.T) {
	rng := &fixedRand{float: 0.9999}
	bot := withHand(NewAutomated("bot", rng), "Q Q Q")
	actor := withHand(NewAutomated("actor", rng), "2 3")
	pile := deck.NewCards(deck.MustParseCards("Q Q")...)

	// 0 from the pile + 3 in hand + 2 claimed > 4
	assert.True(t, bot.Bot().ShouldChallenge(actor, 4, deck.MustCard(deck.Queen), 2, pile))
	assert.Zero(t, rng.draws)

	// 0 + 0 + 1 leaves the call to chance, and the draw is high
	assert.False(t, bot.Bot().ShouldChallenge(actor, 4, deck.MustCard(deck.Two), 1, pile))
	assert.Equal(t, 1, rng.draws)
}
