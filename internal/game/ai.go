package game

import (
	"math"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/randutil"
)

// MaxBluffCards is the largest number of cards a bot throws when it has
// nothing of the required rank.
const MaxBluffCards = 3

// ChallengeInput is everything an automated participant can observe when
// deciding whether to call a bluff.
type ChallengeInput struct {
	ActingHandSize    int       // cards left in the actor's hand after playing
	TotalParticipants int       // everyone at the table, human included
	Required          deck.Card // the rank the actor claims to have played
	Claimed           int       // how many cards the actor put down
	PileSize          int       // pile size including the cards just played
	HandMatches       int       // copies of Required in the decider's own hand
}

// Estimate is the decider's guess at how many copies of the required rank
// are accounted for: a flat 1-in-13 share of the pile, its own hand, and the
// actor's claim.
func (in ChallengeInput) Estimate() int {
	return in.PileSize/deck.RanksPerDeck + in.HandMatches + in.Claimed
}

// Evaluate returns the probability of challenging. certain is true when the
// call is forced and no random draw should be made.
func Evaluate(in ChallengeInput) (p float64, certain bool) {
	total := in.Estimate()

	// More than four copies of a rank cannot exist.
	if total > deck.CopiesPerRank {
		return 1, true
	}
	// Letting an empty hand through hands the actor the game.
	if in.ActingHandSize == 0 {
		return 1, true
	}
	if in.Claimed == deck.CopiesPerRank {
		return math.Pow(0.9, float64(in.PileSize)), false
	}
	return (1 - float64(deck.CopiesPerRank+1-total)/float64(in.TotalParticipants)) - 0.3, false
}

// ShouldChallenge decides using at most one draw from rng. Probabilities
// outside [0,1] simply mean always or never.
func ShouldChallenge(in ChallengeInput, rng randutil.Source) bool {
	p, certain := Evaluate(in)
	if certain {
		return true
	}
	return rng.Float64() < p
}

// Bot makes the decisions of an automated participant
type Bot struct {
	self *Participant
	rng  randutil.Source
}

// NewBot creates a bot playing from self's hand
func NewBot(self *Participant, rng randutil.Source) *Bot {
	return &Bot{self: self, rng: rng}
}

// ChooseCards removes the cards the bot plays this turn from its hand.
// Holding the required rank means playing every copy; otherwise the bot
// bluffs with one to three random cards.
func (b *Bot) ChooseCards(required deck.Card) []deck.Card {
	hand := b.self.Hand

	if n := hand.CountOf(required); n > 0 {
		played := make([]deck.Card, 0, n)
		for {
			card, ok := hand.RemoveMatching(required)
			if !ok {
				return played
			}
			played = append(played, card)
		}
	}

	n := 1 + b.rng.IntN(MaxBluffCards)
	played := make([]deck.Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := hand.DrawRandom(b.rng)
		if !ok {
			break
		}
		played = append(played, card)
	}
	return played
}

// ShouldChallenge decides whether to call the actor's play, filling in the
// bot's own holding of the required rank.
func (b *Bot) ShouldChallenge(acting *Participant, totalParticipants int, required deck.Card, claimed int, pile *deck.Cards) bool {
	return ShouldChallenge(ChallengeInput{
		ActingHandSize:    acting.HandSize(),
		TotalParticipants: totalParticipants,
		Required:          required,
		Claimed:           claimed,
		PileSize:          pile.Len(),
		HandMatches:       b.self.Hand.CountOf(required),
	}, b.rng)
}
