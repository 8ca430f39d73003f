package game

import "github.com/lox/bluff/internal/deck"

// PlayerSummary is the public view of one seat
type PlayerSummary struct {
	Name     string
	Kind     Kind
	HandSize int
}

// Snapshot is what the presentation layer may show at the start of a turn.
// Only the human's own cards are revealed.
type Snapshot struct {
	GameID    string
	Turn      int
	Acting    string
	Required  deck.Card
	PileSize  int
	Players   []PlayerSummary
	HumanName string
	HumanHand []deck.Card // sorted A..K
}

// IsHumanTurn reports whether the human is the acting participant
func (s Snapshot) IsHumanTurn() bool {
	return s.HumanName != "" && s.Acting == s.HumanName
}

// TotalCards sums every hand plus the pile
func (s Snapshot) TotalCards() int {
	total := s.PileSize
	for _, p := range s.Players {
		total += p.HandSize
	}
	return total
}

func summarize(players []*Participant) []PlayerSummary {
	out := make([]PlayerSummary, len(players))
	for i, p := range players {
		out[i] = PlayerSummary{Name: p.Name, Kind: p.Kind, HandSize: p.HandSize()}
	}
	return out
}
