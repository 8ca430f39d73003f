package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single bot-only game
type GameResult struct {
	Seed              int64 // RNG seed for this game (for replay)
	Players           int   // Seats at the table
	WinnerSeat        int   // 0-based seat of the winner, -1 when unfinished
	Turns             int   // Turns played
	Bluffs            int   // Plays that were not all the required rank
	Challenges        int   // Turns on which someone called BS
	CorrectChallenges int   // Calls that caught a bluff
}

// Finished reports whether the game produced a winner
func (r GameResult) Finished() bool {
	return r.WinnerSeat >= 0
}

// SeatStats tracks results for one seat in the turn order
type SeatStats struct {
	Games int
	Wins  int
}

// WinRate returns the fraction of games won from this seat
func (s SeatStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for
// the win rate, clamped to [0, 1]
func (s SeatStats) ConfidenceInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Statistics aggregates many game results
type Statistics struct {
	Games      int
	Unfinished int // Games stopped by the turn limit
	SumTurns   float64
	SumTurns2  float64   // Sum of squares for variance calculation
	Values     []float64 // Turns per game, for median/percentile calculation

	Bluffs            int
	Challenges        int
	CorrectChallenges int

	Seats []SeatStats // Indexed by seat
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	s.Bluffs += result.Bluffs
	s.Challenges += result.Challenges
	s.CorrectChallenges += result.CorrectChallenges

	for len(s.Seats) < result.Players {
		s.Seats = append(s.Seats, SeatStats{})
	}
	for seat := 0; seat < result.Players; seat++ {
		s.Seats[seat].Games++
	}

	if result.Finished() {
		s.Seats[result.WinnerSeat].Wins++
	} else {
		s.Unfinished++
	}
}

// Mean returns the mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for mean turns
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of turns
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the turn count at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// BluffRate returns the fraction of plays that were bluffs
func (s *Statistics) BluffRate() float64 {
	if s.SumTurns == 0 {
		return 0
	}
	return float64(s.Bluffs) / s.SumTurns
}

// ChallengeRate returns the fraction of turns on which someone called
func (s *Statistics) ChallengeRate() float64 {
	if s.SumTurns == 0 {
		return 0
	}
	return float64(s.Challenges) / s.SumTurns
}

// ChallengeSuccessRate returns the fraction of calls that caught a bluff
func (s *Statistics) ChallengeSuccessRate() float64 {
	if s.Challenges == 0 {
		return 0
	}
	return float64(s.CorrectChallenges) / float64(s.Challenges)
}

// Validate checks that the aggregated counts are consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}

	wins := 0
	for _, seat := range s.Seats {
		if seat.Wins > seat.Games {
			return fmt.Errorf("seat wins (%d) exceed seat games (%d)", seat.Wins, seat.Games)
		}
		wins += seat.Wins
	}
	if wins+s.Unfinished != s.Games {
		return fmt.Errorf("wins (%d) plus unfinished (%d) does not match games (%d)", wins, s.Unfinished, s.Games)
	}

	if s.CorrectChallenges > s.Challenges {
		return fmt.Errorf("correct challenges (%d) exceed challenges (%d)", s.CorrectChallenges, s.Challenges)
	}
	if float64(s.Challenges) > s.SumTurns {
		return fmt.Errorf("challenges (%d) exceed turns (%.0f)", s.Challenges, s.SumTurns)
	}
	return nil
}
