// Package simulator plays many bot-only games in parallel and aggregates
// the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/randutil"
	"github.com/lox/bluff/internal/statistics"
)

// DefaultMaxTurns bounds a single game; bot-only games can otherwise cycle
const DefaultMaxTurns = 5000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Players  int
	Seed     int64
	MaxTurns int
	Workers  int
	Logger   *log.Logger
}

// Simulator runs bot-only games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the aggregated statistics. Results are
// added in game order so a seed always produces the same statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if s.config.Players < 2 {
		return nil, fmt.Errorf("%w, got %d", game.ErrTooFewPlayers, s.config.Players)
	}

	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.PlayGame(randutil.Derive(s.config.Seed, i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayGame plays one bot-only game from the given seed
func (s *Simulator) PlayGame(seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)

	players := make([]*game.Participant, s.config.Players)
	for i := range players {
		players[i] = game.NewAutomated(game.OpponentName(i+1), rng)
	}

	engine, err := game.NewEngine(players,
		game.WithRand(rng),
		game.WithLogger(s.config.Logger),
		game.WithMaxTurns(s.config.MaxTurns),
		game.WithGameID(fmt.Sprintf("sim-%d", seed)),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}
	if err := engine.DealStandard(); err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{Seed: seed, Players: s.config.Players, WinnerSeat: -1}

	winner, err := engine.Run()
	switch {
	case errors.Is(err, game.ErrTurnLimit):
		s.config.Logger.Warn("Game hit the turn limit", "seed", seed, "turns", s.config.MaxTurns)
	case err != nil:
		return statistics.GameResult{}, err
	default:
		for seat, p := range players {
			if p == winner {
				result.WinnerSeat = seat
			}
		}
	}

	history := engine.History()
	result.Turns = history.Turns()
	result.Bluffs = history.Bluffs()
	result.Challenges, result.CorrectChallenges = history.Challenges()
	return result, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d (%d hit the turn limit)\n", stats.Games, stats.Unfinished)

	fmt.Fprintf(w, "\n=== GAME LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.1f turns\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f turns\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f turns\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f] turns\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== BLUFFING ===\n")
	fmt.Fprintf(w, "Bluffs: %d (%.1f%% of plays)\n", stats.Bluffs, stats.BluffRate()*100)
	fmt.Fprintf(w, "BS called: %d (%.1f%% of turns), %.1f%% caught a bluff\n",
		stats.Challenges, stats.ChallengeRate()*100, stats.ChallengeSuccessRate()*100)

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for seat, ss := range stats.Seats {
		lo, hi := ss.ConfidenceInterval95()
		fmt.Fprintf(w, "Seat %d: %d wins / %d games, %.1f%% [%.1f%%, %.1f%%]\n",
			seat+1, ss.Wins, ss.Games, ss.WinRate()*100, lo*100, hi*100)
	}
}
