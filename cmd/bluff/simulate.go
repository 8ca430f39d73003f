package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/randutil"
	"github.com/lox/bluff/internal/simulator"
)

type SimulateCmd struct {
	Games    int   `default:"1000" help:"Number of games to simulate"`
	Players  int   `default:"4" help:"Bots at the table (2-7)"`
	Seed     int64 `help:"RNG seed (0 for random)"`
	MaxTurns int   `default:"5000" help:"Abandon a game after this many turns"`
	Workers  int   `help:"Parallel games (0 = one per CPU)"`
	Verbose  bool  `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Players < 2 || c.Players > config.MaxOpponents+1 {
		return fmt.Errorf("players must be between 2 and %d, got %d", config.MaxOpponents+1, c.Players)
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.InfoLevel
	}
	logger := setupConsoleLogger(level)
	ctx := setupSignalHandler(logger)

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	seed = randutil.Seed(seed)

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		Players:  c.Players,
		Seed:     seed,
		MaxTurns: c.MaxTurns,
		Workers:  c.Workers,
		Logger:   logger,
	})

	logger.Info("Starting simulation", "games", c.Games, "players", c.Players, "seed", seed)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Simulated %d games of %d bots in %s (seed %d)\n", stats.Games, c.Players, time.Since(start).Round(time.Millisecond), seed)
	simulator.PrintSummary(os.Stdout, stats)
	return nil
}
