package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/console"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/randutil"
	"github.com/lox/bluff/internal/tui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)
)

type PlayCmd struct {
	Name      string `short:"n" help:"Your name at the table (overrides config)"`
	Opponents int    `short:"o" help:"Number of bots, 3-6 (0 asks at startup; overrides config)"`
	Seed      int64  `help:"RNG seed for a replayable game (0 for random; overrides config)"`
	TUI       bool   `help:"Use the full-screen interface"`
	NoColor   bool   `help:"Disable colour in the line interface"`
	Fast      bool   `help:"Skip the pauses between bot turns"`
	Reveal    bool   `help:"Show the cards turned over by a call"`
	LogFile   string `help:"Debug log file (overrides config)"`
}

// humanPresenter is what the play command needs from a presentation layer
type humanPresenter interface {
	game.HumanIO
	game.EventSubscriber
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.LogLevel()
	logger, closeLog, err := setupFileLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := setupSignalHandler(logger)
	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Starting interactive game", "seed", seed, "name", cfg.Game.Name, "tui", c.TUI)

	pacer, err := c.newPacer(cfg)
	if err != nil {
		return err
	}

	opts := []console.Option{
		console.WithContext(ctx),
		console.WithLogger(logger),
		console.WithPacer(pacer),
		console.WithRevealPlays(c.Reveal),
	}
	if c.NoColor {
		opts = append(opts, console.WithColorProfile(termenv.Ascii))
	}
	lineUI := console.New(os.Stdin, os.Stdout, cfg.Game.Name, opts...)

	if !c.TUI {
		fmt.Println(titleStyle.Render("BS"))
		fmt.Println()
	}

	opponents := cfg.Game.Opponents
	if opponents == 0 {
		if opponents, err = lineUI.AskOpponentCount(); err != nil {
			return quitOrError(logger, err)
		}
	}

	rng := randutil.New(seed)
	players := []*game.Participant{game.NewHuman(cfg.Game.Name)}
	for i := 1; i <= opponents; i++ {
		players = append(players, game.NewAutomated(game.OpponentName(i), rng))
	}

	var presenter humanPresenter = lineUI
	var agent *tui.TUIAgent
	closeUI := func() {
		if agent == nil {
			return
		}
		if err := agent.Close(); err != nil {
			logger.Error("Failed to close interface", "error", err)
		}
		agent = nil
	}
	defer closeUI()

	if c.TUI {
		agent = tui.NewTUIAgent(ctx, cfg.Game.Name, pacer, logger)
		if err := agent.Start(); err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		presenter = agent
	}

	engine, err := game.NewEngine(players,
		game.WithRand(rng),
		game.WithLogger(logger.WithPrefix("engine")),
		game.WithHumanIO(presenter),
	)
	if err != nil {
		return err
	}
	engine.EventBus().Subscribe(presenter)

	go func() {
		<-ctx.Done()
		logger.Info("Interrupted, exiting")
		os.Exit(0)
	}()

	if err := engine.DealStandard(); err != nil {
		return err
	}

	winner, err := engine.Run()
	logger.Info("Game finished", "game", engine.GameID(), "summary", engine.History().Summary())
	if err != nil {
		return quitOrError(logger, err)
	}

	if c.TUI {
		// The alternate screen is gone once the TUI closes, so repeat the
		// result on the normal terminal.
		closeUI()
		fmt.Println(winnerStyle.Render(fmt.Sprintf("%s won!", winner.Name)))
	}
	return nil
}

func (c *PlayCmd) applyOverrides(cfg *config.Config) {
	if c.Name != "" {
		cfg.Game.Name = c.Name
	}
	if c.Opponents != 0 {
		cfg.Game.Opponents = c.Opponents
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Fast {
		cfg.Pacing.TurnDelay = "0s"
		cfg.Pacing.ResultDelay = "0s"
	}
}

func (c *PlayCmd) newPacer(cfg *config.Config) (*console.Pacer, error) {
	turn, err := cfg.TurnDelay()
	if err != nil {
		return nil, err
	}
	result, err := cfg.ResultDelay()
	if err != nil {
		return nil, err
	}
	return console.NewPacer(quartz.NewReal(), turn, result), nil
}

// quitOrError treats the player leaving as a normal exit
func quitOrError(logger *log.Logger, err error) error {
	if errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled) {
		logger.Info("Player quit")
		return nil
	}
	logger.Error("Game aborted", "error", err)
	return err
}
