package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/console"
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// TUIAgent answers for the human through the TUI and renders game events
// into its log.
type TUIAgent struct {
	model     *TUIModel
	program   *tea.Program
	formatter *game.EventFormatter
	pacer     *console.Pacer
	ctx       context.Context
	logger    *log.Logger
}

// NewTUIAgent creates a full-screen TUI agent for the named human
func NewTUIAgent(ctx context.Context, human string, pacer *console.Pacer, logger *log.Logger) *TUIAgent {
	model := NewTUIModel(logger)
	agent := NewTUIAgentWithModel(ctx, model, human, pacer, logger)
	agent.program = tea.NewProgram(model, tea.WithAltScreen())
	return agent
}

// NewTUIAgentWithModel wraps an existing model, which is how tests drive a
// test-mode model without a terminal.
func NewTUIAgentWithModel(ctx context.Context, model *TUIModel, human string, pacer *console.Pacer, logger *log.Logger) *TUIAgent {
	return &TUIAgent{
		model:     model,
		formatter: game.NewEventFormatter(game.FormattingOptions{Perspective: human}),
		pacer:     pacer,
		ctx:       ctx,
		logger:    logger.WithPrefix("ui"),
	}
}

// Model returns the underlying model
func (ta *TUIAgent) Model() *TUIModel {
	return ta.model
}

// Start starts the TUI program
func (ta *TUIAgent) Start() error {
	if ta.program == nil {
		return nil
	}
	go func() {
		if _, err := ta.program.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		}
	}()
	return nil
}

// Close stops the TUI program and restores the terminal
func (ta *TUIAgent) Close() error {
	if ta.program != nil {
		ta.model.SendQuitSignal()
		ta.program.Quit()
		ta.program.Wait()
	}
	return nil
}

// RequestPlay implements game.HumanIO
func (ta *TUIAgent) RequestPlay(snap game.Snapshot) ([]string, error) {
	ta.model.UpdateSnapshot(snap)
	ta.model.SetPrompt(PromptPlay, game.Claim{})
	defer ta.model.SetPrompt(PromptNone, game.Claim{})

	input, err := ta.waitForInput()
	if err != nil {
		return nil, err
	}
	return strings.Fields(input), nil
}

// RequestChallenge implements game.HumanIO
func (ta *TUIAgent) RequestChallenge(snap game.Snapshot, claim game.Claim) (string, error) {
	ta.model.UpdateSnapshot(snap)
	ta.model.SetPrompt(PromptChallenge, claim)
	defer ta.model.SetPrompt(PromptNone, game.Claim{})

	return ta.waitForInput()
}

// Reject implements game.HumanIO
func (ta *TUIAgent) Reject(err error) {
	ta.logger.Debug("Rejected input", "error", err)
	ta.model.AddStyledLogEntry(ErrorStyle, "Error: "+rejectMessage(err))
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, deck.ErrInvalidRank):
		return "invalid card name(s), try again"
	case errors.Is(err, game.ErrNotInHand):
		return "you don't have all of those cards, try again"
	case errors.Is(err, game.ErrSelectionSize):
		return "play between 1 and 4 cards"
	case errors.Is(err, game.ErrInvalidResponse):
		return "answer y or n"
	default:
		return err.Error()
	}
}

func (ta *TUIAgent) waitForInput() (string, error) {
	ta.logger.Info("Waiting for user action")
	input, shouldContinue, err := ta.model.WaitForAction()
	if err != nil {
		return "", err
	}
	ta.logger.Info("Received user action", "input", input, "continue", shouldContinue)

	switch strings.ToLower(input) {
	case "quit", "q", "exit":
		shouldContinue = false
	}
	if !shouldContinue {
		ta.logger.Info("User chose to quit")
		return "", console.ErrQuit
	}
	return input, nil
}

// OnEvent implements game.EventSubscriber
func (ta *TUIAgent) OnEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.GameStartEvent:
		ta.model.ClearLog()
		ta.addLines(HeaderStyle, ta.formatter.Format(ev))

	case game.TurnStartEvent:
		ta.model.UpdateSnapshot(ev.Snapshot)
		ta.model.AddLogEntry("")
		ta.addLines(PlayerInfoStyle, ta.formatter.Format(ev))
		if !ev.Snapshot.IsHumanTurn() {
			ta.pause(ta.pacer.BeforeTurn)
		}

	case game.CardsPlayedEvent:
		ta.addLines(PlayerInfoStyle, ta.formatter.Format(ev))

	case game.ChallengeEvent:
		ta.addLines(CallStyle, ta.formatter.Format(ev))
		ta.pause(ta.pacer.AfterResult)

	case game.NoChallengeEvent:
		ta.model.AddStyledLogEntry(InfoStyle, "No one calls BS")

	case game.GameEndEvent:
		ta.addLines(WinnerStyle, ta.formatter.Format(ev))
	}
}

func (ta *TUIAgent) addLines(style lipgloss.Style, text string) {
	for _, line := range strings.Split(text, "\n") {
		ta.model.AddStyledLogEntry(style, line)
	}
}

func (ta *TUIAgent) pause(wait func(context.Context) error) {
	if err := wait(ta.ctx); err != nil {
		ta.logger.Debug("Pause interrupted", "error", err)
	}
}
