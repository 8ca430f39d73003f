package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/console"
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/randutil"
)

var (
	_ game.HumanIO         = (*TUIAgent)(nil)
	_ game.EventSubscriber = (*TUIAgent)(nil)
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestTUITestMode(t *testing.T) {
	logger := quietLogger()

	t.Run("test mode captures log entries", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, true)

		assert.True(t, tui.IsTestMode())
		assert.Empty(t, tui.GetCapturedLog())

		tui.AddLogEntry("player1 plays 2 cards")
		tui.AddStyledLogEntry(CallStyle, "player2 calls BS!")

		assert.Equal(t, []string{"player1 plays 2 cards", "player2 calls BS!"}, tui.GetCapturedLog())
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		tui := NewTUIModel(logger)

		assert.False(t, tui.IsTestMode())
		tui.AddLogEntry("Some log entry")
		assert.Nil(t, tui.GetCapturedLog())
	})

	t.Run("action injection works in test mode", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, true)

		require.NoError(t, tui.InjectAction("A A"))
		assert.Error(t, tui.InjectAction("K"), "channel holds one pending input")

		input, cont, err := tui.WaitForAction()
		require.NoError(t, err)
		assert.Equal(t, "A A", input)
		assert.True(t, cont)
	})

	t.Run("action injection fails in production mode", func(t *testing.T) {
		tui := NewTUIModel(logger)

		err := tui.InjectAction("y")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "test mode")
	})
}

func TestTUIKeys(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), true)

	tui.actionInput.SetValue("  y ")
	tui.Update(tea.KeyMsg{Type: tea.KeyEnter})

	input, cont, err := tui.WaitForAction()
	require.NoError(t, err)
	assert.Equal(t, "y", input)
	assert.True(t, cont)
	assert.Empty(t, tui.actionInput.Value())

	tui.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_, cont, err = tui.WaitForAction()
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestTUIView(t *testing.T) {
	tui := NewTUIModelWithOptions(quietLogger(), true)
	assert.Equal(t, "Loading...", tui.View())

	tui.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	tui.UpdateSnapshot(game.Snapshot{
		GameID:    "g1",
		Acting:    "You",
		Required:  deck.MustCard(deck.Queen),
		PileSize:  6,
		HumanName: "You",
		HumanHand: deck.MustParseCards("2 Q Q"),
		Players: []game.PlayerSummary{
			{Name: "You", Kind: game.Human, HandSize: 3},
			{Name: "player1", Kind: game.Automated, HandSize: 12},
		},
	})
	tui.SetPrompt(PromptPlay, game.Claim{})

	view := tui.View()
	assert.Contains(t, view, "Card: Q")
	assert.Contains(t, view, "Pile: 6")
	assert.Contains(t, view, "player1: 12")
	assert.Contains(t, view, "Hand: 2 Q Q")
	assert.Contains(t, view, "Play 1-4 cards as Q")
}

func TestTUIAgentPlaysAGame(t *testing.T) {
	model := NewTUIModelWithOptions(quietLogger(), true)
	agent := NewTUIAgentWithModel(context.Background(), model, "You", nil, quietLogger())

	human := game.NewHuman("You")
	human.Hand.InsertMany(deck.MustParseCards("A 3")...)
	rng := randutil.New(1)
	bot := game.NewAutomated("player1", rng)
	bot.Hand.InsertMany(deck.MustParseCards("2 9")...)

	e, err := game.NewEngine([]*game.Participant{human, bot},
		game.WithHumanIO(agent), game.WithRand(rng), game.WithGameID("g1"), game.WithMaxTurns(1))
	require.NoError(t, err)
	e.EventBus().Subscribe(agent)
	require.NoError(t, e.Deal(deck.NewCards()))

	done := make(chan error, 1)
	go func() {
		_, err := e.PlayTurn()
		done <- err
	}()

	for _, input := range []string{"Z", "A"} {
		require.Eventually(t, func() bool {
			return model.Prompt() == PromptPlay && model.InjectAction(input) == nil
		}, time.Second, time.Millisecond)
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("turn did not finish")
	}

	captured := model.GetCapturedLog()
	assert.Contains(t, captured, "Game g1")
	assert.Contains(t, captured, "Card being played: A | Cards in pile: 0")
	assert.Contains(t, captured, "Error: invalid card name(s), try again")
	assert.Contains(t, captured, "Card(s) played successfully")
	assert.Equal(t, PromptNone, model.Prompt())
}

func TestTUIAgentQuit(t *testing.T) {
	model := NewTUIModelWithOptions(quietLogger(), true)
	agent := NewTUIAgentWithModel(context.Background(), model, "You", nil, quietLogger())

	require.NoError(t, model.InjectAction("quit"))
	_, err := agent.RequestChallenge(game.Snapshot{}, game.Claim{Player: "player1", Count: 1})
	assert.ErrorIs(t, err, console.ErrQuit)
}
